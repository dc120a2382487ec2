package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	mdexec "github.com/alnah/go-mdexec"
	"github.com/alnah/go-mdexec/internal/assets"
	"github.com/alnah/go-mdexec/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrTooManyInputs  = errors.New("expected a single input file")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// filePermissions is rw-r--r--: HTML output is meant to be readable.
const filePermissions = 0o644

// runRender renders a single markdown document to HTML.
func runRender(ctx context.Context, positionalArgs []string, flags *renderFlags, env *Environment) error {
	cfg := config.DefaultConfig()
	var err error
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI flags win over config values.
	mergeFlags(flags, cfg)

	if flags.timeout != "" {
		timeout, err := time.ParseDuration(flags.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, flags.timeout)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	content, err := readInput(positionalArgs)
	if err != nil {
		return err
	}

	css, err := resolveCSS(flags.style.noStyle, cfg)
	if err != nil {
		return err
	}

	executors, err := parseExecSpecs(ctx, flags.execs)
	if err != nil {
		return err
	}

	opts := buildOptions(cfg, css, executors)
	renderer, err := mdexec.NewRenderer(opts...)
	if err != nil {
		return err
	}

	start := env.Now()
	html, err := renderer.Render(ctx, content)
	if err != nil {
		return err
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendered in %s\n", env.Now().Sub(start).Round(time.Millisecond))
	}

	return writeOutput(flags.output, html, env)
}

// mergeFlags overlays CLI flags onto the loaded config.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.title != "" {
		cfg.Document.Title = flags.title
	}
	if flags.style.style != "" {
		cfg.CSS.Style = flags.style.style
	}
	if flags.style.stylePath != "" {
		cfg.Assets.BasePath = flags.style.stylePath
	}
	if flags.toc.enabled {
		cfg.TOC.Enabled = true
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
	if flags.tabs.source != "" {
		cfg.Tabs.Source = flags.tabs.source
	}
	if flags.tabs.result != "" {
		cfg.Tabs.Result = flags.tabs.result
	}
}

// readInput reads the markdown source from the given file or stdin ("-").
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: pass a markdown file or - for stdin", ErrNoInput)
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: got %d", ErrTooManyInputs, len(args))
	}

	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided input path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	return string(data), nil
}

// resolveCSS resolves the configured style to CSS content.
// A style that looks like a file path is read directly; otherwise it is
// looked up by name through the style resolver, with the custom base path
// taking precedence over embedded styles.
func resolveCSS(disabled bool, cfg *config.Config) (string, error) {
	if disabled {
		return "", nil
	}

	style := cfg.CSS.Style
	if strings.ContainsAny(style, "/\\") || strings.HasSuffix(style, ".css") {
		data, err := os.ReadFile(style) // #nosec G304 -- user-provided style path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		return string(data), nil
	}

	resolver, err := assets.NewStyleResolver(cfg.Assets.BasePath)
	if err != nil {
		return "", err
	}
	if style == "" {
		style = "default"
	}
	return resolver.LoadStyle(style)
}

// buildOptions translates the merged config into renderer options.
func buildOptions(cfg *config.Config, css string, executors map[string]mdexec.ExecuteFunc) []mdexec.Option {
	opts := []mdexec.Option{
		mdexec.WithStyle(css),
	}
	if cfg.Document.Title != "" {
		opts = append(opts, mdexec.WithTitle(cfg.Document.Title))
	}
	if cfg.Document.PermalinkClass != "" {
		opts = append(opts, mdexec.WithPermalinkClass(cfg.Document.PermalinkClass))
	}
	if cfg.TOC.Enabled {
		opts = append(opts, mdexec.WithTOC(mdexec.TOC{
			Title:    cfg.TOC.Title,
			MinDepth: cfg.TOC.MinDepth,
			MaxDepth: cfg.TOC.MaxDepth,
		}))
	}
	if cfg.Tabs.Source != "" || cfg.Tabs.Result != "" {
		tabs := mdexec.DefaultTabs()
		if cfg.Tabs.Source != "" {
			tabs.Source = cfg.Tabs.Source
		}
		if cfg.Tabs.Result != "" {
			tabs.Result = cfg.Tabs.Result
		}
		opts = append(opts, mdexec.WithTabs(tabs))
	}
	for language, fn := range executors {
		opts = append(opts, mdexec.WithExecutor(language, fn))
	}
	return opts
}

// writeOutput writes the rendered HTML to the output file or stdout.
func writeOutput(path, html string, env *Environment) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(env.Stdout, html)
		return err
	}
	if err := os.WriteFile(path, []byte(html), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
