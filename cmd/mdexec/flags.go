package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	title    string
	minDepth int
	maxDepth int
}

// styleFlags holds CSS styling flags.
type styleFlags struct {
	style     string // Embedded style name or .css file path
	stylePath string // Custom style directory
	noStyle   bool   // Disable CSS styling
}

// tabFlags holds tab label flags for tabbed source placements.
type tabFlags struct {
	source string
	result string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	output  string
	title   string
	timeout string
	execs   []string // language=command pairs
	toc     tocFlags
	style   styleFlags
	tabs    tabFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "build a table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 1)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 6)")
}

// addStyleFlags adds CSS styling flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.stylePath, "style-path", "", "custom style directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
}

// addTabFlags adds tab label flags to a FlagSet.
func addTabFlags(fs *flag.FlagSet, f *tabFlags) {
	fs.StringVar(&f.source, "tab-source", "", "label of the source tab (default: Source)")
	fs.StringVar(&f.result, "tab-result", "", "label of the result tab (default: Result)")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.title, "title", "", "HTML document title")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g., 30s, 2m)")
	fs.StringArrayVarP(&f.execs, "exec", "e", nil, "executor as language=command (repeatable)")

	addCommonFlags(fs, &f.common)
	addTOCFlags(fs, &f.toc)
	addStyleFlags(fs, &f.style)
	addTabFlags(fs, &f.tabs)

	fs.Usage = func() { printRenderUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
