package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexec [command] [flags] <input.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render a markdown document to HTML (default)")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdexec help render' for render flags.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdexec render [flags] <input.md>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a markdown document to HTML, executing fenced code blocks")
	fmt.Fprintln(w, "marked exec=\"true\" and rendering their output in place.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Render timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -e, --exec <lang=cmd>     Shell command for a language, source on stdin")
	fmt.Fprintln(w, "                            (repeatable, e.g. -e python=python3)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           HTML document title")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --style-path <dir>    Custom style directory")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of contents:")
	fmt.Fprintln(w, "      --toc                 Build a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>       Heading above the TOC")
	fmt.Fprintln(w, "      --toc-min-depth <n>   Min heading depth (1-6, default: 1)")
	fmt.Fprintln(w, "      --toc-max-depth <n>   Max heading depth (1-6, default: 6)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tabs:")
	fmt.Fprintln(w, "      --tab-source <s>      Label of the source tab (default: Source)")
	fmt.Fprintln(w, "      --tab-result <s>      Label of the result tab (default: Result)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// runHelp dispatches help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}
	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdexec version")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdexec help <command>")
	default:
		fmt.Fprintf(env.Stdout, "Unknown command %q\n\n", args[0])
		printUsage(env.Stdout)
	}
}
