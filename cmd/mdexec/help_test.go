package main

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	requiredStrings := []string{
		"Usage: mdexec",
		"Commands:",
		"render",
		"version",
		"help",
	}

	for _, s := range requiredStrings {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintRenderUsage - Render command usage output
// ---------------------------------------------------------------------------

func TestPrintRenderUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printRenderUsage(&buf)
	output := buf.String()

	flagGroups := []string{
		"Input/Output:",
		"Execution:",
		"Document:",
		"Table of contents:",
		"Tabs:",
		"Other:",
	}
	for _, s := range flagGroups {
		if !strings.Contains(output, s) {
			t.Errorf("printRenderUsage output should contain group %q", s)
		}
	}

	flags := []string{
		"--output",
		"--exec",
		"--toc",
		"--style",
		"--tab-source",
		"--timeout",
	}
	for _, s := range flags {
		if !strings.Contains(output, s) {
			t.Errorf("printRenderUsage output should contain flag %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Help topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no topic", nil, "Commands:"},
		{"render topic", []string{"render"}, "Usage: mdexec render"},
		{"version topic", []string{"version"}, "Usage: mdexec version"},
		{"help topic", []string{"help"}, "Usage: mdexec help"},
		{"unknown topic", []string{"bogus"}, `Unknown command "bogus"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, _ := testEnv()
			runHelp(tt.args, env)
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("runHelp(%v) output missing %q:\n%s", tt.args, tt.want, stdout.String())
			}
		})
	}
}
