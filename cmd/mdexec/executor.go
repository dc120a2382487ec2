package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	mdexec "github.com/alnah/go-mdexec"
)

// Sentinel errors for executor configuration.
var (
	ErrInvalidExecSpec = errors.New("invalid executor spec")
	ErrCommandFailed   = errors.New("command failed")
)

// parseExecSpecs turns --exec language=command pairs into executor functions.
// The command is run through the shell with the block source on stdin.
func parseExecSpecs(ctx context.Context, specs []string) (map[string]mdexec.ExecuteFunc, error) {
	executors := make(map[string]mdexec.ExecuteFunc, len(specs))
	for _, spec := range specs {
		language, command, ok := strings.Cut(spec, "=")
		if !ok || language == "" || command == "" {
			return nil, fmt.Errorf("%w: %q (want language=command)", ErrInvalidExecSpec, spec)
		}
		executors[language] = shellExecutor(ctx, command)
	}
	return executors, nil
}

// shellExecutor runs a shell command with the block source piped to stdin
// and returns its standard output. Standard error is folded into the error
// message so failures surface in the rendered document's error path.
func shellExecutor(ctx context.Context, command string) mdexec.ExecuteFunc {
	return func(source string, options map[string]string) (string, error) {
		cmd := exec.CommandContext(ctx, "sh", "-c", command) // #nosec G204 -- the command is exactly what the user passed to --exec
		cmd.Stdin = strings.NewReader(source)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = err.Error()
			}
			return "", fmt.Errorf("%w: %s", ErrCommandFailed, msg)
		}

		return stdout.String(), nil
	}
}
