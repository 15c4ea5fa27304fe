package bundle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// runEsbuild bundles entryPath and returns the bundled source from
// stdout. Diagnostics on stderr become warnings. A nonzero exit is a
// soft failure: the caller gets an empty bundle plus warnings. Only a
// failure to run the binary at all is a hard error.
func runEsbuild(ctx context.Context, bin, entryPath string) (string, []string, error) {
	args := []string{
		entryPath,
		"--bundle",
		"--format=esm",
		"--platform=node",
		"--target=node18",
		"--external:node:*",
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	warnings := diagnosticLines(stderr.String())

	code, err := exitCode(runErr)
	if err != nil {
		return "", warnings, fmt.Errorf("running %s: %w", bin, err)
	}
	if code != 0 {
		warnings = append(warnings, fmt.Sprintf("%s exited with code %d", bin, code))
		return "", warnings, nil
	}
	return stdout.String(), warnings, nil
}

// exitCode extracts an exit code from a command error.
// Returns (code, nil) for ExitError, (0, err) for other errors, (0, nil) for nil.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

func diagnosticLines(stderr string) []string {
	var out []string
	for _, line := range strings.Split(stderr, "\n") {
		if line = strings.TrimRight(line, " \t\r"); line != "" {
			out = append(out, line)
		}
	}
	return out
}
