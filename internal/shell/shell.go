// Package shell runs the external package-manager commands the
// providers wrap. It offers two modes: Run streams output straight to
// the terminal for long interactive operations, Capture collects output
// for parsing.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// CommandError is returned when an external command exits non-zero.
type CommandError struct {
	Cmd      string
	ExitCode int
}

// Error returns the formatted error message.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command failed with exit code %d: %s", e.ExitCode, e.Cmd)
}

// Output holds the result of a captured command.
type Output struct {
	Code   int
	Stdout string
	Stderr string
}

// OK reports whether the command exited zero.
func (o Output) OK() bool {
	return o.Code == 0
}

// Runner executes external commands. The zero value is not usable;
// construct with New.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	// echo, when set, is called with the command line before execution
	// so the UI can show what is being run.
	echo func(cmdline string)
}

// New creates a Runner that streams to stdout/stderr. echo may be nil
// to suppress command-line echoing.
func New(echo func(cmdline string)) *Runner {
	return &Runner{
		stdout: os.Stdout,
		stderr: os.Stderr,
		echo:   echo,
	}
}

// NewWithIO creates a Runner with explicit output streams, for tests.
func NewWithIO(stdout, stderr io.Writer, echo func(string)) *Runner {
	return &Runner{stdout: stdout, stderr: stderr, echo: echo}
}

// Run executes the command with output streamed to the runner's
// stdout/stderr and stdin connected to the terminal, so interactive
// prompts from package managers work. Returns a *CommandError on
// non-zero exit.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmdline := commandLine(name, args)
	if r.echo != nil {
		r.echo(cmdline)
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CommandError{Cmd: cmdline, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("run %s: %w", cmdline, err)
	}
	return nil
}

// Capture executes the command and collects its output. A non-zero
// exit is reported in Output.Code with a nil error; the error return is
// reserved for failures to execute at all (missing binary, cancelled
// context).
func (r *Runner) Capture(ctx context.Context, name string, args ...string) (Output, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{
		Code:   0,
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.Code = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("run %s: %w", commandLine(name, args), err)
	}
	return out, nil
}

// LookPath reports whether the named binary is on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// commandLine renders the command for echoing and error messages.
func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
