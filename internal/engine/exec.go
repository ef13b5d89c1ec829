package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

const (
	// noExitEnv tells the engine CLI to report its verdict through the
	// exit status instead of terminating its host directly.
	noExitEnv = "SIGTEST_NOEXIT"

	reportTailLimit = 64 * 1024
)

var commandContext = exec.CommandContext

// ExecEngine runs a configured engine preset as a subprocess.
type ExecEngine struct {
	name    string
	command string
	args    []string
	env     map[string]string
}

func NewExecEngine(name string, preset Preset) *ExecEngine {
	return &ExecEngine{
		name:    name,
		command: preset.Command,
		args:    preset.Args,
		env:     preset.Env,
	}
}

func (e *ExecEngine) Name() string { return e.name }

// Run blocks until the subprocess exits. Exit status 0 means the check
// passed and 1 means the engine found incompatibilities; a status line in
// the output overrides the exit status when present. Any other exit status
// is an invocation failure.
func (e *ExecEngine) Run(ctx context.Context, inv Invocation, out io.Writer) (Result, error) {
	if strings.TrimSpace(e.command) == "" {
		return Result{}, fmt.Errorf("engine %q has no command configured", e.name)
	}
	if out == nil {
		out = io.Discard
	}

	args := append(append([]string(nil), e.args...), inv.Args...)
	cmd := commandContext(ctx, e.command, args...)

	cmd.Env = os.Environ()
	for k, v := range e.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	if inv.NoExit {
		cmd.Env = append(cmd.Env, noExitEnv+"=true")
	}

	tail := &tailBuffer{limit: reportTailLimit}
	sink := io.MultiWriter(out, tail)
	cmd.Stdout = sink
	cmd.Stderr = sink

	runErr := cmd.Run()
	report := tail.String()

	passed := runErr == nil
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) || exitErr.ExitCode() != 1 {
			return Result{}, runErr
		}
	}

	if verdict, ok := parseStatusLine(report); ok {
		passed = verdict
	}

	return Result{Passed: passed, Report: report}, nil
}
