// Package sigtask translates declarative build attributes into an argument
// list for the external signature-comparison engine and maps the engine's
// verdict onto the build's success or failure.
package sigtask

import (
	"context"
	"fmt"
	"io"
	"strings"

	engine "github.com/dbessono/sigtest/internal/engine"
)

// EngineFactory constructs the engine for one run. Sibling task flavors
// (full signature test vs. lightweight API check) supply their own factory
// instead of overriding the runner.
type EngineFactory func() (engine.Engine, error)

// Runner executes a signature check end to end: validate the options,
// build the argument list, invoke the engine, interpret the outcome.
type Runner struct {
	NewEngine EngineFactory
	Out       io.Writer    // engine progress/report stream; nil discards
	LogError  func(string) // warn-and-continue sink for suppressed failures
}

// Execute runs one check synchronously. It returns *ConfigError for missing
// required attributes, *EngineError when the interpreted outcome is a
// failure and FailOnError is set, or a wrapped invocation error when the
// engine could not run at all.
func (r *Runner) Execute(ctx context.Context, opts TaskOptions) error {
	if err := checkParams(opts); err != nil {
		return err
	}

	eng, err := r.NewEngine()
	if err != nil {
		return err
	}

	args := BuildParams(opts, BuildBaseParams(opts))

	out := r.Out
	if out == nil {
		out = io.Discard
	}

	// NoExit makes the engine return control instead of terminating the
	// build process when the comparison completes.
	res, err := eng.Run(ctx, engine.Invocation{Args: args, NoExit: true}, out)
	if err != nil {
		return fmt.Errorf("engine %s: %w", eng.Name(), err)
	}

	// Negative inverts the verdict: a pass from the engine is a build
	// failure when the check expects an incompatibility to exist.
	if opts.Negative != res.Passed {
		return nil
	}

	if opts.FailOnError {
		return &EngineError{Report: res.Report}
	}
	if r.LogError != nil {
		r.LogError(res.Report)
	}
	return nil
}

// checkParams validates the required attributes in fixed order; the first
// missing one wins.
func checkParams(opts TaskOptions) error {
	if len(opts.Classpath) == 0 {
		return &ConfigError{Field: "classpath"}
	}
	if len(opts.Packages) == 0 {
		return &ConfigError{Field: "package"}
	}
	if strings.TrimSpace(opts.FileName) == "" {
		return &ConfigError{Field: "filename"}
	}
	return nil
}
