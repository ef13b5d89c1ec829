// Package engine defines the invocation contract with the external
// signature-comparison tool and an exec-based implementation of it.
package engine

import (
	"context"
	"io"
)

// Result is the outcome of one engine run. Immutable once returned.
type Result struct {
	Passed bool
	Report string
}

// Invocation carries the rendered argument list plus the isolation setting
// that keeps the engine from terminating the calling process.
type Invocation struct {
	Args   []string
	NoExit bool
}

// Engine invokes the comparison tool synchronously. Progress and report
// text stream to out; Result.Passed reflects the overall verdict.
type Engine interface {
	Name() string
	Run(ctx context.Context, inv Invocation, out io.Writer) (Result, error)
}
