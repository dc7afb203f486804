// Package execx is the narrow "run an external tool" abstraction every
// installer composes, so subprocess and outcome-classification glue lives
// in exactly one place.
package execx

import (
	"context"
	"errors"
	"os/exec"
)

// Outcome classifies the result of a single install action.
type Outcome int

const (
	// Succeeded means the action ran and the item is now installed.
	Succeeded Outcome = iota
	// AlreadyInstalled means the item was present before any action was taken.
	AlreadyInstalled
	// Failed means the external tool exited non-zero.
	Failed
)

// String returns the log-line tag for the outcome.
func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "SUCCESS"
	case AlreadyInstalled:
		return "ALREADY_INSTALLED"
	default:
		return "FAILED"
	}
}

// Result captures what happened to one item: the outcome class, plus the
// exit code and combined output of the external tool for the failure case.
type Result struct {
	Outcome  Outcome
	ExitCode int
	Output   string
}

// Runner runs external commands. The production implementation shells out;
// tests substitute a fake so no external tool is ever required.
type Runner interface {
	// Run executes the command and returns its combined stdout/stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports whether the named binary is on PATH.
	LookPath(name string) (string, error)
}

type execRunner struct{}

// New returns the os/exec backed Runner.
func New() Runner { return execRunner{} }

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// ExitCode extracts the process exit code from a Run error.
// It returns 0 for nil and -1 when the command never ran (e.g. binary missing).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
