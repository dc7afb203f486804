package installer

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// fakeRunner substitutes the external tools in tests: it records every
// invocation and delegates to a per-test handler.
type fakeRunner struct {
	missing map[string]bool // binaries reported absent from PATH
	calls   []string        // recorded as "name arg1 arg2 ..."
	handler func(name string, args ...string) ([]byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if f.handler == nil {
		return nil, nil
	}
	return f.handler(name, args...)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/opt/homebrew/bin/" + name, nil
}

// exitError fabricates the non-zero-exit error shape exec returns, by
// actually running `false`. Keeps outcome classification honest in tests.
func exitError() error {
	err := exec.Command("false").Run()
	if err == nil {
		return fmt.Errorf("expected non-zero exit")
	}
	return err
}
