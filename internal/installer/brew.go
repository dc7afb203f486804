package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/itaimoorali/sys-setup/internal/execx"
	"github.com/itaimoorali/sys-setup/internal/logger"
)

// BrewFormulas installs Homebrew formulas (command-line tools) from a static
// list file, one `brew install` per entry.
type BrewFormulas struct {
	List   string
	LogDir string
	Delay  time.Duration
	Exec   execx.Runner
}

func (b BrewFormulas) Name() string { return "Homebrew formulas" }

func (b BrewFormulas) Run(ctx context.Context) error {
	if err := requireBrew(b.Exec); err != nil {
		return err
	}
	return listRun{
		display:  b.Name(),
		listPath: b.List,
		logPath:  filepath.Join(b.LogDir, "brew.log"),
		delay:    b.Delay,
		installedSet: func(ctx context.Context) (map[string]bool, error) {
			return brewList(ctx, b.Exec, "--formula")
		},
		install: func(ctx context.Context, item string) execx.Result {
			return brewInstall(ctx, b.Exec, "install", item)
		},
	}.run(ctx)
}

// BrewCasks installs Homebrew cask applications (GUI app bundles) from a
// static list file, one `brew install --cask` per entry.
type BrewCasks struct {
	List   string
	LogDir string
	Delay  time.Duration
	Exec   execx.Runner
}

func (b BrewCasks) Name() string { return "Homebrew cask apps" }

func (b BrewCasks) Run(ctx context.Context) error {
	if err := requireBrew(b.Exec); err != nil {
		return err
	}
	return listRun{
		display:  b.Name(),
		listPath: b.List,
		logPath:  filepath.Join(b.LogDir, "brew-apps.log"),
		delay:    b.Delay,
		installedSet: func(ctx context.Context) (map[string]bool, error) {
			return brewList(ctx, b.Exec, "--cask")
		},
		install: func(ctx context.Context, item string) execx.Result {
			return brewInstall(ctx, b.Exec, "install", "--cask", item)
		},
	}.run(ctx)
}

// requireBrew fails with a remediation hint when the brew binary is absent.
func requireBrew(r execx.Runner) error {
	if _, err := r.LookPath("brew"); err != nil {
		return fmt.Errorf("brew not found in PATH: install Homebrew from https://brew.sh first")
	}
	return nil
}

// brewList returns the set of installed formulas or casks, one name per
// output line of `brew list`.
func brewList(ctx context.Context, r execx.Runner, kind string) (map[string]bool, error) {
	out, err := r.Run(ctx, "brew", "list", kind)
	if err != nil {
		return nil, fmt.Errorf("brew list %s: %w\n%s", kind, err, out)
	}
	set := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			set[name] = true
		}
	}
	return set, nil
}

// brewInstall runs one brew install action and classifies its outcome.
// Homebrew exits non-zero when a package is already installed outside our
// pre-check (e.g. added concurrently), so that case is detected from output.
func brewInstall(ctx context.Context, r execx.Runner, args ...string) execx.Result {
	out, err := r.Run(ctx, "brew", args...)
	logger.Debug("[DEBUG] brew %s output:\n%s\n", strings.Join(args, " "), out)
	if err == nil {
		return execx.Result{Outcome: execx.Succeeded, Output: string(out)}
	}
	if strings.Contains(string(out), "already installed") {
		return execx.Result{Outcome: execx.AlreadyInstalled, Output: string(out)}
	}
	return execx.Result{Outcome: execx.Failed, ExitCode: execx.ExitCode(err), Output: string(out)}
}
