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

// CursorExtensions installs Cursor editor extensions from a static list file,
// one `cursor --install-extension` per entry.
type CursorExtensions struct {
	List   string
	LogDir string
	Delay  time.Duration
	Exec   execx.Runner
}

func (c CursorExtensions) Name() string { return "Cursor extensions" }

func (c CursorExtensions) Run(ctx context.Context) error {
	if _, err := c.Exec.LookPath("cursor"); err != nil {
		return fmt.Errorf("cursor not found in PATH: install Cursor and run \"Install 'cursor' command\" from its command palette")
	}
	return listRun{
		display:  c.Name(),
		listPath: c.List,
		logPath:  filepath.Join(c.LogDir, "cursor-extensions.log"),
		delay:    c.Delay,
		installedSet: func(ctx context.Context) (map[string]bool, error) {
			return c.installedExtensions(ctx)
		},
		install: func(ctx context.Context, item string) execx.Result {
			return c.installExtension(ctx, item)
		},
	}.run(ctx)
}

// installedExtensions returns the set of extension IDs Cursor reports as
// installed, one ID per output line.
func (c CursorExtensions) installedExtensions(ctx context.Context) (map[string]bool, error) {
	out, err := c.Exec.Run(ctx, "cursor", "--list-extensions")
	if err != nil {
		return nil, fmt.Errorf("cursor --list-extensions: %w\n%s", err, out)
	}
	set := make(map[string]bool)
	for _, line := range strings.Split(string(out), "\n") {
		if id := strings.TrimSpace(line); id != "" {
			set[id] = true
		}
	}
	return set, nil
}

func (c CursorExtensions) installExtension(ctx context.Context, id string) execx.Result {
	out, err := c.Exec.Run(ctx, "cursor", "--install-extension", id)
	logger.Debug("[DEBUG] cursor --install-extension %s output:\n%s\n", id, out)
	if err == nil {
		return execx.Result{Outcome: execx.Succeeded, Output: string(out)}
	}
	if strings.Contains(string(out), "already installed") {
		return execx.Result{Outcome: execx.AlreadyInstalled, Output: string(out)}
	}
	return execx.Result{Outcome: execx.Failed, ExitCode: execx.ExitCode(err), Output: string(out)}
}
