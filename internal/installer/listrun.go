package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/itaimoorali/sys-setup/internal/execx"
	"github.com/itaimoorali/sys-setup/internal/listfile"
	"github.com/itaimoorali/sys-setup/internal/logger"
)

// listRun is the shared shape of every list-driven installer: read a static
// list file, perform one external action per entry, tag the outcome of each
// entry in the component's log file, and tally the results.
type listRun struct {
	display  string // component display name for console output
	listPath string
	logPath  string
	delay    time.Duration // pause between consecutive item actions

	// installedSet queries the external tool's own listing once per run;
	// membership (exact string match) classifies an item already installed.
	installedSet func(ctx context.Context) (map[string]bool, error)
	// install performs the installation action for one item.
	install func(ctx context.Context, item string) execx.Result
}

// run iterates the list. A failing item never stops the remaining items;
// the function returns an error only when at least one item failed, or when
// the list file itself is missing or a prerequisite query failed.
func (l listRun) run(ctx context.Context) error {
	items, err := listfile.Read(l.listPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("list file %s not found: create it with one item per line (# for comments)", l.listPath)
		}
		return fmt.Errorf("read list file %s: %w", l.listPath, err)
	}
	if len(items) == 0 {
		logger.Info("[INFO] %s: %s has no entries, nothing to do\n", l.display, l.listPath)
		return nil
	}

	log, err := openLog(l.logPath)
	if err != nil {
		return err
	}
	defer log.Close()

	installed, err := l.installedSet(ctx)
	if err != nil {
		return fmt.Errorf("query installed items: %w", err)
	}

	var succeeded, already, failed int
	for i, item := range items {
		if i > 0 && l.delay > 0 {
			time.Sleep(l.delay)
		}

		if installed[item] {
			already++
			logger.Info("[INFO] %s is already installed, skipping\n", item)
			fmt.Fprintf(log, "ALREADY_INSTALLED: %s\n", item)
			continue
		}

		logger.Info("[INFO] Installing %s...\n", item)
		res := l.install(ctx, item)
		switch res.Outcome {
		case execx.Succeeded:
			succeeded++
			logger.Info("[INFO] Installed %s\n", item)
		case execx.AlreadyInstalled:
			already++
			logger.Info("[INFO] %s is already installed, skipping\n", item)
		default:
			failed++
			logger.Error("[ERROR] Failed to install %s (exit %d)\n%s", item, res.ExitCode, res.Output)
		}
		fmt.Fprintf(log, "%s: %s\n", res.Outcome, item)
	}

	logger.Info("[INFO] %s: processed %d\n", l.display, len(items))
	logger.Info("[INFO] %s: succeeded %d\n", l.display, succeeded)
	logger.Info("[INFO] %s: already installed %d\n", l.display, already)
	fmt.Fprintf(log, "Processed: %d\nSucceeded: %d\nAlready installed: %d\n", len(items), succeeded, already)

	if failed > 0 {
		return fmt.Errorf("%d of %d items failed, see %s", failed, len(items), l.logPath)
	}
	return nil
}
