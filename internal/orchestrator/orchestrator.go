// Package orchestrator turns a component selection into an ordered execution
// plan and runs it, isolating failures so every planned component gets its
// chance to run.
package orchestrator

import (
	"context"
	"fmt"
	"io"

	"github.com/itaimoorali/sys-setup/internal/installer"
	"github.com/itaimoorali/sys-setup/internal/logger"
)

// Selection records which components a run will execute. It is built exactly
// once, from CLI flags or from the interactive menu, and never mutated after.
type Selection struct {
	Formulas   bool
	Casks      bool
	Extensions bool
	Settings   bool
	DotFiles   bool
}

// Empty reports whether nothing is selected, in which case the orchestrator
// stops before executing anything.
func (s Selection) Empty() bool {
	return !s.Formulas && !s.Casks && !s.Extensions && !s.Settings && !s.DotFiles
}

// All returns a selection with every component enabled.
func All() Selection {
	return Selection{Formulas: true, Casks: true, Extensions: true, Settings: true, DotFiles: true}
}

// Set holds the five components in their fixed priority order.
type Set struct {
	Formulas   installer.Component
	Casks      installer.Component
	Extensions installer.Component
	Settings   installer.Component
	DotFiles   installer.Component
}

// Step pairs a component with its position in the plan.
type Step struct {
	Number    int
	Component installer.Component
}

// BuildPlan scans the selection in priority order (formulas, cask apps,
// extensions, settings, dot files) and assigns sequential step numbers to
// the selected components only. The plan is built once and never changes.
func BuildPlan(sel Selection, set Set) []Step {
	var steps []Step
	add := func(selected bool, c installer.Component) {
		if selected {
			steps = append(steps, Step{Number: len(steps) + 1, Component: c})
		}
	}
	add(sel.Formulas, set.Formulas)
	add(sel.Casks, set.Casks)
	add(sel.Extensions, set.Extensions)
	add(sel.Settings, set.Settings)
	add(sel.DotFiles, set.DotFiles)
	return steps
}

// Run executes the plan in order, blocking on each component before starting
// the next. A failing component never stops the plan; its display name is
// recorded and the next step runs. Step banners and pass/fail results are
// appended to the master log.
func Run(ctx context.Context, steps []Step, masterLog io.Writer) []string {
	var failed []string
	for _, step := range steps {
		name := step.Component.Name()
		logger.Info("[INFO] Step %d/%d: %s\n", step.Number, len(steps), name)
		fmt.Fprintf(masterLog, "=== Step %d/%d: %s ===\n", step.Number, len(steps), name)

		if err := step.Component.Run(ctx); err != nil {
			logger.Error("[ERROR] %s failed: %v\n", name, err)
			fmt.Fprintf(masterLog, "FAILED: %s: %v\n", name, err)
			failed = append(failed, name)
			continue
		}
		logger.Info("[INFO] %s completed\n", name)
		fmt.Fprintf(masterLog, "PASSED: %s\n", name)
	}
	return failed
}

// Summary prints the final report: either a clean bill or exactly the
// components that failed. Finer detail lives in the per-component logs.
func Summary(total int, failed []string) {
	if len(failed) == 0 {
		logger.Info("[INFO] All %d steps completed successfully\n", total)
		return
	}
	logger.Error("[ERROR] %d of %d steps failed:\n", len(failed), total)
	for _, name := range failed {
		logger.Error("[ERROR]   - %s\n", name)
	}
}
