package installer

import "context"

// Component is one unit of machine setup: a package installer, the settings
// cloner, or the dotfiles installer. Components are independent, a failing
// component never stops the ones after it in the plan.
type Component interface {
	// Name returns the display name used in logs and the final summary.
	Name() string
	// Run performs the component's work. A non-nil error marks the
	// component failed; the detail lives in the component's own log file.
	Run(ctx context.Context) error
}
