package main

import (
	"github.com/itaimoorali/sys-setup/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The sys-setup project is a personal machine bootstrap tool that:
//   - Installs Homebrew formulas and cask applications from static list files
//   - Installs Cursor editor extensions from a static list file
//   - Copies the tracked Cursor settings file over the live one, with a timestamped backup
//   - Clones (or updates) a personal dotfiles repository and symlinks its files into $HOME,
//     backing up any pre-existing files before they are replaced
//   - Offers an interactive menu for picking which of those components to run,
//     or a flag-driven non-interactive mode for scripted runs
//
// Error handling strategy:
//   - A failing item inside a component never aborts the rest of that component's list,
//     and a failing component never aborts the remaining components in the plan,
//     aiming to apply as much of the setup as possible in one run
//   - The process exits non-zero if any planned component failed, so a wrapper script
//     can always tell whether the machine is fully bootstrapped
//
// Integration points:
//   - Delegates all package installation to the `brew` command-line tool
//   - Delegates extension installation to the `cursor` command-line tool
//   - Uses `git` to clone and update the dotfiles repository
//   - Appends per-item outcomes to per-component log files and a master setup log,
//     so the console only has to say THAT something failed, not why
func main() {
	cmd.Execute()
}
