// Package menu implements the interactive component picker shown when
// sys-setup runs without any flags.
package menu

import (
	"fmt"
	"strings"

	"github.com/Songmu/prompter"

	"github.com/itaimoorali/sys-setup/internal/logger"
	"github.com/itaimoorali/sys-setup/internal/orchestrator"
)

// Choose presents the numbered component list, reads a comma-separated
// selection, and gates it behind a confirmation prompt. The second return
// value is false when the user cancelled (option 7, or anything but y/Y at
// the confirmation), which is a clean exit, not an error.
func Choose() (orchestrator.Selection, bool) {
	for {
		printMenu()
		input := prompter.Prompt("Enter your choices (comma separated)", "")

		sel, quit, invalid := ParseSelection(input)
		if quit {
			logger.Info("[INFO] Cancelled\n")
			return orchestrator.Selection{}, false
		}
		for _, tok := range invalid {
			logger.Warn("[WARN] Invalid choice: %s\n", tok)
		}
		if sel.Empty() {
			// Nothing valid entered: re-prompt rather than abort.
			continue
		}

		answer := prompter.Prompt("Proceed with installation? (y/N)", "n")
		if answer != "y" && answer != "Y" {
			logger.Info("[INFO] Cancelled\n")
			return orchestrator.Selection{}, false
		}
		return sel, true
	}
}

// ParseSelection parses the raw menu input: split on commas, trim each token,
// accept 1-5 as individual components, 6 as select-all, 7 as quit. Invalid
// tokens are collected for reporting but never abort the whole input.
func ParseSelection(input string) (sel orchestrator.Selection, quit bool, invalid []string) {
	for _, tok := range strings.Split(input, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		switch tok {
		case "1":
			sel.Formulas = true
		case "2":
			sel.Casks = true
		case "3":
			sel.Extensions = true
		case "4":
			sel.Settings = true
		case "5":
			sel.DotFiles = true
		case "6":
			sel = orchestrator.All()
		case "7":
			return orchestrator.Selection{}, true, nil
		default:
			invalid = append(invalid, tok)
		}
	}
	return sel, false, invalid
}

func printMenu() {
	fmt.Println()
	fmt.Println("What should be installed?")
	fmt.Println("  1) Homebrew formulas")
	fmt.Println("  2) Homebrew cask apps")
	fmt.Println("  3) Cursor extensions")
	fmt.Println("  4) Cursor settings")
	fmt.Println("  5) Dot files")
	fmt.Println("  6) Everything")
	fmt.Println("  7) Quit")
}
