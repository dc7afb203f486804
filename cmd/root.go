package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/itaimoorali/sys-setup/internal/config"
	"github.com/itaimoorali/sys-setup/internal/execx"
	"github.com/itaimoorali/sys-setup/internal/installer"
	"github.com/itaimoorali/sys-setup/internal/logger"
	"github.com/itaimoorali/sys-setup/internal/menu"
	"github.com/itaimoorali/sys-setup/internal/orchestrator"
)

// CLI flags. The presence of any skip flag (or --non-interactive) switches
// the run to non-interactive mode; no flags at all brings up the menu.
var (
	cfgPath        string
	debug          bool
	nonInteractive bool
	skipBrew       bool
	skipBrewApps   bool
	skipCursor     bool
	skipSettings   bool
	skipDotFiles   bool
)

// skipFlags are the flag names whose mere presence implies non-interactive
// operation, even when given as --skip-x=false.
var skipFlags = []string{"skip-brew", "skip-brew-apps", "skip-cursor", "skip-settings", "skip-dot-files"}

// rootCmd is the single command of the sys-setup CLI: pick components (by
// menu or flags), build the plan, run it, and report.
var rootCmd = &cobra.Command{
	Use:   "sys-setup",
	Short: "Personal machine bootstrap tool",
	Long: `sys-setup bootstraps a personal machine: Homebrew formulas and cask apps,
Cursor extensions and settings, and a symlinked dotfiles repository.

Without flags it presents an interactive menu. Any --skip flag (or
--non-interactive) runs everything not skipped, without prompting.`,

	// PersistentPreRun is a hook that runs before the command body.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
	RunE: run,

	// Errors are printed by Execute with the logger; cobra would duplicate them.
	SilenceErrors: true,
}

// Execute is the entry point for the CLI when invoked by the user.
// Exit status 0 means every planned component passed (or the user cancelled,
// or nothing was planned); 1 means a failure or a missing prerequisite.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "setup.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&skipBrew, "skip-brew", false, "Skip installing Homebrew formulas")
	rootCmd.Flags().BoolVar(&skipBrewApps, "skip-brew-apps", false, "Skip installing Homebrew cask apps")
	rootCmd.Flags().BoolVar(&skipCursor, "skip-cursor", false, "Skip installing Cursor extensions")
	rootCmd.Flags().BoolVar(&skipSettings, "skip-settings", false, "Skip cloning Cursor settings")
	rootCmd.Flags().BoolVar(&skipDotFiles, "skip-dot-files", false, "Skip installing dot files")
	rootCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Run without the interactive menu")
}

func run(cmd *cobra.Command, args []string) error {
	// Past flag parsing: usage output would only bury the real error now.
	cmd.SilenceUsage = true

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(cfgPath, home)
	if err != nil {
		return err
	}

	sel, proceed := selectComponents(cmd)
	if !proceed {
		// User-initiated cancellation is not an error.
		return nil
	}
	if sel.Empty() {
		logger.Warn("[WARN] Nothing to do: every component is skipped\n")
		return nil
	}

	runner := execx.New()
	set := orchestrator.Set{
		Formulas: installer.BrewFormulas{
			List: cfg.FormulasFile, LogDir: cfg.LogDir, Delay: cfg.ItemDelay(), Exec: runner,
		},
		Casks: installer.BrewCasks{
			List: cfg.CasksFile, LogDir: cfg.LogDir, Delay: cfg.ItemDelay(), Exec: runner,
		},
		Extensions: installer.CursorExtensions{
			List: cfg.ExtensionsFile, LogDir: cfg.LogDir, Delay: cfg.ItemDelay(), Exec: runner,
		},
		Settings: installer.CursorSettings{
			Source: cfg.SettingsSource, Target: cfg.SettingsTarget,
		},
		DotFiles: installer.DotFiles{
			List: cfg.DotFilesFile, LogDir: cfg.LogDir, Delay: cfg.ItemDelay(),
			RepoURL: cfg.DotfilesRepo, RepoDir: cfg.DotfilesDir, Entry: cfg.DotfilesEntry,
			Profile: cfg.ShellProfile, SourceLine: cfg.ProfileSourceLine,
			BackupDir: cfg.BackupDir, Home: home, Exec: runner,
		},
	}
	steps := orchestrator.BuildPlan(sel, set)

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	masterPath := filepath.Join(cfg.LogDir, "setup.log")
	master, err := os.OpenFile(masterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open master log %s: %w", masterPath, err)
	}
	defer master.Close()

	failed := orchestrator.Run(cmd.Context(), steps, master)
	orchestrator.Summary(len(steps), failed)

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d components failed, see %s", len(failed), len(steps), masterPath)
	}
	return nil
}

// selectComponents builds the immutable selection for this run: from the
// interactive menu when no flag was given, otherwise from the skip flags.
// The second return value is false when the user cancelled interactively.
func selectComponents(cmd *cobra.Command) (orchestrator.Selection, bool) {
	interactive := !nonInteractive
	for _, name := range skipFlags {
		if cmd.Flags().Changed(name) {
			interactive = false
		}
	}

	if interactive {
		return menu.Choose()
	}
	return orchestrator.Selection{
		Formulas:   !skipBrew,
		Casks:      !skipBrewApps,
		Extensions: !skipCursor,
		Settings:   !skipSettings,
		DotFiles:   !skipDotFiles,
	}, true
}
