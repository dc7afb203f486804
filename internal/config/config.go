package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every path and knob the setup components need.
// It is built exactly once at startup and passed by value from there on;
// nothing mutates it after loading.
type Config struct {
	// List files, one item per line, # comments and blank lines ignored.
	FormulasFile   string `yaml:"formulas_file"`
	CasksFile      string `yaml:"casks_file"`
	ExtensionsFile string `yaml:"extensions_file"`
	DotFilesFile   string `yaml:"dot_files_file"`

	// LogDir receives the master setup.log plus one log file per component.
	LogDir string `yaml:"log_dir"`

	// Dotfiles repository and symlink handling.
	DotfilesRepo      string `yaml:"dotfiles_repo"`       // clone URL, required when the checkout is absent
	DotfilesDir       string `yaml:"dotfiles_dir"`        // local checkout directory
	DotfilesEntry     string `yaml:"dotfiles_entry"`      // file that must exist inside the checkout
	ShellProfile      string `yaml:"shell_profile"`       // rc file that sources the dotfiles profile
	ProfileSourceLine string `yaml:"profile_source_line"` // line ensured (once) in the shell profile
	BackupDir         string `yaml:"backup_dir"`          // timestamped backups of replaced files

	// Cursor settings clone: full overwrite of target with source, no merge.
	SettingsSource string `yaml:"settings_source"`
	SettingsTarget string `yaml:"settings_target"`

	// ItemDelayMS is the pause between consecutive install actions,
	// keeping the external tool from being hammered.
	ItemDelayMS int `yaml:"item_delay_ms"`
}

// ItemDelay returns the inter-item pause as a duration.
func (c Config) ItemDelay() time.Duration {
	return time.Duration(c.ItemDelayMS) * time.Millisecond
}

// Default returns the configuration used when no setup.yaml is present.
// All personal-machine destinations resolve under the given home directory.
func Default(home string) Config {
	dotfilesDir := filepath.Join(home, "dotfiles")
	return Config{
		FormulasFile:   "lists/brew.txt",
		CasksFile:      "lists/brew-apps.txt",
		ExtensionsFile: "lists/cursor-extensions.txt",
		DotFilesFile:   "lists/dot-files.txt",

		LogDir: "logs",

		DotfilesDir:   dotfilesDir,
		DotfilesEntry: ".shell_profile",
		ShellProfile:  filepath.Join(home, ".zshrc"),
		ProfileSourceLine: fmt.Sprintf(`[ -f "%s/.shell_profile" ] && source "%s/.shell_profile"`,
			dotfilesDir, dotfilesDir),
		BackupDir: filepath.Join(home, ".dotfiles_backup"),

		SettingsSource: "cursor/settings.json",
		SettingsTarget: filepath.Join(home, "Library", "Application Support", "Cursor", "User", "settings.json"),

		ItemDelayMS: 1000,
	}
}

// Load reads the YAML configuration file at path, layered on top of the defaults.
// A missing file is not an error: the defaults are returned as-is, so a fresh
// checkout works without any configuration. Any other read or parse problem is
// returned to the caller, which treats it as fatal.
func Load(path, home string) (Config, error) {
	cfg := Default(home)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	// The file nests everything under a single `setup:` key so unrelated
	// top-level keys in the same file never collide.
	wrapper := struct {
		Setup Config `yaml:"setup"`
	}{Setup: cfg}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return cfg, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	cfg = wrapper.Setup

	// Expand ~ and $HOME so list and destination paths can be written the
	// way people write them in shell configs.
	cfg.FormulasFile = expandHome(cfg.FormulasFile, home)
	cfg.CasksFile = expandHome(cfg.CasksFile, home)
	cfg.ExtensionsFile = expandHome(cfg.ExtensionsFile, home)
	cfg.DotFilesFile = expandHome(cfg.DotFilesFile, home)
	cfg.LogDir = expandHome(cfg.LogDir, home)
	cfg.DotfilesDir = expandHome(cfg.DotfilesDir, home)
	cfg.ShellProfile = expandHome(cfg.ShellProfile, home)
	cfg.BackupDir = expandHome(cfg.BackupDir, home)
	cfg.SettingsSource = expandHome(cfg.SettingsSource, home)
	cfg.SettingsTarget = expandHome(cfg.SettingsTarget, home)

	return cfg, nil
}

// expandHome rewrites a leading ~ or $HOME to the user's home directory.
func expandHome(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case strings.HasPrefix(path, "$HOME/"):
		return filepath.Join(home, path[len("$HOME/"):])
	}
	return path
}
