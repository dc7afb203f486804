package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default("/home/alex")

	assert.Equal(t, "lists/brew.txt", cfg.FormulasFile)
	assert.Equal(t, "lists/brew-apps.txt", cfg.CasksFile)
	assert.Equal(t, "lists/cursor-extensions.txt", cfg.ExtensionsFile)
	assert.Equal(t, "lists/dot-files.txt", cfg.DotFilesFile)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, filepath.Join("/home/alex", "dotfiles"), cfg.DotfilesDir)
	assert.Equal(t, filepath.Join("/home/alex", ".zshrc"), cfg.ShellProfile)
	assert.Contains(t, cfg.ProfileSourceLine, ".shell_profile")
	assert.Equal(t, time.Second, cfg.ItemDelay())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), "/home/alex")
	require.NoError(t, err)
	assert.Equal(t, Default("/home/alex"), cfg)
}

func TestLoadOverridesAndExpandsHome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	content := `
setup:
  formulas_file: ~/lists/brew.txt
  log_dir: $HOME/logs
  dotfiles_repo: git@github.com:alex/dotfiles.git
  item_delay_ms: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, "/home/alex")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/home/alex", "lists", "brew.txt"), cfg.FormulasFile)
	assert.Equal(t, filepath.Join("/home/alex", "logs"), cfg.LogDir)
	assert.Equal(t, "git@github.com:alex/dotfiles.git", cfg.DotfilesRepo)
	assert.Equal(t, time.Duration(0), cfg.ItemDelay())

	// Untouched fields keep their defaults.
	assert.Equal(t, "lists/brew-apps.txt", cfg.CasksFile)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("setup: [not: a: mapping"), 0644))

	_, err := Load(path, "/home/alex")
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h", expandHome("~", "/h"))
	assert.Equal(t, filepath.Join("/h", "x"), expandHome("~/x", "/h"))
	assert.Equal(t, filepath.Join("/h", "x"), expandHome("$HOME/x", "/h"))
	assert.Equal(t, "/abs/x", expandHome("/abs/x", "/h"))
	assert.Equal(t, "rel/x", expandHome("rel/x", "/h"))
}
