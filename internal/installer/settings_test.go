package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorSettingsCopyIntoFreshTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"editor.fontSize": 14}`), 0644))

	// Target directory does not exist yet; it must be created.
	dst := filepath.Join(dir, "Cursor", "User", "settings.json")
	s := CursorSettings{Source: src, Target: dst}

	require.NoError(t, s.Run(context.Background()))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"editor.fontSize": 14}`, string(copied))
}

func TestCursorSettingsBacksUpExistingTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "settings.json")
	dst := filepath.Join(dir, "live", "settings.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"new": true}`), 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
	require.NoError(t, os.WriteFile(dst, []byte(`{"old": true}`), 0644))

	s := CursorSettings{Source: src, Target: dst}
	require.NoError(t, s.Run(context.Background()))

	copied, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.JSONEq(t, `{"new": true}`, string(copied))

	backups, err := filepath.Glob(dst + ".backup-*")
	require.NoError(t, err)
	require.Len(t, backups, 1)
	old, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"old": true}`, string(old))
}

func TestCursorSettingsMissingSource(t *testing.T) {
	dir := t.TempDir()
	s := CursorSettings{
		Source: filepath.Join(dir, "absent.json"),
		Target: filepath.Join(dir, "out.json"),
	}

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoFileExists(t, s.Target)
}

func TestCursorSettingsInvalidSourceJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "settings.json")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte("{not json"), 0644))

	s := CursorSettings{Source: src, Target: dst}
	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
	// Nothing may be written when validation fails.
	assert.NoFileExists(t, dst)
}
