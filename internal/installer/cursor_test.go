package installer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorExtensionsMissingBinary(t *testing.T) {
	dir := t.TempDir()
	c := CursorExtensions{
		List:   writeList(t, dir, "golang.go\n"),
		LogDir: filepath.Join(dir, "logs"),
		Exec:   &fakeRunner{missing: map[string]bool{"cursor": true}},
	}

	err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cursor not found")
}

func TestCursorExtensionsInstallAndSkip(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{
		handler: func(name string, args ...string) ([]byte, error) {
			if strings.Join(args, " ") == "--list-extensions" {
				return []byte("golang.go\n"), nil
			}
			return []byte("Extension installed"), nil
		},
	}
	c := CursorExtensions{
		List:   writeList(t, dir, "golang.go\nesbenp.prettier-vscode\n"),
		LogDir: filepath.Join(dir, "logs"),
		Exec:   runner,
	}

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, runner.calls, "cursor --list-extensions")
	assert.Contains(t, runner.calls, "cursor --install-extension esbenp.prettier-vscode")
	assert.NotContains(t, runner.calls, "cursor --install-extension golang.go")

	log, err := os.ReadFile(filepath.Join(dir, "logs", "cursor-extensions.log"))
	require.NoError(t, err)
	assert.Contains(t, string(log), "ALREADY_INSTALLED: golang.go")
	assert.Contains(t, string(log), "SUCCESS: esbenp.prettier-vscode")
}
