package installer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itaimoorali/sys-setup/internal/logger"
)

// CursorSettings copies the tracked Cursor settings file over the live one.
// Full overwrite only, no merge: the file in the repo is the source of truth.
type CursorSettings struct {
	Source string
	Target string
}

func (s CursorSettings) Name() string { return "Cursor settings" }

// Run validates the source parses as JSON, backs up any existing target to a
// timestamped sibling, copies the source over the target, and re-validates
// the copy. Validation is structural only, no schema beyond "is parseable".
func (s CursorSettings) Run(ctx context.Context) error {
	raw, err := os.ReadFile(s.Source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("settings source %s not found: add your Cursor settings.json there first", s.Source)
		}
		return fmt.Errorf("read settings source %s: %w", s.Source, err)
	}
	if err := validateJSON(raw); err != nil {
		return fmt.Errorf("settings source %s is not valid JSON: %w", s.Source, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Target), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	if _, err := os.Stat(s.Target); err == nil {
		backup := s.Target + ".backup-" + timestamp()
		if err := copyFile(s.Target, backup); err != nil {
			return fmt.Errorf("back up existing settings: %w", err)
		}
		logger.Info("[INFO] Backed up existing settings to %s\n", backup)
	}

	if err := copyFile(s.Source, s.Target); err != nil {
		return fmt.Errorf("copy settings: %w", err)
	}

	copied, err := os.ReadFile(s.Target)
	if err != nil {
		return fmt.Errorf("re-read copied settings: %w", err)
	}
	if err := validateJSON(copied); err != nil {
		return fmt.Errorf("copied settings %s corrupted in transit: %w", s.Target, err)
	}

	logger.Info("[INFO] Cursor settings applied to %s\n", s.Target)
	return nil
}

// validateJSON reports whether raw is a well-formed JSON document.
func validateJSON(raw []byte) error {
	var v any
	return json.Unmarshal(raw, &v)
}
