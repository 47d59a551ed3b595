// Package session persists the ID of the most recently generated app so
// commands like modify and open can default to it.
package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// LoadLastAppID loads the most recently generated app ID from the state
// file at path.
//
// Returns (nil, nil) if the state file doesn't exist or is empty; having no
// last app is not an error.
func LoadLastAppID(path string) (*uuid.UUID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}

	idStr := strings.TrimSpace(string(data))
	if idStr == "" {
		return nil, nil
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid app ID in state file: %w", err)
	}

	return &id, nil
}

// SaveLastAppID records id as the most recently generated app.
func SaveLastAppID(path string, id uuid.UUID) error {
	if err := os.WriteFile(path, []byte(id.String()), 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}

// ClearLastAppID removes the state file. Idempotent: clearing when no
// state file exists is not an error.
func ClearLastAppID(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing state file: %w", err)
	}
	return nil
}
