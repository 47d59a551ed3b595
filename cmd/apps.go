package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kivosy/factory/internal/appstore"
	"github.com/kivosy/factory/internal/session"
)

// shortID is the 8-character prefix shown in listings, enough to
// disambiguate within a 50-entry history.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// resolveAppID turns a command argument into a full app ID. Accepts a full
// UUID or a unique prefix of one from the history index. With no argument
// it falls back to the most recently generated app recorded at sessionPath.
func resolveAppID(index []appstore.IndexEntry, sessionPath string, args []string) (uuid.UUID, error) {
	if len(args) == 0 {
		last, err := session.LoadLastAppID(sessionPath)
		if err != nil {
			return uuid.Nil, fmt.Errorf("loading session state: %w", err)
		}
		if last == nil {
			return uuid.Nil, errors.New("no app ID given and no app generated yet in this session")
		}
		return *last, nil
	}

	arg := strings.ToLower(strings.TrimSpace(args[0]))
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	var matches []uuid.UUID
	for _, entry := range index {
		if strings.HasPrefix(entry.UUID, arg) {
			id, err := uuid.Parse(entry.UUID)
			if err != nil {
				continue
			}
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("no app matches %q", args[0])
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, fmt.Errorf("%q is ambiguous: matches %d apps", args[0], len(matches))
	}
}
