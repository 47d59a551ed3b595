package appstore

import (
	"time"

	"github.com/google/uuid"
)

// maxPromptLen is the number of characters of the originating prompt kept in
// index entries. The full prompt is never persisted.
const maxPromptLen = 100

// maxIndexEntries caps the app index. Saving past the cap evicts the oldest
// entry; the evicted app's full HTML record is intentionally left behind so
// it stays recoverable by ID (see package doc).
const maxIndexEntries = 50

// IndexEntry is the metadata subset of a generated app, used for listing
// without loading full HTML. JSON field names are the persisted wire format.
type IndexEntry struct {
	UUID      string `json:"uuid"`
	Prompt    string `json:"prompt"`    // truncated to 100 characters
	CreatedAt string `json:"createdAt"` // ISO-8601, UTC
	SizeKB    string `json:"sizeKB"`    // one decimal, e.g. "12.4"
}

// newIndexEntry stamps metadata for a saved app.
func newIndexEntry(id uuid.UUID, html, prompt string, now time.Time) IndexEntry {
	return IndexEntry{
		UUID:      id.String(),
		Prompt:    truncatePrompt(prompt),
		CreatedAt: now.UTC().Format(time.RFC3339),
		SizeKB:    sizeKB(html),
	}
}

// truncatePrompt trims prompt to maxPromptLen characters, rune-safe.
func truncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= maxPromptLen {
		return prompt
	}
	return string(runes[:maxPromptLen])
}
