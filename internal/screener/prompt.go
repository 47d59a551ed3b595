package screener

import (
	"regexp"
	"strings"
	"unicode"
)

// PromptValidator detects prompt-injection attempts in user input before it
// reaches any model.
//
// Note: no filter is perfect. This catches the common instruction-override
// phrasings (English and Korean) but sophisticated attacks may bypass
// detection. The generation prompt template hardens the system side.
type PromptValidator struct {
	patterns []*regexp.Regexp
}

// NewPromptValidator creates a PromptValidator with the default patterns.
func NewPromptValidator() *PromptValidator {
	patterns := []string{
		`(?i)ignore previous instructions`,
		`(?i)disregard.*system`,
		`(?i)you are now`,
		`새로운 역할`,
		`이전 지시.*무시`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}

	return &PromptValidator{patterns: compiled}
}

// Detect reports whether input looks like an injection attempt.
// Returns true on the first matching pattern.
func (v *PromptValidator) Detect(input string) bool {
	normalized := normalizeInput(input)
	for _, re := range v.patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// normalizeInput prepares input for pattern matching:
//   - strips zero-width and combining characters that could evade detection
//   - collapses all whitespace runs to single spaces
func normalizeInput(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Cf, r) || unicode.Is(unicode.Mn, r) {
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
