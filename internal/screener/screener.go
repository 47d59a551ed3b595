// Package screener provides static safety screening for the app factory.
//
// Two screens are implemented:
//   - code screening: a fixed denylist of dangerous constructs evaluated
//     against generated HTML/JS, plus a size ceiling
//   - prompt screening: injection-intent detection over user prompts
//
// Both are advisory. The code screen is pattern matching, not sandboxing:
// obfuscated or dynamically-constructed dangerous code will pass it. The
// generated app still runs with whatever authority the embedding page grants.
package screener

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxCodeSizeKB is the ceiling on generated app size.
const MaxCodeSizeKB = 500

// AllowedCDNs lists hosts that generated apps may load external resources
// from. Referenced by the code screen and by the generation prompt template.
var AllowedCDNs = []string{
	"cdn.jsdelivr.net",
	"unpkg.com",
	"cdnjs.cloudflare.com",
	"fonts.googleapis.com",
	"fonts.gstatic.com",
	"cdn.tailwindcss.com",
	"code.jquery.com",
	"stackpath.bootstrapcdn.com",
}

// allowedURLPrefixes are the URL prefixes the denylist treats as safe targets
// for fetch calls and script tags. Kept as prefixes rather than parsed hosts
// because the screen inspects string literals, not live URLs.
var allowedURLPrefixes = []string{
	"https://cdn.",
	"https://fonts.",
	"https://cdnjs.",
	"https://unpkg.",
	"https://jsdelivr.",
}

// Report is the outcome of screening a piece of generated code.
type Report struct {
	Safe   bool     // true iff Issues is empty
	Issues []string // one entry per matched rule, in rule order
	SizeKB float64  // code size in kilobytes
}

// rule is one denylist entry. Rules either match directly via pattern, or
// capture an argument via pattern and reject it through disallow (used where
// the original intent is "matches X with a non-allowlisted target", which
// RE2 cannot express as a single pattern).
type rule struct {
	pattern  *regexp.Regexp
	issue    string
	disallow func(arg string) bool // nil = plain match
}

// Screener evaluates generated code against the denylist.
type Screener struct {
	rules []rule
}

// New creates a Screener with the default denylist.
func New() *Screener {
	return &Screener{rules: []rule{
		{
			pattern: regexp.MustCompile(`(?i)\brm\s+-rf\b`),
			issue:   "shell deletion command (rm -rf)",
		},
		{
			pattern: regexp.MustCompile(`(?i)\bexec\s*\(`),
			issue:   "dynamic code execution (exec)",
		},
		{
			pattern: regexp.MustCompile(`(?i)\beval\s*\(`),
			issue:   "dynamic code execution (eval)",
		},
		{
			pattern: regexp.MustCompile(`(?i)document\.cookie`),
			issue:   "cookie access (document.cookie)",
		},
		{
			pattern: regexp.MustCompile(`(?i)localStorage\.getItem\s*\(\s*['"]kivosy_`),
			issue:   "cross-tab read of factory-owned storage keys",
		},
		{
			pattern:  regexp.MustCompile(`(?i)fetch\s*\(\s*['"]([^'"]*)`),
			issue:    "fetch to non-allowlisted host",
			disallow: disallowedURL,
		},
		{
			pattern: regexp.MustCompile(`(?i)XMLHttpRequest`),
			issue:   "raw XMLHttpRequest",
		},
		{
			pattern: regexp.MustCompile(`(?i)navigator\.sendBeacon`),
			issue:   "cross-origin beacon (navigator.sendBeacon)",
		},
		{
			pattern:  regexp.MustCompile(`(?i)window\.open\s*\(\s*['"]([^'"]*)`),
			issue:    "window.open to a non-anchor target",
			disallow: func(arg string) bool { return !strings.HasPrefix(arg, "#") },
		},
		{
			pattern:  regexp.MustCompile(`(?i)<script\s+src\s*=\s*['"]([^'"]*)`),
			issue:    "external script outside the CDN allowlist",
			disallow: disallowedURL,
		},
		{
			pattern: regexp.MustCompile(`(?i)atob\s*\(`),
			issue:   "base64 decode (atob)",
		},
		{
			pattern: regexp.MustCompile(`(?is)btoa\s*\(.*fetch`),
			issue:   "base64 encode followed by network send",
		},
	}}
}

// ScreenCode evaluates code against every rule in order. Matching is
// independent per rule: all matches are collected, never short-circuited.
// The report is safe iff no rule matched and the size ceiling holds.
func (s *Screener) ScreenCode(code string) Report {
	var issues []string

	for _, r := range s.rules {
		if r.disallow == nil {
			if r.pattern.MatchString(code) {
				issues = append(issues, fmt.Sprintf("dangerous pattern detected: %s", r.issue))
			}
			continue
		}
		for _, m := range r.pattern.FindAllStringSubmatch(code, -1) {
			if r.disallow(strings.ToLower(m[1])) {
				issues = append(issues, fmt.Sprintf("dangerous pattern detected: %s", r.issue))
				break // one issue per rule, however many occurrences
			}
		}
	}

	sizeKB := float64(len(code)) / 1024
	if sizeKB > MaxCodeSizeKB {
		issues = append(issues, fmt.Sprintf("file size exceeded: %.1fKB (max %dKB)", sizeKB, MaxCodeSizeKB))
	}

	return Report{
		Safe:   len(issues) == 0,
		Issues: issues,
		SizeKB: sizeKB,
	}
}

// disallowedURL reports whether a captured URL literal falls outside the
// allowlisted prefixes. The argument is already lowercased.
func disallowedURL(arg string) bool {
	for _, prefix := range allowedURLPrefixes {
		if strings.HasPrefix(arg, prefix) {
			return false
		}
	}
	return true
}
