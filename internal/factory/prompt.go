package factory

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kivosy/factory/internal/screener"
)

const systemPromptTemplate = `You are an expert frontend developer. Generate a COMPLETE, self-contained HTML page.

REQUIREMENTS:
- Single HTML file with embedded CSS and JavaScript
- No external dependencies EXCEPT CDN from: %s
- Must work offline after initial CDN load
- Clean, modern, responsive UI
- Fully functional, not a mockup
- NO eval(), NO exec(), NO document.cookie, NO fetch to unknown domains
- Korean UI labels preferred if the app is for Korean users

USER REQUEST: "%s"

Output ONLY raw HTML code. No markdown fences, no explanation, no comments outside the code.`

// buildSystemPrompt wraps the user request in the generation instructions.
// The CDN allowlist is shared with the security screen so the model is told
// exactly what the screen will accept.
func buildSystemPrompt(userPrompt string) string {
	return fmt.Sprintf(systemPromptTemplate, strings.Join(screener.AllowedCDNs, ", "), userPrompt)
}

// buildModifyPrompt wraps an edit instruction together with the current app
// source so the model regenerates the full page.
func buildModifyPrompt(instruction, currentHTML string) string {
	return fmt.Sprintf("Modify the following HTML app.\n\nRequest: %s\n\nCurrent HTML:\n%s", instruction, currentHTML)
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^```[a-z]*\n?")
	fenceClose = regexp.MustCompile("\n?```$")
)

// cleanOutput strips the markdown code fence (optionally language-tagged)
// that models wrap their output in despite instructions not to. Unfenced
// text passes through unchanged.
func cleanOutput(raw string) string {
	out := strings.TrimSpace(raw)
	out = fenceOpen.ReplaceAllString(out, "")
	out = fenceClose.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
