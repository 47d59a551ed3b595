// Package branding stamps generated apps with the factory's monetization and
// attribution markup. Injection is a pure text transform over the final HTML.
package branding

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// loaderScript is the external ad loader inserted into the document head.
// It is only inserted when a closing head tag exists; there is no fallback
// placement (a headless document simply gets no loader).
const loaderScript = `<script async src="https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=ca-pub-XXXXXXXXXXXXXXXXX" crossorigin="anonymous"></script>`

// adSlot is the in-page advertisement placeholder. The ad-client and ad-slot
// values are placeholders to be replaced with the production account.
const adSlot = `
  <!-- KIVOSY AdSense -->
  <div style="text-align:center;margin:16px 0;">
    <ins class="adsbygoogle"
         style="display:block"
         data-ad-client="ca-pub-XXXXXXXXXXXXXXXXX"
         data-ad-slot="XXXXXXXXXX"
         data-ad-format="auto"
         data-full-width-responsive="true"></ins>
    <script>(adsbygoogle = window.adsbygoogle || []).push({});</script>
  </div>`

// Inject appends the advertisement placeholder and attribution footer
// immediately before the closing body tag (or at the end of the document when
// no closing body tag exists), and inserts the loader script immediately
// before the closing head tag when one exists.
//
// The asymmetry is intentional: footer content always appears, the loader
// script only appears when a head section exists.
func Inject(rawHTML, prompt string, id uuid.UUID) string {
	html := strings.TrimSpace(rawHTML)

	injection := adSlot + footer(prompt, id)
	if strings.Contains(html, "</body>") {
		html = strings.Replace(html, "</body>", injection+"</body>", 1)
	} else {
		html += injection
	}

	if strings.Contains(html, "</head>") {
		html = strings.Replace(html, "</head>", loaderScript+"</head>", 1)
	}

	return html
}

// footer builds the attribution block: a link back to the factory, the
// 8-character app ID prefix, and the originating prompt as a tooltip.
func footer(prompt string, id uuid.UUID) string {
	return fmt.Sprintf(`
  <footer style="margin-top:40px;padding:16px;text-align:center;font-size:12px;color:#888;border-top:1px solid #eee;">
    ⚡ Made with <a href="https://lab.kivosy.com" target="_blank" style="color:#6366f1;text-decoration:none;font-weight:600;">KIVOSY Labs</a>
    &nbsp;|&nbsp; App ID: <code style="font-size:10px;">%s</code>
    &nbsp;|&nbsp; <span title="%s">AI Generated</span>
  </footer>`, id.String()[:8], prompt)
}
