// Package sanitizer cleans untrusted HTML with bluemonday policies.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	emailPolicy  *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		// Email bodies are built from tables with inline styles, so the
		// policy starts from UGC and re-allows the presentational styles.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowElements("html", "head", "body", "center", "font")
		emailPolicy.AllowStyles(
			"background-color", "border", "border-bottom", "border-collapse",
			"border-radius", "border-top", "color", "font-family", "font-size", "font-weight",
			"line-height", "margin", "margin-bottom", "margin-top", "max-width", "padding",
			"text-align", "vertical-align", "white-space", "width",
		).Globally()
		emailPolicy.AllowAttrs("align", "width", "cellpadding", "cellspacing", "border").OnElements("table", "td", "th")
		emailPolicy.AllowURLSchemes("mailto", "tel", "http", "https")
		emailPolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns plain text.
// Use for provider text that ends up in logs.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeEmailHTML keeps the layout markup used in transactional emails
// (tables, inline styles, mailto/tel links) and strips scripts, event
// handlers and javascript: URLs.
func SanitizeEmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}
