package render

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// BodyText converts a raw response body into a single line of readable text.
// Error pages served by proxies or the server's default handler arrive as
// HTML; anything else is returned trimmed and whitespace-collapsed.
func BodyText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !looksLikeHTML(raw) {
		return collapse(raw)
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var sb strings.Builder
	skip := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return collapse(html.UnescapeString(sb.String()))

		case xhtml.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "head":
				skip++
			case "p", "br", "div", "h1", "h2", "h3", "li", "title":
				sb.WriteString(" ")
			}

		case xhtml.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "head":
				if skip > 0 {
					skip--
				}
			}
			sb.WriteString(" ")

		case xhtml.TextToken:
			if skip > 0 {
				continue
			}
			sb.Write(tokenizer.Text())
		}
	}
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") ||
		strings.HasPrefix(lower, "<html") ||
		(strings.HasPrefix(lower, "<") && strings.Contains(lower, "</"))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
