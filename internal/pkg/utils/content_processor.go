package utils

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Linebreaks escapes text and turns blank-line separated blocks into paragraphs and
// single newlines into <br>.
func Linebreaks(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	blocks := paragraphBreak.Split(text, -1)
	var b strings.Builder
	for i, block := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(block), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}

// Truncatewords keeps the first n words of text, appending an ellipsis when cut
func Truncatewords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}
