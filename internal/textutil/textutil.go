// Package textutil cleans collaborator-supplied text before extraction.
package textutil

import (
	"strings"

	"golang.org/x/net/html"
)

// StripHTML removes markup from text, keeping visible text nodes and
// skipping script, style, noscript and iframe subtrees. Text without any
// markup passes through with whitespace normalized.
func StripHTML(text string) string {
	if !strings.ContainsRune(text, '<') {
		return strings.Join(strings.Fields(text), " ")
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return strings.Join(strings.Fields(text), " ")
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}

// Truncate limits text to max runes, cutting at a rune boundary.
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

// TitleCase capitalizes the first letter of each space-separated word, so
// "jammu and kashmir" becomes "Jammu And Kashmir".
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
		}
	}
	return strings.Join(words, " ")
}
