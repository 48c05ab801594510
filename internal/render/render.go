// Package render converts article Markdown to HTML for detail views
// and to plain text for excerpts and search previews.
package render

import (
	"strings"
	"unicode"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

// HTML converts Markdown source to HTML.
func HTML(markdown string) string {
	extensions := blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags,
	})
	out := blackfriday.Run([]byte(markdown), blackfriday.WithRenderer(renderer), blackfriday.WithExtensions(extensions))
	return string(out)
}

// PlainText strips tags from an HTML fragment, returning the visible
// text with collapsed whitespace. Script and style content is dropped.
func PlainText(htmlContent string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlContent))
	var b strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tokenizer.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// Excerpt renders Markdown to plain text and truncates it to at most
// max runes, cutting at a word boundary.
func Excerpt(markdown string, max int) string {
	text := PlainText(HTML(markdown))
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	cut := max
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "…"
}

// collapseWhitespace squeezes runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
