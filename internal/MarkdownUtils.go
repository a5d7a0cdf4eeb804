package internal

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// RenderMarkdown converts a CommonMark string to HTML using Goldmark,
// with GFM extensions enabled.
func RenderMarkdown(input string) string {
	gm := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables in the per-server sections
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // anchors for the server index
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(), // documentation strings may embed raw HTML
		),
	)

	var buf bytes.Buffer
	if err := gm.Convert([]byte(input), &buf); err != nil {
		return input
	}
	return buf.String()
}
