// Package render converts post markdown into HTML for the single-post view.
//
// Posts are written in markdown in the admin UI. The list endpoint returns
// the raw markdown (the frontend shows excerpts as plain text), but the
// single-post read also includes a server-rendered HTML body so the public
// blog page doesn't need a client-side markdown parser.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// Markdown converts a markdown source string to HTML.
//
// goldmark's defaults are CommonMark-compliant and — importantly — do NOT
// pass raw HTML through, so post content can't smuggle script tags into the
// rendered page.
func Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render: converting markdown: %w", err)
	}
	return buf.String(), nil
}
