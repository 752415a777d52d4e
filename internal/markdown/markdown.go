// Package markdown renders topic and template bodies to sanitized HTML.
package markdown

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
	// Topic content is author-supplied, so everything goes through the UGC
	// policy even though only admins can write it.
	policy = func() *bluemonday.Policy {
		p := bluemonday.UGCPolicy()
		p.AllowTables()
		return p
	}()
)

// Render converts markdown source to HTML safe to inject into the page.
// Raw HTML in the source survives goldmark but is stripped by the policy.
func Render(src string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		// Conversion only fails on writer errors, which bytes.Buffer
		// never produces. Fall back to the escaped source.
		return policy.Sanitize(src)
	}
	return policy.Sanitize(buf.String())
}
