package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	got := Render("# Title\n\nSome **bold** text.")
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderStripsScript(t *testing.T) {
	got := Render("hello <script>alert(1)</script> world")
	if strings.Contains(got, "<script") || strings.Contains(got, "alert(1)") {
		t.Errorf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "hello") {
		t.Errorf("content lost: %q", got)
	}
}

func TestRenderKeepsTables(t *testing.T) {
	got := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if !strings.Contains(got, "<table>") {
		t.Errorf("GFM table not rendered: %q", got)
	}
}

func TestRenderNeutralizesEventHandlers(t *testing.T) {
	got := Render(`<img src="x" onerror="alert(1)">`)
	if strings.Contains(got, "onerror") {
		t.Errorf("event handler survived: %q", got)
	}
}
