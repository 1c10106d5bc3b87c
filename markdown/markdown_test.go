package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderHeading(t *testing.T) {
	out, err := Render([]byte("# Hello\n\nSome text."))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Hello") {
		t.Errorf("missing heading: %q", got)
	}
	if !strings.Contains(got, "<p>Some text.</p>") {
		t.Errorf("missing paragraph: %q", got)
	}
}

func TestRenderGFMTable(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	out, err := Render([]byte(src))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(string(out), "<table>") {
		t.Errorf("GFM table not rendered: %q", out)
	}
}

func TestRenderFencedCode(t *testing.T) {
	out, err := Render([]byte("```go\nfmt.Println(\"hi\")\n```"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	got := string(out)
	if !strings.Contains(got, "<pre>") || !strings.Contains(got, "language-go") {
		t.Errorf("fenced code block not rendered: %q", got)
	}
}

func TestComponentWritesHTML(t *testing.T) {
	cmp, err := Component([]byte("*emphasis*"))
	if err != nil {
		t.Fatalf("Component failed: %v", err)
	}
	var buf bytes.Buffer
	if err := cmp.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<em>emphasis</em>") {
		t.Errorf("component output = %q", buf.String())
	}
}
