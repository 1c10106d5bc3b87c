// Package markdown renders markdown content as a templ component.
package markdown

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdOnce sync.Once
	md     goldmark.Markdown
)

func engine() goldmark.Markdown {
	mdOnce.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		)
	})
	return md
}

// Render converts markdown source to HTML.
func Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := engine().Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Component returns a templ.Component that renders source as HTML.
// Conversion happens once, at construction, not per render.
func Component(source []byte) (templ.Component, error) {
	out, err := Render(source)
	if err != nil {
		return nil, err
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write(out)
		return err
	}), nil
}
