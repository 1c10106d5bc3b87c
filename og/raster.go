package og

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// JPEGRasterizer draws the card natively with the loaded fonts and encodes
// it as JPEG. It fails when the font bytes cannot be parsed, which is the
// cue for the renderer to degrade.
type JPEGRasterizer struct {
	Quality int
}

func (jr *JPEGRasterizer) Rasterize(card *Card) ([]byte, error) {
	if len(card.Fonts) == 0 {
		return nil, fmt.Errorf("og: no fonts loaded")
	}

	regular, bold, err := pickFaces(card.Fonts)
	if err != nil {
		return nil, err
	}

	opts := card.Options
	bg := parseHexColor(opts.Background, color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff})
	fg := parseHexColor(opts.Foreground, color.RGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff})
	accent := parseHexColor(opts.Accent, color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff})

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, 16, Height), image.NewUniform(accent), image.Point{}, draw.Src)

	titleFace, err := newFace(bold, titleSize)
	if err != nil {
		return nil, err
	}
	descFace, err := newFace(regular, descSize)
	if err != nil {
		return nil, err
	}
	footerFace, err := newFace(regular, footerSize)
	if err != nil {
		return nil, err
	}

	maxWidth := fixed.I(Width - 2*marginX)
	y := 180
	for _, line := range wrapMeasured(titleFace, opts.Title, maxWidth) {
		drawString(img, titleFace, fg, marginX, y, line)
		y += titleLineGap
	}
	y += 24
	for _, line := range wrapMeasured(descFace, opts.Description, maxWidth) {
		drawString(img, descFace, fg, marginX, y, line)
		y += descLineGap
	}

	if !opts.HideFooter {
		if opts.Handle != "" {
			drawString(img, footerFace, accent, marginX, Height-60, opts.Handle)
		}
		if opts.URL != "" {
			drawString(img, footerFace, fg, Width/2, Height-60, opts.URL)
		}
	}

	quality := jr.Quality
	if quality == 0 {
		quality = 90
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("og: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// pickFaces parses the font set, choosing the heaviest weight for titles and
// the lightest for body text.
func pickFaces(fonts []Font) (regular, bold *sfnt.Font, err error) {
	for _, f := range fonts {
		parsed, perr := opentype.Parse(f.Data)
		if perr != nil {
			return nil, nil, fmt.Errorf("og: parse font %s: %w", f.Path, perr)
		}
		if f.Weight >= 700 {
			bold = parsed
		} else if regular == nil {
			regular = parsed
		}
	}
	if regular == nil {
		regular = bold
	}
	if bold == nil {
		bold = regular
	}
	return regular, bold, nil
}

func newFace(f *sfnt.Font, size int) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func drawString(dst *image.RGBA, face font.Face, col color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// wrapMeasured wraps text into lines no wider than maxWidth as measured with
// face, breaking on spaces.
func wrapMeasured(face font.Face, text string, maxWidth fixed.Int26_6) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	measure := &font.Drawer{Face: face}
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line != "" && measure.MeasureString(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// parseHexColor parses #RGB or #RRGGBB, returning fallback on anything else.
func parseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	hex := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	switch len(s) {
	case 3:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			v, ok := hex(s[i])
			if !ok {
				return fallback
			}
			out[i] = v*16 + v
		}
		return color.RGBA{R: out[0], G: out[1], B: out[2], A: 0xff}
	case 6:
		var out [3]uint8
		for i := 0; i < 3; i++ {
			hi, ok1 := hex(s[2*i])
			lo, ok2 := hex(s[2*i+1])
			if !ok1 || !ok2 {
				return fallback
			}
			out[i] = hi*16 + lo
		}
		return color.RGBA{R: out[0], G: out[1], B: out[2], A: 0xff}
	}
	return fallback
}
