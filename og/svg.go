package og

import (
	"bytes"
	"encoding/xml"
	"strings"
)

type svgDoc struct {
	XMLName xml.Name  `xml:"svg"`
	XMLNS   string    `xml:"xmlns,attr"`
	Width   int       `xml:"width,attr"`
	Height  int       `xml:"height,attr"`
	ViewBox string    `xml:"viewBox,attr"`
	Rects   []svgRect `xml:"rect"`
	Texts   []svgText `xml:"text"`
}

type svgRect struct {
	X      int    `xml:"x,attr"`
	Y      int    `xml:"y,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
	Fill   string `xml:"fill,attr"`
}

type svgText struct {
	X          int    `xml:"x,attr"`
	Y          int    `xml:"y,attr"`
	Fill       string `xml:"fill,attr"`
	FontFamily string `xml:"font-family,attr"`
	FontSize   int    `xml:"font-size,attr"`
	FontWeight int    `xml:"font-weight,attr"`
	Content    string `xml:",chardata"`
}

// Layout constants for the vector document.
const (
	marginX       = 80
	titleSize     = 64
	titleLineGap  = 78
	descSize      = 30
	descLineGap   = 42
	footerSize    = 26
	titleMaxChars = 28
	descMaxChars  = 64
)

// ComposeSVG renders opts into a 1200x630 vector document using the loaded
// font families. The output always begins with an XML declaration so content
// sniffing can recognize it as vector markup.
func ComposeSVG(opts Options, fonts []Font) []byte {
	bg := orDefault(opts.Background, "#0f172a")
	fg := orDefault(opts.Foreground, "#f8fafc")
	accent := orDefault(opts.Accent, "#38bdf8")
	family := "sans-serif"
	if len(fonts) > 0 {
		family = fonts[0].Family
	}

	doc := svgDoc{
		XMLNS:   "http://www.w3.org/2000/svg",
		Width:   Width,
		Height:  Height,
		ViewBox: "0 0 1200 630",
		Rects: []svgRect{
			{X: 0, Y: 0, Width: Width, Height: Height, Fill: bg},
			{X: 0, Y: 0, Width: 16, Height: Height, Fill: accent},
		},
	}

	y := 180
	for _, line := range wrapRunes(opts.Title, titleMaxChars) {
		doc.Texts = append(doc.Texts, svgText{
			X: marginX, Y: y, Fill: fg, FontFamily: family,
			FontSize: titleSize, FontWeight: 700, Content: line,
		})
		y += titleLineGap
	}
	y += 24
	for _, line := range wrapRunes(opts.Description, descMaxChars) {
		doc.Texts = append(doc.Texts, svgText{
			X: marginX, Y: y, Fill: fg, FontFamily: family,
			FontSize: descSize, FontWeight: 400, Content: line,
		})
		y += descLineGap
	}

	if !opts.HideFooter {
		if opts.Handle != "" {
			doc.Texts = append(doc.Texts, svgText{
				X: marginX, Y: Height - 60, Fill: accent, FontFamily: family,
				FontSize: footerSize, FontWeight: 700, Content: opts.Handle,
			})
		}
		if opts.URL != "" {
			doc.Texts = append(doc.Texts, svgText{
				X: Width / 2, Y: Height - 60, Fill: fg, FontFamily: family,
				FontSize: footerSize, FontWeight: 400, Content: opts.URL,
			})
		}
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		// Encoding a static struct tree cannot fail on well-formed input;
		// return what we have rather than introduce an error path.
		return buf.Bytes()
	}
	return buf.Bytes()
}

// wrapRunes greedily wraps text into lines of at most max runes, breaking on
// spaces. Good enough for a preview card; the rasterizer does proper
// measurement-based wrapping.
func wrapRunes(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wl := len([]rune(word))
		if lineLen > 0 && lineLen+1+wl > max {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wl
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
