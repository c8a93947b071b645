// Package imagegen draws the shareable comparison card and stores rendered
// cards on disk.
package imagegen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	Width  = 1200
	Height = 730

	padding    = 70
	lineHeight = 60
	maxWidth   = 1060
)

var (
	purple    = color.NRGBA{0x93, 0x33, 0xea, 0xff}
	watermark = color.NRGBA{0x99, 0x45, 0xff, 0x66}
)

type palette struct {
	background, text, secondary color.Color
}

func paletteFor(dark bool) palette {
	if dark {
		return palette{
			background: color.NRGBA{0x23, 0x23, 0x23, 0xff},
			text:       color.White,
			secondary:  color.NRGBA{0x9c, 0xa3, 0xaf, 0xff},
		}
	}
	return palette{
		background: color.White,
		text:       color.Black,
		secondary:  color.NRGBA{0x6b, 0x72, 0x80, 0xff},
	}
}

// Renderer draws cards. Faces are shared, so Render is serialized.
type Renderer struct {
	mu      sync.Mutex
	title   font.Face
	body    font.Face
	mark    font.Face
	footer  font.Face
	footerB font.Face
}

func NewRenderer() (*Renderer, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	r := &Renderer{}
	faces := []struct {
		dst  *font.Face
		font *opentype.Font
		size float64
	}{
		{&r.title, bold, 72},
		{&r.body, bold, 48},
		{&r.mark, bold, 120},
		{&r.footer, regular, 32},
		{&r.footerB, bold, 32},
	}
	for _, f := range faces {
		face, err := opentype.NewFace(f.font, &opentype.FaceOptions{Size: f.size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("font face %.0fpt: %w", f.size, err)
		}
		*f.dst = face
	}
	return r, nil
}

// Render returns the card as PNG bytes.
func (r *Renderer) Render(c Card) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pal := paletteFor(c.DarkMode)
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(pal.background), image.Point{}, draw.Src)

	// Heading: "IF I bought SOL ..."
	x := padding
	for _, part := range []struct {
		text string
		col  color.Color
	}{
		{"IF", purple},
		{" I bought ", pal.text},
		{"SOL", purple},
		{" ...", pal.text},
	} {
		x += drawText(img, r.title, part.col, part.text, x, padding+60)
	}

	for _, p := range Layout(c.Segments(), measurer(r.body), maxWidth) {
		col := pal.text
		if p.Highlight {
			col = pal.secondary
		}
		drawText(img, r.body, col, p.Text, padding+p.X, padding+140+p.Line*lineHeight)
	}

	drawText(img, r.mark, watermark, "IFSOL", 700, 580)

	footerY := Height - 30
	tryWidth := measurer(r.footer)("Try it yourself ")
	drawText(img, r.footer, pal.secondary, "Try it yourself", padding, footerY)
	drawText(img, r.footerB, pal.text, "www.ifsol.xyz", padding+tryWidth, footerY)
	handle := "@ifsolxyz"
	drawText(img, r.footerB, pal.text, handle, Width-padding-measurer(r.footerB)(handle), footerY)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawText draws s with its baseline at y and returns the advance in pixels.
func drawText(dst draw.Image, face font.Face, col color.Color, s string, x, y int) int {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	start := d.Dot.X
	d.DrawString(s)
	return (d.Dot.X - start).Ceil()
}

func measurer(face font.Face) func(string) int {
	return func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}
}
