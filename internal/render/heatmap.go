package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"go-viewer-dashboard/internal/model"
	"go-viewer-dashboard/pkg/utils"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	gridColor = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

const (
	charWidth  = 7 // basicfont.Face7x13 advance
	lineHeight = 13
	margin     = 10
)

// HeatmapOptions adds the color scale to Options. Diverging maps -1..1 to
// salmon..white..royal blue; otherwise 0..max maps white..Color.
type HeatmapOptions struct {
	Options
	Diverging bool
}

// RenderHeatmap draws a matrix as colored cells with row and column labels.
// Cell values are printed when the cell is wide enough.
func RenderHeatmap(m model.Matrix, hopts HeatmapOptions) ([]byte, error) {
	opts := hopts.Options.withDefaults()
	if len(m.Rows) == 0 || len(m.Cols) == 0 {
		return Placeholder(opts.title(m.Title), opts)
	}

	img := newCanvas(opts.Width, opts.Height)
	drawText(img, opts.title(m.Title), margin, margin+lineHeight)

	labelW := 0
	for _, r := range m.Rows {
		labelW = max(labelW, len(r)*charWidth)
	}
	labelW = min(labelW, opts.Width/3)

	left := margin + labelW + margin
	top := margin + 2*lineHeight + margin
	bottom := opts.Height - margin - lineHeight - margin
	cellW := (opts.Width - left - margin) / len(m.Cols)
	cellH := (bottom - top) / len(m.Rows)
	if cellW < 1 || cellH < 1 {
		return nil, fmt.Errorf("heatmap %dx%d does not fit in %dx%d", len(m.Rows), len(m.Cols), opts.Width, opts.Height)
	}

	maxV := 0.0
	for _, row := range m.Cells {
		for _, v := range row {
			maxV = math.Max(maxV, math.Abs(v))
		}
	}
	high := toRGBA(drawing.ColorFromHex(opts.Color))
	low := toRGBA(drawing.ColorFromHex(ColorBottom))

	for i, rk := range m.Rows {
		y0 := top + i*cellH
		drawText(img, truncate(rk, labelW/charWidth), margin, y0+cellH/2+lineHeight/2)
		for j := range m.Cols {
			x0 := left + j*cellW
			v := m.Cells[i][j]
			var c color.RGBA
			if hopts.Diverging {
				c = divergingColor(v, low, high)
			} else {
				c = sequentialColor(v, maxV, high)
			}
			cell := image.Rect(x0, y0, x0+cellW, y0+cellH)
			draw.Draw(img, cell, image.NewUniform(c), image.Point{}, draw.Src)
			drawBorder(img, cell)

			label := utils.FormatFloat(math.Round(v*100) / 100)
			if len(label)*charWidth+4 <= cellW && cellH >= lineHeight {
				drawText(img, label, x0+(cellW-len(label)*charWidth)/2, y0+cellH/2+lineHeight/2-2)
			}
		}
	}
	for j, ck := range m.Cols {
		label := truncate(ck, cellW/charWidth)
		x := left + j*cellW + (cellW-len(label)*charWidth)/2
		drawText(img, label, x, bottom+margin+lineHeight)
	}

	return encodePNG(img)
}

// Placeholder draws an empty frame with a "no data" caption.
func Placeholder(title string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	img := newCanvas(opts.Width, opts.Height)
	drawBorder(img, img.Bounds().Inset(margin))
	if title != "" {
		drawText(img, title, 2*margin, 2*margin+lineHeight)
	}
	msg := "No data for the current filter"
	drawText(img, msg, (opts.Width-len(msg)*charWidth)/2, opts.Height/2)
	return encodePNG(img)
}

func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func drawText(img *image.RGBA, text string, x, y int) {
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	dr.DrawString(text)
}

func drawBorder(img *image.RGBA, r image.Rectangle) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, gridColor)
		img.Set(x, r.Max.Y-1, gridColor)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, gridColor)
		img.Set(r.Max.X-1, y, gridColor)
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "~"
}

func toRGBA(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func sequentialColor(v, maxV float64, high color.RGBA) color.RGBA {
	if maxV == 0 {
		return white
	}
	return lerp(white, high, math.Max(0, v)/maxV)
}

func divergingColor(v float64, low, high color.RGBA) color.RGBA {
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return lerp(white, low, -v)
	}
	return lerp(white, high, v)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
