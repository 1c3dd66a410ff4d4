package anim

import (
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultFontPaths lists common locations of usable TrueType fonts. On
// Linux servers the DejaVu faces are usually present. Add paths as
// needed; a built-in bitmap face covers the case where none resolve.
var DefaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/freefont/FreeSansBold.ttf",
}

// Caption placement relative to the canvas, and the two text passes.
const (
	fontHeightFrac = 0.06 // font size as a fraction of canvas height
	captionYFrac   = 0.05 // top anchor as a fraction of canvas height
	shadowOffset   = 2    // shadow pass offset, pixels down and right
)

var (
	captionFill   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	captionShadow = color.NRGBA{A: 160}
)

// Caption is the measured and positioned message text. It is computed
// once per animation run and rendered once; every frame composites the
// resulting overlay.
type Caption struct {
	text   string
	face   font.Face
	origin image.Point // top-left corner of the main text pass
	width  int
	height int
}

// LayoutCaption resolves a font through the fallback chain, measures the
// message at a size proportional to the canvas height, and centers it
// horizontally near the top of the canvas.
func LayoutCaption(text string, canvasW, canvasH int, fontPaths []string) *Caption {
	size := float64(canvasH) * fontHeightFrac
	face := resolveFace(size, fontPaths)
	w := font.MeasureString(face, text).Ceil()
	m := face.Metrics()
	return &Caption{
		text:   text,
		face:   face,
		origin: image.Pt((canvasW-w)/2, int(float64(canvasH)*captionYFrac)),
		width:  w,
		height: (m.Ascent + m.Descent).Ceil(),
	}
}

// resolveFace tries each font path in order and returns a face for the
// first file that reads and parses. When none do, it falls back to the
// built-in fixed bitmap face, so caption drawing never fails just
// because a system is missing font assets.
func resolveFace(size float64, paths []string) font.Face {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := freetype.ParseFont(data)
		if err != nil {
			continue
		}
		return truetype.NewFace(f, &truetype.Options{
			Size:    size,
			Hinting: font.HintingFull,
		})
	}
	return basicfont.Face7x13
}

// Origin returns the top-left corner of the main text pass.
func (c *Caption) Origin() image.Point { return c.origin }

// Size returns the measured pixel width and height of the text.
func (c *Caption) Size() (w, h int) { return c.width, c.height }

// Render draws the caption onto a transparent canvas-sized overlay: a
// translucent dark shadow offset down and right, then the white text on
// top of it. Rendering once and compositing the overlay per frame gives
// the same pixels as drawing the two passes on every frame, and keeps
// the font face off the parallel render path (truetype faces are not
// safe for concurrent use).
func (c *Caption) Render(canvasW, canvasH int) *image.NRGBA {
	overlay := image.NewNRGBA(image.Rect(0, 0, canvasW, canvasH))
	baseline := c.origin.Y + c.face.Metrics().Ascent.Ceil()
	c.drawPass(overlay, c.origin.X+shadowOffset, baseline+shadowOffset, captionShadow)
	c.drawPass(overlay, c.origin.X, baseline, captionFill)
	return overlay
}

func (c *Caption) drawPass(dst draw.Image, x, y int, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(c.text)
}
