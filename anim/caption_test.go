package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// noFonts forces the fallback to the built-in bitmap face.
var noFonts = []string{"/nonexistent/font.ttf"}

func TestResolveFaceFallback(t *testing.T) {
	face := resolveFace(12, noFonts)
	assert.Equal(t, basicfont.Face7x13, face)
}

func TestLayoutCaptionCentering(t *testing.T) {
	const canvasW, canvasH = 100, 100
	c := LayoutCaption("Hi", canvasW, canvasH, noFonts)

	textW := font.MeasureString(basicfont.Face7x13, "Hi").Ceil()
	w, h := c.Size()
	require.Equal(t, textW, w)
	assert.Greater(t, h, 0)

	assert.InDelta(t, float64(canvasW-textW)/2, float64(c.Origin().X), 1,
		"caption must be horizontally centered")
	assert.Equal(t, int(float64(canvasH)*captionYFrac), c.Origin().Y)
}

func TestCaptionRenderPaintsNearTop(t *testing.T) {
	const canvasW, canvasH = 100, 100
	overlay := LayoutCaption("Hi", canvasW, canvasH, noFonts).Render(canvasW, canvasH)

	painted := 0
	for y := 0; y < canvasH; y++ {
		for x := 0; x < canvasW; x++ {
			if _, _, _, a := overlay.At(x, y).RGBA(); a > 0 {
				painted++
				// Everything sits near the top anchor: between the
				// caption origin and origin+line height+shadow.
				assert.GreaterOrEqual(t, y, 5)
				assert.Less(t, y, 5+13+shadowOffset+1)
			}
		}
	}
	assert.Greater(t, painted, 0, "caption must paint some pixels")
}

func TestCaptionRenderEmptyMessage(t *testing.T) {
	overlay := LayoutCaption("", 50, 50, noFonts).Render(50, 50)
	for i := 3; i < len(overlay.Pix); i += 4 {
		if overlay.Pix[i] != 0 {
			t.Fatal("empty caption must leave the overlay fully transparent")
		}
	}
}
