package anim

import (
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
)

// HeartColor is the fill used for the falling hearts: hot pink with some
// translucency so the background stays visible through the rain.
var HeartColor = color.NRGBA{R: 255, G: 105, B: 180, A: 200}

// Proportions of the heart silhouette relative to the sprite's half-size.
// The two lobes are circles that meet at the horizontal midpoint; the
// point is a triangle whose apex touches the bottom edge.
const (
	lobeRadiusFrac = 0.65
	lobeOffsetFrac = 0.35
)

// HeartSprite rasterizes a heart of the given pixel size onto a fully
// transparent square canvas. The silhouette is the union of two circles
// (the lobes) and a triangle (the point), filled as a single
// non-zero-winding path so the translucent fill stays uniform where the
// shapes overlap.
func HeartSprite(size int, fill color.Color) *image.NRGBA {
	dc := gg.NewContext(size, size)
	defer dc.Close()

	half := float64(size) / 2
	r := half * lobeRadiusFrac
	off := half * lobeOffsetFrac

	dc.SetColor(fill)
	dc.SetFillRule(gg.FillRuleNonZero)
	// Lobes, centered r above the vertical midpoint.
	dc.DrawCircle(half-r+off, half-r, r)
	dc.DrawCircle(half+r-off, half-r, r)
	// Point. Its top edge spans the widest part of the lobes.
	dc.MoveTo(half-2*r+off, half-r)
	dc.LineTo(half+2*r-off, half-r)
	dc.LineTo(half, float64(size))
	dc.ClosePath()
	// The software rasterizer only fails on a closed context.
	_ = dc.Fill()

	// The pixmap holds straight (non-premultiplied) alpha, so hand the
	// pixels to the compositor as NRGBA.
	rgba := dc.Image().(*image.RGBA)
	return &image.NRGBA{Pix: rgba.Pix, Stride: rgba.Stride, Rect: rgba.Rect}
}

// SpriteCache memoizes rasterized heart sprites by pixel size. One cache
// lives for one animation run; the key space is bounded by the number of
// distinct heart sizes in that run, so nothing is ever evicted. Safe for
// concurrent use by parallel frame workers.
type SpriteCache struct {
	mu        sync.Mutex
	sprites   map[int]*image.NRGBA
	rasterize func(size int) *image.NRGBA
}

// NewSpriteCache returns an empty cache that rasterizes hearts in
// HeartColor on the first request for each size.
func NewSpriteCache() *SpriteCache {
	return &SpriteCache{
		sprites: make(map[int]*image.NRGBA),
		rasterize: func(size int) *image.NRGBA {
			return HeartSprite(size, HeartColor)
		},
	}
}

// Get returns the sprite for the given size, rasterizing it on first use.
func (c *SpriteCache) Get(size int) *image.NRGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	sprite, ok := c.sprites[size]
	if !ok {
		sprite = c.rasterize(size)
		c.sprites[size] = sprite
	}
	return sprite
}
