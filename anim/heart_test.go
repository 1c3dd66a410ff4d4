package anim

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeartSpriteDimensions(t *testing.T) {
	for _, size := range []int{1, 8, 21, 64} {
		sprite := HeartSprite(size, HeartColor)
		assert.Equal(t, image.Rect(0, 0, size, size), sprite.Bounds(), "size %d", size)
	}
}

func TestHeartSpriteCorners(t *testing.T) {
	const size = 64
	sprite := HeartSprite(size, HeartColor)
	for _, pt := range []image.Point{
		{0, 0}, {size - 1, 0}, {0, size - 1}, {size - 1, size - 1},
	} {
		_, _, _, a := sprite.At(pt.X, pt.Y).RGBA()
		assert.Zero(t, a, "corner %v should be transparent", pt)
	}
}

func TestHeartSpriteCoverage(t *testing.T) {
	const size = 64
	sprite := HeartSprite(size, HeartColor)

	filled := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if _, _, _, a := sprite.At(x, y).RGBA(); a > 0 {
				filled++
			}
		}
	}
	ratio := float64(filled) / float64(size*size)
	assert.Greater(t, ratio, 0.3, "heart should cover a plausible share of its square")
	assert.Less(t, ratio, 0.85, "heart should not cover the whole square")

	// The middle of the canvas sits inside the point of the heart.
	_, _, _, a := sprite.At(size/2, size/2).RGBA()
	assert.NotZero(t, a)
}

func TestSpriteCacheRasterizesOnce(t *testing.T) {
	cache := NewSpriteCache()
	calls := 0
	base := cache.rasterize
	cache.rasterize = func(size int) *image.NRGBA {
		calls++
		return base(size)
	}

	first := cache.Get(24)
	second := cache.Get(24)

	require.Equal(t, 1, calls, "second request must be served from the cache")
	assert.Same(t, first, second)
	assert.True(t, bytes.Equal(first.Pix, second.Pix))

	cache.Get(25)
	assert.Equal(t, 2, calls, "a new size rasterizes again")
}
