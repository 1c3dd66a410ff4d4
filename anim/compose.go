package anim

import (
	"image"
	"image/draw"
	"math/rand/v2"
	"runtime"

	"github.com/creachadair/taskgroup"
)

// driftFrac bounds the per-render horizontal jitter to ±0.1 of the heart
// size. The jitter is re-rolled on every render on purpose: the effect
// flutters rather than drifting along a smooth path, and that look is
// kept as-is.
const driftFrac = 0.2

// Compositor assembles output frames from shared read-only inputs: the
// resized background, the pre-rendered caption overlay, the heart
// particles and the sprite cache. No frame depends on another frame's
// output, which is what makes parallel rendering safe.
type Compositor struct {
	background  *image.RGBA
	caption     *image.NRGBA
	hearts      []Heart
	cache       *SpriteCache
	totalFrames int
	height      int
}

// NewCompositor prepares the per-run state for one animation: the
// background resized and flattened to the canvas size, the caption laid
// out and rendered, and the heart particles generated from rng.
func NewCompositor(background image.Image, message string, p Params, rng *rand.Rand) *Compositor {
	fontPaths := p.FontPaths
	if fontPaths == nil {
		fontPaths = DefaultFontPaths
	}
	total := p.TotalFrames()
	return &Compositor{
		background:  resizeBackground(background, p.Width, p.Height),
		caption:     LayoutCaption(message, p.Width, p.Height, fontPaths).Render(p.Width, p.Height),
		hearts:      GenerateHearts(p.Hearts, total, p.Width, rng),
		cache:       NewSpriteCache(),
		totalFrames: total,
		height:      p.Height,
	}
}

// TotalFrames returns the number of frames in the run.
func (c *Compositor) TotalFrames() int { return c.totalFrames }

// RenderFrame composites the frame at the given index: background copy,
// caption overlay, then every heart active at that index, alpha-composited
// at its current fall position and clipped at the canvas edges. The
// result is flattened to an opaque raster. drift supplies the horizontal
// jitter for this render; a seeded source makes the frame reproducible.
func (c *Compositor) RenderFrame(idx int, drift *rand.Rand) *image.RGBA {
	frame := image.NewRGBA(c.background.Rect)
	copy(frame.Pix, c.background.Pix)

	draw.Draw(frame, frame.Rect, c.caption, image.Point{}, draw.Over)

	for _, h := range c.hearts {
		y, ok := h.PositionAt(idx, c.totalFrames, c.height)
		if !ok {
			continue
		}
		sprite := c.cache.Get(h.Size)
		jitter := (drift.Float64() - 0.5) * float64(h.Size) * driftFrac
		dest := image.Pt(h.X-h.Size/2+int(jitter), int(y))
		// draw.Draw clips sprites that straddle the canvas edges.
		draw.Draw(frame, sprite.Rect.Add(dest), sprite, image.Point{}, draw.Over)
	}

	flatten(frame)
	return frame
}

// RenderAll composites every frame in index order using a single drift
// source. This is the reference single-threaded behavior.
func (c *Compositor) RenderAll(drift *rand.Rand) []*image.RGBA {
	frames := make([]*image.RGBA, c.totalFrames)
	for i := range frames {
		frames[i] = c.RenderFrame(i, drift)
	}
	return frames
}

// RenderAllParallel composites frames across up to NumCPU workers. Each
// frame gets its own drift source derived from seed and the frame index,
// so a fixed seed yields the same sequence regardless of scheduling. The
// returned slice is in strict frame index order.
func (c *Compositor) RenderAllParallel(seed uint64) []*image.RGBA {
	frames := make([]*image.RGBA, c.totalFrames)
	g, run := taskgroup.New(nil).Limit(runtime.NumCPU())
	for i := range frames {
		run.Run(func() {
			drift := rand.New(rand.NewPCG(seed, uint64(i)))
			frames[i] = c.RenderFrame(i, drift)
		})
	}
	g.Wait()
	return frames
}

// flatten forces every pixel opaque, the equivalent of converting the
// composited frame to RGB before it is handed to an encoder.
func flatten(img *image.RGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
