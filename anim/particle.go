package anim

import "math/rand/v2"

// Heart describes one falling heart particle. All fields are fixed when
// the run's particles are generated; the per-frame horizontal drift is
// applied at render time and deliberately not stored (see Compositor).
type Heart struct {
	StartFrame int // first frame index at which the heart is visible
	X          int // horizontal anchor, pixels from the left edge
	Size       int // side of the sprite's bounding square, pixels
}

// Size limits for generated hearts, as fractions of the canvas width, so
// the rain scales with the canvas rather than the frame rate.
const (
	minHeartFrac = 0.03
	maxHeartFrac = 0.08
)

// GenerateHearts creates count hearts with randomized start frames,
// horizontal positions and sizes. Start frames land in the first half of
// the run, so hearts keep appearing instead of all dropping at once and
// every heart has at least half the animation to finish its fall.
func GenerateHearts(count, totalFrames, width int, rng *rand.Rand) []Heart {
	minSize := int(float64(width) * minHeartFrac)
	maxSize := int(float64(width) * maxHeartFrac)
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}
	hearts := make([]Heart, count)
	for i := range hearts {
		hearts[i] = Heart{
			StartFrame: rng.IntN(totalFrames/2 + 1),
			X:          rng.IntN(width + 1),
			Size:       minSize + rng.IntN(maxSize-minSize+1),
		}
	}
	return hearts
}

// PositionAt reports the vertical position of the heart's top edge at the
// given frame. The heart travels linearly from fully above the canvas
// (y = -Size) to fully below it (y = height+Size) over the frames left
// after StartFrame. ok is false when the heart has not started falling
// yet, or has already dropped past the bottom edge.
func (h Heart) PositionAt(frame, totalFrames, height int) (y float64, ok bool) {
	rel := frame - h.StartFrame
	if rel < 0 {
		return 0, false
	}
	t := float64(rel) / float64(totalFrames-h.StartFrame)
	y = -float64(h.Size) + t*float64(height+2*h.Size)
	if y > float64(height) {
		return 0, false
	}
	return y, true
}
