// Package anim generates the frames of a short looping animation: a
// user-supplied photo as the background, a caption near the top, and a
// rain of small hearts falling down the canvas. The package only
// produces in-memory rasters; turning them into a video is the encode
// package's job.
package anim

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand/v2"

	"github.com/anthonynsimon/bild/transform"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Defaults for one animation run.
const (
	DefaultWidth    = 720
	DefaultHeight   = 720
	DefaultFPS      = 15
	DefaultDuration = 5
	DefaultHearts   = 15
)

// ErrBadImage reports that the supplied background could not be decoded.
// It is the only error the pipeline itself produces, so callers can tell
// bad input apart from anything that goes wrong further downstream.
var ErrBadImage = errors.New("background image cannot be decoded")

// Params configures one animation run.
type Params struct {
	Width    int // canvas width, pixels
	Height   int // canvas height, pixels
	FPS      int // output frames per second
	Duration int // animation length, seconds
	Hearts   int // number of falling hearts
	// FontPaths are candidate caption fonts, tried in order. nil means
	// DefaultFontPaths.
	FontPaths []string
}

// DefaultParams returns the standard run: 720x720 at 15 fps for 5
// seconds, with fifteen hearts.
func DefaultParams() Params {
	return Params{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
		Hearts:   DefaultHearts,
	}
}

// TotalFrames returns the number of frames one run produces. It is
// constant for the run: FPS times Duration.
func (p Params) TotalFrames() int { return p.FPS * p.Duration }

// Validate checks that the parameters describe a renderable run.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d is not positive", p.Width, p.Height)
	}
	if p.FPS <= 0 {
		return fmt.Errorf("fps %d is not positive", p.FPS)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("duration %ds is not positive", p.Duration)
	}
	if p.Hearts < 0 {
		return fmt.Errorf("heart count %d is negative", p.Hearts)
	}
	return nil
}

// DecodeBackground reads and decodes the user-supplied background image.
// Decode failures are wrapped in ErrBadImage.
func DecodeBackground(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadImage, err)
	}
	return img, nil
}

// GenerateFrames runs the full pipeline: resize the background once,
// generate the heart particles once, lay out the caption once, then
// composite FPS x Duration frames in index order. rng drives both
// particle generation and the per-render drift; pass a seeded source for
// a reproducible run, or rand.New(rand.NewPCG(...)) from real entropy in
// production.
func GenerateFrames(background image.Image, message string, p Params, rng *rand.Rand) ([]*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return NewCompositor(background, message, p, rng).RenderAll(rng), nil
}

// GenerateFramesParallel is GenerateFrames with the compositing spread
// across all CPUs. rng still drives particle generation; the per-frame
// drift is derived from a seed drawn from rng, so a seeded rng still
// reproduces the sequence exactly.
func GenerateFramesParallel(background image.Image, message string, p Params, rng *rand.Rand) ([]*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	comp := NewCompositor(background, message, p, rng)
	return comp.RenderAllParallel(rng.Uint64()), nil
}

// resizeBackground scales the user image to the canvas size with a
// Lanczos resampler and flattens it to an opaque buffer that every frame
// copies from.
func resizeBackground(img image.Image, w, h int) *image.RGBA {
	bg := transform.Resize(img, w, h, transform.Lanczos)
	flatten(bg)
	return bg
}
