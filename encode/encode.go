// Package encode turns a finished frame sequence into a video file by
// writing the frames as numbered PNGs and handing them to ffmpeg.
package encode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// Encoding failures callers may want to tell apart from bad input.
var (
	// ErrEncoderMissing means the ffmpeg binary was not found.
	ErrEncoderMissing = errors.New("ffmpeg is not installed")
	// ErrEncodeFailed means ffmpeg ran but did not produce a video.
	ErrEncodeFailed = errors.New("video encoding failed")
)

// framePattern is both the Sprintf format used to name frame files and
// the pattern ffmpeg's image2 demuxer reads them back with.
const framePattern = "frame_%04d.png"

// WriteFrames saves the frames into dir as a zero-padded sequential PNG
// sequence: frame_0000.png, frame_0001.png, and so on.
func WriteFrames(dir string, frames []*image.RGBA) error {
	for i, frame := range frames {
		path := filepath.Join(dir, fmt.Sprintf(framePattern, i))
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating frame file: %w", err)
		}
		err = png.Encode(f, frame)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// MP4 encodes the frames at the given frame rate into an H.264 MP4 at
// outPath, staging the intermediate PNGs in a temporary directory. The
// yuv420p pixel format keeps the result playable in common players.
func MP4(ctx context.Context, frames []*image.RGBA, fps int, outPath string) error {
	tmpdir, err := os.MkdirTemp("", "heartrain-frames-")
	if err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}
	defer os.RemoveAll(tmpdir)

	if err := WriteFrames(tmpdir, frames); err != nil {
		return err
	}
	return runFFmpeg(ctx, filepath.Join(tmpdir, framePattern), fps, outPath)
}

func runFFmpeg(ctx context.Context, pattern string, fps int, outPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-i", pattern,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		outPath,
	)
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrEncoderMissing
		}
		return fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return nil
}
