package encode

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFramesNaming(t *testing.T) {
	dir := t.TempDir()
	frames := []*image.RGBA{
		image.NewRGBA(image.Rect(0, 0, 8, 8)),
		image.NewRGBA(image.Rect(0, 0, 8, 8)),
		image.NewRGBA(image.Rect(0, 0, 8, 8)),
	}
	require.NoError(t, WriteFrames(dir, frames))

	for _, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		require.NoError(t, err, "expected %s to exist", name)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(frames), "no stray files")
}

func TestWriteFramesBadDir(t *testing.T) {
	err := WriteFrames(filepath.Join(t.TempDir(), "missing"), []*image.RGBA{
		image.NewRGBA(image.Rect(0, 0, 2, 2)),
	})
	assert.Error(t, err)
}
