package dispatch

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/blacktop/go-imgprev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 90}))
}

func TestBuiltinConverter(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	dst := filepath.Join(dir, "photo.png")
	writeJPEG(t, src, solidImage(16, 8, color.RGBA{R: 200, G: 40, B: 40, A: 255}))

	require.NoError(t, BuiltinConverter{}.Convert(src, dst))

	img, err := imgprev.DecodeFile(dst)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Width)
	assert.Equal(t, 8, img.Height)
	assert.Equal(t, 3, img.PixelStride)
}

func TestBuiltinConverterErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.bin")
	require.NoError(t, os.WriteFile(garbage, []byte("nothing to see"), 0o644))

	err := BuiltinConverter{}.Convert(garbage, filepath.Join(dir, "out.png"))
	assert.ErrorIs(t, err, ErrConversion)

	err = BuiltinConverter{}.Convert(filepath.Join(dir, "missing.jpg"), filepath.Join(dir, "out.png"))
	assert.ErrorIs(t, err, ErrConversion)
}

func TestAutoConverterFallsBackToBuiltin(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	dst := filepath.Join(dir, "photo.png")
	writeJPEG(t, src, solidImage(4, 4, color.RGBA{R: 10, G: 200, B: 10, A: 255}))

	var looked string
	conv := AutoConverter{
		Magick: MagickConverter{Bin: "magick-that-does-not-exist"},
		lookPath: func(file string) (string, error) {
			looked = file
			return "", errors.New("not found")
		},
	}

	require.NoError(t, conv.Convert(src, dst))
	assert.Equal(t, "magick-that-does-not-exist", looked)
	assert.FileExists(t, dst)
}

func TestMagickConverterMissingBinary(t *testing.T) {
	dir := t.TempDir()
	err := MagickConverter{Bin: filepath.Join(dir, "no-such-convert")}.Convert("in.jpg", filepath.Join(dir, "out.png"))
	assert.ErrorIs(t, err, ErrSubprocess)
}

func TestRunToolExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	err := runTool("sh", "sh", "-c", "echo working; exit 3")
	require.ErrorIs(t, err, ErrSubprocess)
	assert.Contains(t, err.Error(), "status 3")

	assert.NoError(t, runTool("sh", "sh", "-c", "exit 0"))
}

func TestNewConverter(t *testing.T) {
	tests := []struct {
		name    string
		want    Converter
		wantErr bool
	}{
		{name: "", want: AutoConverter{Magick: MagickConverter{Bin: "magick"}}},
		{name: "auto", want: AutoConverter{Magick: MagickConverter{Bin: "magick"}}},
		{name: "magick", want: MagickConverter{Bin: "magick"}},
		{name: "imagemagick", want: MagickConverter{Bin: "magick"}},
		{name: "builtin", want: BuiltinConverter{}},
		{name: "gimp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("converter "+tt.name, func(t *testing.T) {
			got, err := NewConverter(tt.name, "magick")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFFmpegExtractorArgs(t *testing.T) {
	args := FFmpegExtractor{}.Args("movie.mp4", "/tmp/frames")
	assert.Equal(t, []string{
		"-i", "movie.mp4",
		"-q:v", "4",
		"-vf", `scale=360:-1,select=not(mod(n\,4)),setpts=N/FRAME_RATE/TB`,
		filepath.Join("/tmp/frames", "out%04d.png"),
	}, args)

	args = FFmpegExtractor{Width: 640, Step: 2}.Args("movie.mp4", "/tmp/frames")
	assert.Equal(t, `scale=640:-1,select=not(mod(n\,2)),setpts=N/FRAME_RATE/TB`, args[5])
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "out0001.png", FrameName(1))
	assert.Equal(t, "out0042.png", FrameName(42))
	assert.Equal(t, "out12345.png", FrameName(12345))
}
