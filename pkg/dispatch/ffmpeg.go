package dispatch

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultFFmpegBin is the frame extractor used when none is configured
	DefaultFFmpegBin = "ffmpeg"
	// DefaultVideoWidth is the pixel width frames are scaled to
	DefaultVideoWidth = 360
	// DefaultFrameStep keeps every Nth source frame
	DefaultFrameStep = 4

	framePattern = "out%04d.png"
)

// Extractor writes a video as numbered PNG frames into dir.
// Frames are named out0001.png, out0002.png, ...
type Extractor interface {
	Extract(src, dir string) error
}

// FFmpegExtractor shells out to ffmpeg
type FFmpegExtractor struct {
	Bin   string
	Width int
	Step  int
}

// Args returns the ffmpeg arguments for extracting src into dir
func (f FFmpegExtractor) Args(src, dir string) []string {
	width := f.Width
	if width <= 0 {
		width = DefaultVideoWidth
	}
	step := f.Step
	if step <= 0 {
		step = DefaultFrameStep
	}

	return []string{
		"-i", src,
		"-q:v", "4",
		"-vf", fmt.Sprintf(`scale=%d:-1,select=not(mod(n\,%d)),setpts=N/FRAME_RATE/TB`, width, step),
		filepath.Join(dir, framePattern),
	}
}

// Extract runs ffmpeg and waits for it to exit
func (f FFmpegExtractor) Extract(src, dir string) error {
	bin := f.Bin
	if bin == "" {
		bin = DefaultFFmpegBin
	}
	return runTool("ffmpeg", bin, f.Args(src, dir)...)
}

// FrameName returns the file name of frame i, counting from 1
func FrameName(i int) string {
	return fmt.Sprintf(framePattern, i)
}
