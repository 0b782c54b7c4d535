/*
Package dispatch previews files the core decoder cannot read on its own.

Non-PNG images are converted once through a Converter and decoded again.
Videos are split into PNG frames by an Extractor and played back in order.
*/
package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/blacktop/go-imgprev"
	"github.com/blacktop/go-imgprev/pkg/scratch"
)

const (
	// DefaultFPS is the video playback rate
	DefaultFPS = 6

	// DefaultFrameDelay is the pause between two video frames
	DefaultFrameDelay = time.Second / DefaultFPS

	scratchPrefix = "imgprevtmp."
	convertedName = "tmp.png"
)

// Driver renders a path, falling back to external tools when needed
type Driver struct {
	Converter Converter
	Extractor Extractor

	Options  imgprev.Options
	Geometry imgprev.Geometry
	Out      io.Writer

	FrameDelay time.Duration
	Sleep      func(time.Duration)
}

// New creates a Driver with the default converter and extractor
func New(out io.Writer, geometry imgprev.Geometry, opts imgprev.Options) *Driver {
	return &Driver{
		Converter:  AutoConverter{},
		Extractor:  FFmpegExtractor{},
		Options:    opts,
		Geometry:   geometry,
		Out:        out,
		FrameDelay: DefaultFrameDelay,
		Sleep:      time.Sleep,
	}
}

// Show renders the image at path. A file that is not a PNG is converted
// once and decoded again; a second failure is final.
func (d *Driver) Show(path string) error {
	err := d.render(path, d.Options)
	if !errors.Is(err, imgprev.ErrNotAnImage) {
		return err
	}

	log.WithField("path", path).Debug("not a png, trying to convert it")
	return d.showConverted(path)
}

func (d *Driver) showConverted(path string) error {
	dir, err := scratch.New(scratchPrefix)
	if err != nil {
		return err
	}
	defer release(dir)

	tmp := dir.Path(convertedName)

	log.WithField("path", path).Info("converting")
	if err := d.Converter.Convert(path, tmp); err != nil {
		return err
	}
	log.Debug("convert completed")

	if err := d.render(tmp, d.Options); err != nil {
		return fmt.Errorf("converted %s: %w", path, err)
	}
	return nil
}

// Play extracts the frames of the video at path and renders them in order
// until the first missing frame. Frames are fitted to the terminal height.
func (d *Driver) Play(path string) error {
	opts := d.Options
	opts.FitHeight = true
	opts.MaxColumns = 0

	dir, err := scratch.New(scratchPrefix)
	if err != nil {
		return err
	}
	defer release(dir)

	log.WithField("path", path).Info("starting ffmpeg")
	if err := d.Extractor.Extract(path, dir.Root()); err != nil {
		return err
	}
	log.Debug("ffmpeg completed")

	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	frames := 0
	for i := 1; ; i++ {
		frame := filepath.Join(dir.Root(), FrameName(i))
		if _, err := os.Stat(frame); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				break
			}
			return fmt.Errorf("failed to stat frame %d: %w", i, err)
		}
		dir.Track(frame)

		if err := d.render(frame, opts); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		frames++
		sleep(d.FrameDelay)
	}

	log.WithField("frames", frames).Debug("playback finished")
	return nil
}

func (d *Driver) render(path string, opts imgprev.Options) error {
	img, err := imgprev.DecodeFile(path)
	if err != nil {
		return err
	}

	r := imgprev.NewRenderer(d.Out, d.Geometry, opts)
	if err := r.Render(img); err != nil {
		return err
	}

	plan := r.LastPlan()
	log.WithFields(log.Fields{
		"path":    path,
		"columns": plan.Columns,
		"rows":    plan.TextRows,
		"stride":  plan.HorizontalStride,
	}).Debug("rendered")
	return nil
}

func release(dir *scratch.Dir) {
	log.WithFields(log.Fields{
		"dir":   dir.Root(),
		"files": len(dir.Tracked()),
	}).Debug("removing scratch directory")
	if err := dir.Close(); err != nil {
		log.WithError(err).Warn("failed to remove scratch directory")
	}
}
