/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-imgprev"
	"github.com/blacktop/go-imgprev/pkg/config"
	"github.com/blacktop/go-imgprev/pkg/dispatch"
	"github.com/spf13/cobra"
)

// errUsage asks for the help text to be printed; it is not a failure
var errUsage = errors.New("usage requested")

type rootFlags struct {
	useHalf    bool
	maxCols    int
	fitHeight  bool
	video      bool
	verbose    bool
	configPath string
}

func init() {
	log.SetHandler(clihander.Default)
}

// NewRootCmd builds the imgprev command
func NewRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "imgprev <path>",
		Short: "Preview images and videos in your terminal",
		Long: `imgprev previews images in the terminal using truecolor blocks.

PNG files with 8-bit RGB or RGBA pixels are decoded directly. Other formats
are converted to PNG first (ImageMagick when installed, a builtin converter
otherwise). Videos are split into frames with ffmpeg.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errUsage
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errUsage
			}
			return run(cmd, args[0], &flags)
		},
	}

	rootCmd.Flags().BoolVar(&flags.useHalf, "use-half", false, "Use pixels with aspect ratio 1:2")
	rootCmd.Flags().IntVar(&flags.maxCols, "max-cols", 0, "Maximum number of columns to print to")
	rootCmd.Flags().BoolVar(&flags.fitHeight, "fit-height", false, "Fit the image heightwise as well")
	rootCmd.Flags().BoolVar(&flags.video, "video", false, "Convert a video to a sequence of pngs and display them one by one")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "V", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/imgprev/config.yaml)")

	rootCmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return errUsage
	})

	return rootCmd
}

func run(cmd *cobra.Command, path string, flags *rootFlags) error {
	if flags.verbose {
		log.SetLevel(log.DebugLevel)
	}

	configPath := flags.configPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := displayOptions(cmd, cfg, flags)

	geometry, err := imgprev.QueryGeometry()
	if err != nil {
		log.WithError(err).Debug("using default terminal size")
		geometry = imgprev.DefaultGeometry
	}
	log.WithFields(log.Fields{
		"rows":    geometry.Rows,
		"columns": geometry.Columns,
	}).Debug("terminal size")

	if imgprev.IsInteractiveTerminal() && !imgprev.SupportsTrueColor() {
		log.Warn("terminal does not advertise truecolor support, colors may be off")
	}

	converter, err := dispatch.NewConverter(cfg.Converter, cfg.MagickBin)
	if err != nil {
		return err
	}

	driver := dispatch.New(cmd.OutOrStdout(), geometry, opts)
	driver.Converter = converter
	driver.Extractor = dispatch.FFmpegExtractor{
		Bin:   cfg.FFmpegBin,
		Width: cfg.VideoWidth,
		Step:  cfg.FrameStep,
	}
	driver.FrameDelay = cfg.FrameDelay()

	if flags.video {
		return driver.Play(path)
	}
	return driver.Show(path)
}

// displayOptions merges the config file with flags set on the command line
func displayOptions(cmd *cobra.Command, cfg *config.Config, flags *rootFlags) imgprev.Options {
	opts := imgprev.Options{
		HalfCell:   cfg.UseHalf,
		MaxColumns: cfg.MaxCols,
		FitHeight:  cfg.FitHeight,
	}
	if cmd.Flags().Changed("use-half") {
		opts.HalfCell = flags.useHalf
	}
	if cmd.Flags().Changed("max-cols") {
		opts.MaxColumns = flags.maxCols
	}
	if cmd.Flags().Changed("fit-height") {
		opts.FitHeight = flags.fitHeight
	}
	return opts
}

// ExecuteArgs runs imgprev with args and returns the process exit code
func ExecuteArgs(args []string, stdout, stderr io.Writer) int {
	log.SetHandler(clihander.New(stderr))
	log.SetLevel(log.InfoLevel)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			if err := rootCmd.Help(); err != nil {
				log.WithError(err).Error("failed to print usage")
				return 1
			}
			return 0
		}
		log.Error(err.Error())
		return 1
	}
	return 0
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(ExecuteArgs(os.Args[1:], os.Stdout, os.Stderr))
}
