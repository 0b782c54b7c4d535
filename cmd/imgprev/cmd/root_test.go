package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/blacktop/go-imgprev/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / 10),
				G: uint8((y * 255) / 10),
				B: uint8((x + y) % 255),
				A: 255,
			})
		}
	}

	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestExecuteArgs(t *testing.T) {
	tmpDir := t.TempDir()
	testImg := filepath.Join(tmpDir, "test.png")
	createTestPNG(t, testImg)
	noConfig := filepath.Join(tmpDir, "no-config.yaml")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains []string
	}{
		{name: "no arguments", args: []string{}, wantCode: 0, contains: []string{"Usage:"}},
		{name: "help", args: []string{"--help"}, wantCode: 0, contains: []string{"Usage:", "--use-half", "--max-cols", "--fit-height", "--video"}},
		{name: "help after path", args: []string{testImg, "--help"}, wantCode: 0, contains: []string{"Usage:"}},
		{name: "unknown flag", args: []string{testImg, "--sideways"}, wantCode: 0, contains: []string{"Usage:"}},
		{name: "malformed max cols", args: []string{testImg, "--max-cols", "many"}, wantCode: 0, contains: []string{"Usage:"}},
		{name: "missing max cols value", args: []string{testImg, "--max-cols"}, wantCode: 0, contains: []string{"Usage:"}},
		{name: "extra positional argument", args: []string{testImg, "other.png"}, wantCode: 0, contains: []string{"Usage:"}},
		{name: "missing file", args: []string{filepath.Join(tmpDir, "missing.png"), "--config", noConfig}, wantCode: 1},
		{name: "render", args: []string{testImg, "--max-cols", "4", "--config", noConfig}, wantCode: 0, contains: []string{"\x1b[38;2;", "\x1b[0m"}},
		{name: "render half cell", args: []string{testImg, "--use-half", "--fit-height", "--max-cols", "3", "--config", noConfig}, wantCode: 0, contains: []string{"\x1b[48;2;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := ExecuteArgs(tt.args, &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			for _, expected := range tt.contains {
				assert.Contains(t, stdout.String(), expected)
			}
		})
	}
}

func TestExecuteArgsBadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	testImg := filepath.Join(tmpDir, "test.png")
	createTestPNG(t, testImg)

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("converter: gimp\n"), 0o644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, ExecuteArgs([]string{testImg, "--config", cfgPath}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown converter")
}

func TestExecuteArgsMissingTool(t *testing.T) {
	tmpDir := t.TempDir()
	missing := filepath.Join(tmpDir, "no-such-tool")

	notPNG := filepath.Join(tmpDir, "photo.jpg")
	require.NoError(t, os.WriteFile(notPNG, []byte("definitely not a png"), 0o644))

	cfgPath := filepath.Join(tmpDir, "config.yaml")
	cfg := "converter: magick\nmagick_bin: " + missing + "\nffmpeg_bin: " + missing + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{name: "converter", args: []string{notPNG, "--config", cfgPath}},
		{name: "extractor", args: []string{notPNG, "--video", "--config", cfgPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, 1, ExecuteArgs(tt.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), "subprocess")
			assert.NotContains(t, stdout.String(), "\x1b[38;2;")
		})
	}
}

func TestDisplayOptions(t *testing.T) {
	cfg := config.Default()
	cfg.UseHalf = true
	cfg.MaxCols = 30
	cfg.FitHeight = true

	tests := []struct {
		name      string
		args      []string
		halfCell  bool
		maxCols   int
		fitHeight bool
	}{
		{name: "config only", args: []string{}, halfCell: true, maxCols: 30, fitHeight: true},
		{name: "flags win", args: []string{"--use-half=false", "--max-cols", "8", "--fit-height=false"}, halfCell: false, maxCols: 8, fitHeight: false},
		{name: "partial override", args: []string{"--max-cols", "12"}, halfCell: true, maxCols: 12, fitHeight: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := NewRootCmd()
			require.NoError(t, rootCmd.ParseFlags(tt.args))

			var flags rootFlags
			flags.useHalf, _ = rootCmd.Flags().GetBool("use-half")
			flags.maxCols, _ = rootCmd.Flags().GetInt("max-cols")
			flags.fitHeight, _ = rootCmd.Flags().GetBool("fit-height")

			opts := displayOptions(rootCmd, cfg, &flags)
			assert.Equal(t, tt.halfCell, opts.HalfCell)
			assert.Equal(t, tt.maxCols, opts.MaxColumns)
			assert.Equal(t, tt.fitHeight, opts.FitHeight)
		})
	}
}
