package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder, first frame only
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
	"golang.org/x/term"

	"github.com/llehouerou/kittypreview/internal/config"
	"github.com/llehouerou/kittypreview/internal/errmsg"
	"github.com/llehouerou/kittypreview/internal/geometry"
	"github.com/llehouerou/kittypreview/internal/kitty"
	"github.com/llehouerou/kittypreview/internal/termcap"
	"github.com/llehouerou/kittypreview/internal/ui/placeholder"
)

var errAreaTooSmall = errors.New("area too small")

type previewFlags struct {
	mode      string
	left      int
	top       int
	cols      int
	rows      int
	downscale bool
	quiet     int
}

func runPreview(cmd *cobra.Command, global *globalFlags, opts *previewFlags, paths []string) error {
	log := newLogger(cmd.ErrOrStderr(), global.debug)

	cfg, err := loadConfig(global)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fail(errmsg.OpConfigLoad, "", err)
	}

	area, err := previewArea(opts, terminalSize)
	if err != nil {
		return fail(errmsg.OpTerminalSize, "", err)
	}
	slots, err := columns(area, len(paths))
	if err != nil {
		return fail(errmsg.OpImageRender, "", err)
	}

	out := kitty.NewTermOutput(cmd.OutOrStdout())
	r, err := newRenderer(cfg, log)
	switch {
	case errors.Is(err, kitty.ErrUnavailable):
		log.Warn("showing placeholders", "reason", err)
		r = nil
	case err != nil:
		return fail(errmsg.OpInitialize, "", err)
	}

	var firstErr error
	for i, path := range paths {
		if err := show(out, r, path, slots[i]); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	// Leave the cursor below the area for the shell prompt
	if err := out.MoveTo(0, area.Top+area.Height); err != nil {
		return fail(errmsg.OpImageRender, "", err)
	}
	if err := out.Flush(); err != nil {
		return fail(errmsg.OpImageRender, "", err)
	}
	return firstErr
}

// applyFlags overrides config values with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *previewFlags) {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Transmission = opts.mode
	}
	if flags.Changed("downscale") {
		cfg.Downscale = opts.downscale
	}
	if flags.Changed("quiet") {
		cfg.Quiet = opts.quiet
	}
}

func newRenderer(cfg *config.Config, log *slog.Logger) (*kitty.Renderer, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	return kitty.New(termcap.Probe{CellOverride: cfg.CellOverride()},
		kitty.WithMode(mode),
		kitty.WithTempFiles(cfg.TempFiles()),
		kitty.WithQuiet(cfg.Quiet),
		kitty.WithDownscale(cfg.Downscale),
		kitty.WithLogger(log),
	)
}

// show prints one image, or a placeholder when r is nil.
func show(out *kitty.TermOutput, r *kitty.Renderer, path string, slot geometry.Rect) error {
	img, err := decodeFile(path)
	if err != nil {
		return err
	}

	if r == nil {
		b := img.Bounds()
		label := fmt.Sprintf("%s %dx%d", filepath.Base(path), b.Dx(), b.Dy())
		if err := placeholder.Draw(out, slot, label); err != nil {
			return fail(errmsg.OpPlaceholder, path, err)
		}
		return nil
	}

	if err := r.Print(out, img, slot); err != nil {
		return fail(errmsg.OpImageRender, path, err)
	}
	return nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fail(errmsg.OpImageOpen, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fail(errmsg.OpImageDecode, path, err)
	}
	return img, nil
}

func terminalSize() (cols, rows int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// previewArea resolves the target area. Unset width and height extend to
// the terminal edge, keeping the last row for the prompt.
func previewArea(opts *previewFlags, size func() (int, int, error)) (geometry.Rect, error) {
	area := geometry.Rect{Left: opts.left, Top: opts.top, Width: opts.cols, Height: opts.rows}
	if area.Left < 0 || area.Top < 0 || area.Width < 0 || area.Height < 0 {
		return geometry.Rect{}, fmt.Errorf("%w: negative area %+v", errAreaTooSmall, area)
	}

	if area.Width == 0 || area.Height == 0 {
		cols, rows, err := size()
		if err != nil {
			return geometry.Rect{}, err
		}
		if area.Width == 0 {
			area.Width = cols - area.Left
		}
		if area.Height == 0 {
			area.Height = rows - 1 - area.Top
		}
	}

	if area.Width <= 0 || area.Height <= 0 {
		return geometry.Rect{}, fmt.Errorf("%w: %dx%d", errAreaTooSmall, area.Width, area.Height)
	}
	return area, nil
}

// columns splits area into n equal side by side slots. Remainder columns
// are left empty on the right.
func columns(area geometry.Rect, n int) ([]geometry.Rect, error) {
	width := area.Width / n
	if width == 0 {
		return nil, fmt.Errorf("%w: %d columns for %d images", errAreaTooSmall, area.Width, n)
	}
	slots := make([]geometry.Rect, n)
	for i := range slots {
		slots[i] = geometry.Rect{
			Left:   area.Left + i*width,
			Top:    area.Top,
			Width:  width,
			Height: area.Height,
		}
	}
	return slots, nil
}
