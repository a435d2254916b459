// Package kitty renders images in terminals speaking the Kitty graphics
// protocol: it fits them to a cell area, transmits their pixels and keeps
// track of the ids needed to erase them later.
package kitty

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/nfnt/resize"

	"github.com/llehouerou/kittypreview/internal/geometry"
	"github.com/llehouerou/kittypreview/internal/pixels"
)

// ErrUnavailable is returned by New when images cannot be shown. It is a
// capability answer, not a failure: callers should fall back to another
// kind of preview.
var ErrUnavailable = errors.New("kitty graphics unavailable")

// ErrInvalidMode is returned by ParseMode for unknown names.
var ErrInvalidMode = errors.New("invalid transmission mode")

// Mode selects how pixel data reaches the terminal.
type Mode uint8

const (
	// ModeChunks sends base64 pixels inline, split in 4096 byte payloads.
	// Works over ssh.
	ModeChunks Mode = iota
	// ModeTempFile writes pixels to a temp file and sends its path. Faster
	// locally, useless when the terminal runs on another machine.
	ModeTempFile
)

func (m Mode) String() string {
	switch m {
	case ModeChunks:
		return "chunks"
	case ModeTempFile:
		return "file"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses "chunks" or "file".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chunks", "":
		return ModeChunks, nil
	case "file", "tempfile", "temp_file":
		return ModeTempFile, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidMode, s)
	}
}

// Probe reports what the terminal can do.
type Probe interface {
	IsKitty() bool
	CellSize() (geometry.Size, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMode sets the initial transmission mode.
func WithMode(m Mode) Option {
	return func(r *Renderer) { r.mode = m }
}

// WithTempFiles sets where ModeTempFile writes pixel data.
func WithTempFiles(tf TempFiles) Option {
	return func(r *Renderer) { r.enc.TempFiles = tf }
}

// WithQuiet adds q=level to every sequence.
func WithQuiet(level int) Option {
	return func(r *Renderer) { r.enc.Quiet = level }
}

// WithLogger sets the logger used for debug records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithDownscale shrinks images bigger than the pixel extent of their target
// area before sending them.
func WithDownscale(enabled bool) Option {
	return func(r *Renderer) { r.downscale = enabled }
}

// Renderer prints images fitted into cell areas. It is driven by one render
// loop at a time and must not be shared between goroutines.
type Renderer struct {
	cell      geometry.Size
	mode      Mode
	ids       *Registry
	enc       Encoder
	downscale bool
	log       *slog.Logger
}

// New returns a renderer for the terminal described by probe, or an error
// wrapping ErrUnavailable when it cannot show images.
func New(probe Probe, opts ...Option) (*Renderer, error) {
	if !probe.IsKitty() {
		return nil, fmt.Errorf("%w: terminal is not kitty", ErrUnavailable)
	}
	cell, err := probe.CellSize()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if cell.Width <= 0 || cell.Height <= 0 {
		return nil, fmt.Errorf("%w: cell size %dx%d", ErrUnavailable, cell.Width, cell.Height)
	}

	r := &Renderer{
		cell: cell,
		mode: ModeChunks,
		ids:  NewRegistry(),
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.enc.Logger = r.log
	return r, nil
}

// CellSize returns the cell pixel size queried at construction.
func (r *Renderer) CellSize() geometry.Size { return r.cell }

func (r *Renderer) Mode() Mode { return r.mode }

func (r *Renderer) SetMode(m Mode) { r.mode = m }

// TakeCurrentImages returns the ids printed since the last take or
// EraseAll. The caller must erase them.
func (r *Renderer) TakeCurrentImages() ImageSet {
	return r.ids.TakeCurrent()
}

// CurrentImages returns the ids printed since the last take, without
// taking them.
func (r *Renderer) CurrentImages() ImageSet {
	return r.ids.Current()
}

// Print draws img centered in area, as large as the area allows without
// exceeding the image's native density.
//
// An id is consumed even when writing fails; sequences already written are
// not undone.
func (r *Renderer) Print(out Output, img image.Image, area geometry.Rect) error {
	b := img.Bounds()
	native := geometry.Size{Width: b.Dx(), Height: b.Dy()}
	target := geometry.Fit(native, r.cell, area)
	optCols, optRows := geometry.Optimal(native, r.cell)
	r.log.Debug("fit image",
		"image", fmt.Sprintf("%dx%d", native.Width, native.Height),
		"area", fmt.Sprintf("%dx%d", area.Width, area.Height),
		"optimal", fmt.Sprintf("%dx%d", optCols, optRows),
		"target", fmt.Sprintf("%dx%d+%d+%d", target.Width, target.Height, target.Left, target.Top))

	if r.downscale {
		img = r.shrink(img, target)
	}

	src := pixels.From(img)
	r.log.Debug("pixel source", "layout", src.Kind().String(), "format", src.FormatCode())

	p := Placement{ID: r.ids.NewID(), Source: src, Area: target}

	var err error
	switch r.mode {
	case ModeTempFile:
		err = r.enc.WriteTempFile(out, p)
	default:
		err = r.enc.WriteChunked(out, p)
	}
	if err != nil {
		return err
	}
	return flush(out)
}

// shrink thumbnails img to the pixel extent of target when it is larger.
func (r *Renderer) shrink(img image.Image, target geometry.Rect) image.Image {
	px := target.Pixels(r.cell)
	b := img.Bounds()
	if px.Width <= 0 || px.Height <= 0 {
		return img
	}
	if b.Dx() <= px.Width && b.Dy() <= px.Height {
		return img
	}
	//nolint:gosec // pixel extents are positive, checked above
	out := resize.Thumbnail(uint(px.Width), uint(px.Height), img, resize.Lanczos3)
	r.log.Debug("downscaled image",
		"from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"to", fmt.Sprintf("%dx%d", out.Bounds().Dx(), out.Bounds().Dy()))
	return out
}

// Erase deletes the given images from the terminal.
func (r *Renderer) Erase(out Output, ids ImageSet) error {
	if err := r.enc.WriteErase(out, ids); err != nil {
		return err
	}
	return flush(out)
}

// EraseAll deletes every image in the terminal, tracked or not, and forgets
// the open id set.
func (r *Renderer) EraseAll(out Output) error {
	if err := r.enc.WriteEraseAll(out); err != nil {
		return err
	}
	r.ids.Discard()
	return flush(out)
}
