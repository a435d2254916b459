package kitty

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	ansikitty "github.com/charmbracelet/x/ansi/kitty"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/kittypreview/internal/geometry"
	"github.com/llehouerou/kittypreview/internal/pixels"
)

// ErrPathEncoding is returned when a temp file path cannot be sent as text.
var ErrPathEncoding = errors.New("temp file path is not valid UTF-8")

// chunkSize is the largest base64 payload allowed in one escape sequence.
const chunkSize = ansikitty.MaxChunkSize

// Placement is an image prepared for a precise area of the screen.
type Placement struct {
	ID     ImageID
	Source pixels.Source
	Area   geometry.Rect
}

// Encoder writes Kitty graphics sequences.
type Encoder struct {
	// TempFiles provides files for WriteTempFile. DirTempFiles{} when nil.
	TempFiles TempFiles
	// Quiet is sent as q= when non-zero: 1 drops OK responses, 2 drops all.
	Quiet  int
	Logger *slog.Logger
}

func (e *Encoder) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Encoder) tempFiles() TempFiles {
	if e.TempFiles == nil {
		return DirTempFiles{}
	}
	return e.TempFiles
}

// transmitOptions returns the keys of a transmit-and-display sequence.
func (e *Encoder) transmitOptions(p Placement, medium byte) []string {
	opts := []string{
		fmt.Sprintf("a=%c", ansikitty.TransmitAndPut),
		"f=" + p.Source.FormatCode(),
		fmt.Sprintf("t=%c", medium),
		"i=" + strconv.FormatUint(uint64(p.ID), 10),
		"s=" + strconv.Itoa(p.Source.Width()),
		"v=" + strconv.Itoa(p.Source.Height()),
		"c=" + strconv.Itoa(p.Area.Width),
		"r=" + strconv.Itoa(p.Area.Height),
	}
	return e.withQuiet(opts)
}

func (e *Encoder) withQuiet(opts []string) []string {
	if e.Quiet > 0 {
		opts = append(opts, "q="+strconv.Itoa(e.Quiet))
	}
	return opts
}

// WriteChunked sends the base64 encoded pixels split over as many sequences
// as needed. Only the first sequence carries the transmit keys; the terminal
// appends continuation payloads to it until it sees m=0.
func (e *Encoder) WriteChunked(out Output, p Placement) error {
	raw := p.Source.Bytes()
	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(encoded, raw)

	if err := out.MoveTo(p.Area.Left, p.Area.Top); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}

	chunks := 0
	for pos := 0; ; {
		end := min(pos+chunkSize, len(encoded))
		more := end < len(encoded)

		var opts []string
		if pos == 0 {
			opts = e.transmitOptions(p, ansikitty.Direct)
		}
		if more {
			opts = append(opts, "m=1")
		} else {
			opts = append(opts, "m=0")
		}

		if _, err := io.WriteString(out, ansi.KittyGraphics(encoded[pos:end], opts...)); err != nil {
			return fmt.Errorf("write image %d chunk %d: %w", p.ID, chunks, err)
		}
		chunks++

		if !more {
			break
		}
		pos = end
	}

	e.logger().Debug("image sent in chunks",
		"id", p.ID,
		"chunks", chunks,
		"size", humanize.IBytes(uint64(len(raw))))
	return nil
}

// WriteTempFile stores the raw pixels in a temp file and sends its path in a
// single t=t sequence. The file is left on disk: the terminal reads it after
// this call returns.
func (e *Encoder) WriteTempFile(out Output, p Placement) error {
	f, err := e.tempFiles().Create()
	if err != nil {
		return err
	}

	raw := p.Source.Bytes()
	if _, err := f.Write(raw); err != nil {
		_ = f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	path, err := f.Path()
	if err != nil {
		return fmt.Errorf("resolve temp file path: %w", err)
	}
	if !utf8.ValidString(path) {
		return fmt.Errorf("%w: %q", ErrPathEncoding, path)
	}
	e.logger().Debug("temp file written", "path", path, "size", humanize.IBytes(uint64(len(raw))))

	payload := base64.StdEncoding.EncodeToString([]byte(path))

	if err := out.MoveTo(p.Area.Left, p.Area.Top); err != nil {
		return fmt.Errorf("move cursor: %w", err)
	}
	seq := ansi.KittyGraphics([]byte(payload), e.transmitOptions(p, ansikitty.TempFile)...)
	if _, err := io.WriteString(out, seq); err != nil {
		return fmt.Errorf("write image %d: %w", p.ID, err)
	}
	return nil
}

// WriteErase deletes each image of ids, in order.
func (e *Encoder) WriteErase(w io.Writer, ids ImageSet) error {
	for _, id := range ids {
		e.logger().Debug("erase kitty image", "id", id)
		opts := e.withQuiet([]string{"a=d", "d=I", "i=" + strconv.FormatUint(uint64(id), 10)})
		if _, err := io.WriteString(w, ansi.KittyGraphics(nil, opts...)); err != nil {
			return fmt.Errorf("erase image %d: %w", id, err)
		}
	}
	return nil
}

// WriteEraseAll deletes every image known to the terminal, including ones
// this process no longer tracks.
func (e *Encoder) WriteEraseAll(w io.Writer) error {
	opts := e.withQuiet([]string{"a=d", "d=A"})
	if _, err := io.WriteString(w, ansi.KittyGraphics(nil, opts...)); err != nil {
		return fmt.Errorf("erase all images: %w", err)
	}
	return nil
}
