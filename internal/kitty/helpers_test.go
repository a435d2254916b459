package kitty

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/llehouerou/kittypreview/internal/geometry"
)

var errBoom = errors.New("boom")

type move struct{ col, row int }

// fakeOutput records cursor moves and bytes. failAfter > 0 makes the
// failAfter-th write fail.
type fakeOutput struct {
	buf       bytes.Buffer
	moves     []move
	writes    int
	failAfter int
	flushes   int
	moveErr   error
}

func (o *fakeOutput) MoveTo(col, row int) error {
	if o.moveErr != nil {
		return o.moveErr
	}
	o.moves = append(o.moves, move{col, row})
	return nil
}

func (o *fakeOutput) Write(p []byte) (int, error) {
	o.writes++
	if o.failAfter > 0 && o.writes >= o.failAfter {
		return 0, errBoom
	}
	return o.buf.Write(p)
}

func (o *fakeOutput) Flush() error {
	o.flushes++
	return nil
}

type fakeProbe struct {
	kitty bool
	cell  geometry.Size
	err   error
}

func (p fakeProbe) IsKitty() bool { return p.kitty }

func (p fakeProbe) CellSize() (geometry.Size, error) { return p.cell, p.err }

// sequence is one parsed APC G sequence.
type sequence struct {
	keys    []string
	payload string
	hasSemi bool
}

func (s sequence) get(key string) (string, bool) {
	for _, kv := range s.keys {
		k, v, _ := strings.Cut(kv, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

func parseSequences(t *testing.T, data string) []sequence {
	t.Helper()

	var seqs []sequence
	for data != "" {
		if !strings.HasPrefix(data, "\x1b_G") {
			t.Fatalf("expected APC G at %q", truncate(data))
		}
		body, rest, ok := strings.Cut(data[len("\x1b_G"):], "\x1b\\")
		if !ok {
			t.Fatalf("unterminated sequence %q", truncate(data))
		}
		keys, payload, semi := strings.Cut(body, ";")
		seqs = append(seqs, sequence{
			keys:    strings.Split(keys, ","),
			payload: payload,
			hasSemi: semi,
		})
		data = rest
	}
	return seqs
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
