// Package termcap answers what the attached terminal can display.
package termcap

import (
	"errors"
	"os"
	"strings"

	"github.com/llehouerou/kittypreview/internal/geometry"
)

// ErrCellSizeUnknown is returned when the terminal does not report its
// pixel dimensions.
var ErrCellSizeUnknown = errors.New("terminal cell size unknown")

// IsKitty reports whether TERM names a kitty terminal.
func IsKitty() bool {
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// Probe queries the current terminal. A positive CellOverride replaces the
// ioctl answer, for terminals that leave the pixel fields empty.
type Probe struct {
	CellOverride geometry.Size
}

func (p Probe) IsKitty() bool { return IsKitty() }

func (p Probe) CellSize() (geometry.Size, error) {
	if p.CellOverride.Width > 0 && p.CellOverride.Height > 0 {
		return p.CellOverride, nil
	}
	return CellSize()
}
