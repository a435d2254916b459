//go:build !unix

package termcap

import "github.com/llehouerou/kittypreview/internal/geometry"

// CellSize is not available without TIOCGWINSZ.
func CellSize() (geometry.Size, error) {
	return geometry.Size{}, ErrCellSizeUnknown
}
