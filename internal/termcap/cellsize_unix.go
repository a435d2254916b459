//go:build unix

package termcap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/llehouerou/kittypreview/internal/geometry"
)

// CellSize returns the pixel size of one cell by querying TIOCGWINSZ on
// stdout, then on the controlling terminal when stdout is redirected.
func CellSize() (geometry.Size, error) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		tty, openErr := os.OpenFile("/dev/tty", os.O_RDWR|unix.O_NOCTTY, 0)
		if openErr != nil {
			return geometry.Size{}, fmt.Errorf("%w: %w", ErrCellSizeUnknown, err)
		}
		defer tty.Close()
		ws, err = unix.IoctlGetWinsize(int(tty.Fd()), unix.TIOCGWINSZ)
		if err != nil {
			return geometry.Size{}, fmt.Errorf("%w: %w", ErrCellSizeUnknown, err)
		}
	}
	return cellFromWinsize(ws)
}

func cellFromWinsize(ws *unix.Winsize) (geometry.Size, error) {
	if ws.Col == 0 || ws.Row == 0 || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return geometry.Size{}, ErrCellSizeUnknown
	}
	return geometry.Size{
		Width:  int(ws.Xpixel) / int(ws.Col),
		Height: int(ws.Ypixel) / int(ws.Row),
	}, nil
}
