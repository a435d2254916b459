// Package geometry fits image pixel dimensions into a rectangle of terminal cells.
package geometry

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect is a rectangle of terminal cells. Left and Top are 0-based.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// DivCeil returns a/b rounded up. a must be >= 0 and b >= 1.
func DivCeil(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// Optimal returns the number of cells needed to show img at native density.
func Optimal(img, cell Size) (cols, rows int) {
	return DivCeil(img.Width, cell.Width), DivCeil(img.Height, cell.Height)
}

// Dim returns the size in cells used to render img inside an area of
// cols x rows cells, keeping the aspect ratio as close as cell granularity
// allows. Results never exceed the area.
func Dim(img, cell Size, cols, rows int) (width, height int) {
	optCols, optRows := Optimal(img, cell)
	if optCols == 0 || optRows == 0 {
		return 0, 0
	}

	if optCols <= cols && optRows <= rows {
		return optCols, optRows
	}

	// Cross-multiplied ratio comparison: optCols/optRows > cols/rows
	if optCols*rows > optRows*cols {
		return cols, optRows * cols / optCols
	}
	return optCols * rows / optRows, rows
}

// Fit returns the rectangle where img is drawn, centered in area.
func Fit(img, cell Size, area Rect) Rect {
	w, h := Dim(img, cell, area.Width, area.Height)
	return Rect{
		Left:   area.Left + (area.Width-w)/2,
		Top:    area.Top + (area.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Pixels returns the pixel extent of r for the given cell size.
func (r Rect) Pixels(cell Size) Size {
	return Size{Width: r.Width * cell.Width, Height: r.Height * cell.Height}
}
