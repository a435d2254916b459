// Package placeholder draws a framed label where an image would have gone,
// for terminals that cannot display graphics.
package placeholder

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/kittypreview/internal/geometry"
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Foreground(lipgloss.Color("245")).
	Align(lipgloss.Center, lipgloss.Center)

// Render returns a cols x rows box with label centered inside it, truncated
// to fit. Returns empty string when the box has no room for a label.
func Render(cols, rows int, label string) string {
	if cols < 4 || rows < 3 {
		return ""
	}
	inner := cols - 2
	tail := "..."
	if inner <= len(tail) {
		tail = ""
	}
	label = runewidth.Truncate(strings.ReplaceAll(label, "\n", " "), inner, tail)
	return boxStyle.
		Width(inner).
		Height(rows - 2).
		Render(label)
}

// Draw writes the box for label line by line at area.
func Draw(w io.Writer, area geometry.Rect, label string) error {
	box := Render(area.Width, area.Height, label)
	if box == "" {
		return nil
	}
	for i, line := range strings.Split(box, "\n") {
		if _, err := io.WriteString(w, ansi.CursorPosition(area.Left+1, area.Top+i+1)+line); err != nil {
			return fmt.Errorf("write placeholder: %w", err)
		}
	}
	return nil
}
