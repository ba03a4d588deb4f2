package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/microsoft/Sysinternals-jcd/internal/models"
)

var (
	headerColor  = color.New(color.Bold)
	exactColor   = color.New(color.FgGreen)
	partialColor = color.New(color.FgYellow)
)

// writeList prints every ranked match. Pipes get bare paths, one per line;
// terminals get an aligned table.
func writeList(w io.Writer, list models.RankedList, table bool) error {
	if !table {
		for _, c := range list {
			if _, err := fmt.Fprintln(w, c.Path); err != nil {
				return err
			}
		}
		return nil
	}

	header := []string{"#", "KIND", "DIR", "DEPTH", "NAME", "PATH"}
	rows := make([][]string, 0, len(list))
	for i, c := range list {
		rows = append(rows, []string{
			strconv.Itoa(i),
			c.Kind.String(),
			c.Direction.String(),
			strconv.Itoa(c.Depth),
			filepath.Base(c.Path),
			c.Path,
		})
	}

	// Display width, not byte length, so wide names still line up
	widths := make([]int, len(header))
	for _, row := range append([][]string{header}, rows...) {
		for col, cell := range row {
			widths[col] = max(widths[col], runewidth.StringWidth(cell))
		}
	}

	if _, err := fmt.Fprintln(w, headerColor.Sprint(formatRow(header, widths))); err != nil {
		return err
	}
	for i, row := range rows {
		line := formatRow(row, widths)
		if list[i].Kind == models.Exact {
			line = exactColor.Sprint(line)
		} else {
			line = partialColor.Sprint(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatRow pads every cell but the last to its column width.
func formatRow(cells []string, widths []int) string {
	line := ""
	for col, cell := range cells {
		if col == len(cells)-1 {
			line += cell
			break
		}
		line += runewidth.FillRight(cell, widths[col]) + "  "
	}
	return line
}
