package model

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	macosClearCmd = "clear"
)

var (
	aliveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	deadStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235"))
)

// TerminalRenderer draws a grid as two-column blocks per cell
type TerminalRenderer struct {
	Out io.Writer
	// Plain disables colour styling, mainly for tests and pipes
	Plain bool
}

// NewTerminalRenderer renders to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Format returns the rendered rows of the grid joined by newlines
func (r *TerminalRenderer) Format(g *Grid) string {
	var sb strings.Builder
	for y := range g.rows {
		for x := range g.cols {
			sb.WriteString(r.cell(g.cells[y][x]))
		}
		if y < g.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (r *TerminalRenderer) cell(s CellState) string {
	switch {
	case r.Plain && s == Alive:
		return gridPosBlock
	case r.Plain:
		return gridPosEmpty
	case s == Alive:
		return aliveStyle.Render(gridPosBlock)
	default:
		return deadStyle.Render(gridPosEmpty)
	}
}

// Display renders the grid to the output writer
func (r *TerminalRenderer) Display(g *Grid) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	if _, err := io.WriteString(out, r.Format(g)+"\n"); err != nil {
		return errors.Wrap(err, "[Display] failed to write grid")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.Out
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}
