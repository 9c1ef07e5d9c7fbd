package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/session"
)

// rows above the grid: title line and status line
const gridTop = 2

var (
	title    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	yellow   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	alive    = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	dead     = lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	cursorOn = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(1, 2)
)

const instructions = `How to play

  Conway's Game of Life: each generation, a live cell with
  two or three live neighbours survives, a dead cell with
  exactly three live neighbours is born, everything else dies.

  arrows/hjkl  move cursor        space/click  toggle cell
  r            randomize          c            clear
  enter/s      start or stop      ?            this help
  q            quit

  Stopping the simulation clears the board.`

// tickMsg belongs to the run that scheduled it; ticks from an earlier run are dropped
type tickMsg struct {
	run int
	at  time.Time
}

// Model is the bubbletea model wrapping a session
type Model struct {
	session  *session.Session
	interval time.Duration
	runID    int

	cursorY, cursorX int
	showHelp         bool
	message          string
}

// New builds the front end for s, stepping every interval while running
func New(s *session.Session, interval time.Duration) Model {
	return Model{
		session:  s,
		interval: interval,
		cursorY:  s.Grid().Rows() / 2,
		cursorX:  s.Grid().Cols() / 2,
	}
}

// Run starts the interactive program and blocks until the user quits
func Run(s *session.Session, interval time.Duration) error {
	p := tea.NewProgram(New(s, interval), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "[tui.Run] program failed")
	}
	return nil
}

func (m Model) tick() tea.Cmd {
	run := m.runID
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg{run: run, at: t} })
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tickMsg:
		if msg.run != m.runID || !m.session.Running() {
			return m, nil
		}
		if err := m.session.Tick(context.Background()); err != nil {
			m.message = err.Error()
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?", "esc", "enter", " ":
			m.showHelp = false
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "enter", "s":
		return m.startStop()
	}

	// the board is locked while the simulation runs
	if m.session.Running() {
		return m, nil
	}

	m.message = ""
	grid := m.session.Grid()
	switch key {
	case "up", "k":
		m.cursorY = max(0, m.cursorY-1)
	case "down", "j":
		m.cursorY = min(grid.Rows()-1, m.cursorY+1)
	case "left", "h":
		m.cursorX = max(0, m.cursorX-1)
	case "right", "l":
		m.cursorX = min(grid.Cols()-1, m.cursorX+1)
	case " ", "x":
		m.report(m.session.Toggle(m.cursorY, m.cursorX))
	case "r":
		m.report(m.session.Randomize())
	case "c":
		m.report(m.session.Clear())
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.showHelp || m.session.Running() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	y, x := msg.Y-gridTop, msg.X/2
	if !m.session.Grid().InBounds(y, x) {
		return m, nil
	}
	m.cursorY, m.cursorX = y, x
	m.message = ""
	m.report(m.session.Toggle(y, x))
	return m, nil
}

func (m Model) startStop() (Model, tea.Cmd) {
	m.message = ""
	if err := m.session.StartStop(); err != nil {
		if errors.Is(err, session.ErrEmptyGrid) {
			m.message = "Please set up the grid before starting the simulation."
		} else {
			m.message = err.Error()
		}
		return m, nil
	}
	if m.session.Running() {
		m.runID++
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) report(err error) {
	if err != nil {
		m.message = err.Error()
	}
}

func (m Model) View() string {
	if m.showHelp {
		return modal.Render(instructions) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(title.Render("GAME OF LIFE"))
	sb.WriteString("  ")
	sb.WriteString(m.status())
	sb.WriteString("\n\n")

	grid := m.session.Grid()
	running := m.session.Running()
	for y := range grid.Rows() {
		for x := range grid.Cols() {
			block := dead.Render("··")
			if grid.At(y, x) == model.Alive {
				block = alive.Render("██")
			}
			if !running && y == m.cursorY && x == m.cursorX {
				block = cursorOn.Render("[]")
				if grid.At(y, x) == model.Alive {
					block = cursorOn.Render("██")
				}
			}
			sb.WriteString(block)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if m.message != "" {
		sb.WriteString(red.Render(m.message))
		sb.WriteString("\n")
	}
	sb.WriteString(dim.Render(m.hints()))
	return sb.String()
}

// status renders the status line. It must stay on a single row so mouse rows line up with gridTop.
func (m Model) status() string {
	grid := m.session.Grid()
	if m.session.Running() {
		stats := m.session.Stats()
		return green.Render("RUNNING") + dim.Render(fmt.Sprintf("  gen %d  pop %d  %.1f gen/s",
			m.session.Generation(), grid.CountLivingCells(), stats.GenerationsPerSecond))
	}
	return yellow.Render("IDLE") + dim.Render(fmt.Sprintf("  %dx%d  pop %d",
		grid.Rows(), grid.Cols(), grid.CountLivingCells()))
}

func (m Model) hints() string {
	if m.session.Running() {
		return "[enter] stop  [?] help  [q] quit"
	}
	return "[space] toggle  [r] randomize  [c] clear  [enter] start  [?] help  [q] quit"
}
