// Package tui renders the circular theme reveal in a terminal with bubbletea.
// Each cell is treated as one pixel wide and two pixels tall so the circle
// stays round.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/theme"
)

// cellAspect is how many "pixels" tall a terminal cell is per pixel of width.
const cellAspect = 2

// frameMsg carries the time of an animation frame.
type frameMsg time.Time

// Model is the preview program state.
type Model struct {
	ctrl    *theme.Controller
	frame   time.Duration
	width   int
	height  int
	ticking bool
	status  lipgloss.Style
}

// New returns a preview model driving ctrl at the given frame interval.
func New(ctrl *theme.Controller, frame time.Duration) Model {
	if frame <= 0 {
		frame = theme.DefaultFrame
	}
	return Model{
		ctrl:   ctrl,
		frame:  frame,
		status: lipgloss.NewStyle().Bold(true).Padding(0, 1),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// canvas is the drawable area; the last row is the status line.
func (m Model) canvas() (int, int) {
	return m.width, max(m.height-1, 0)
}

func (m Model) viewport() theme.Viewport {
	w, h := m.canvas()
	return theme.Viewport{Width: float64(w), Height: float64(h * cellAspect)}
}

func (m Model) toggleAt(col, row int) (tea.Model, tea.Cmd) {
	p := theme.Point{X: float64(col) + 0.5, Y: (float64(row) + 0.5) * cellAspect}
	if !m.ctrl.Toggle(p, m.viewport()) || m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, m.tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter", "t":
			w, h := m.canvas()
			return m.toggleAt(w/2, h/2)
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.toggleAt(msg.X, msg.Y)
		}

	case frameMsg:
		if m.ctrl.Tick(time.Time(msg)) {
			return m, m.tick()
		}
		m.ticking = false
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	w, h := m.canvas()
	if w == 0 {
		return "starting..."
	}

	st := m.ctrl.State()
	var b strings.Builder
	for _, row := range cellColors(st, w, h) {
		b.WriteString(renderRow(row))
		b.WriteByte('\n')
	}
	b.WriteString(m.status.Render(statusLine(st, m.ctrl.Themes().Len())))
	return b.String()
}

// cellColors returns the background color of every canvas cell for st.
func cellColors(st theme.State, w, h int) [][]string {
	rows := make([][]string, h)
	for y := range rows {
		rows[y] = make([]string, w)
		for x := range rows[y] {
			c := st.Color
			if st.IsAnimating {
				p := theme.Point{X: float64(x) + 0.5, Y: (float64(y) + 0.5) * cellAspect}
				if !st.Covers(p) {
					c = st.PreviousColor
				}
			}
			rows[y][x] = c
		}
	}
	return rows
}

// renderRow paints runs of equal color with a single style each.
func renderRow(colors []string) string {
	var b strings.Builder
	for i := 0; i < len(colors); {
		j := i
		for j < len(colors) && colors[j] == colors[i] {
			j++
		}
		style := lipgloss.NewStyle().Background(terminalColor(colors[i]))
		b.WriteString(style.Render(strings.Repeat(" ", j-i)))
		i = j
	}
	return b.String()
}

func statusLine(st theme.State, themes int) string {
	line := fmt.Sprintf("theme %d/%d %s | %s", st.ActiveThemeIndex+1, themes, st.Color, st.Phase())
	if st.Phase() == theme.PhaseExpanding {
		line += fmt.Sprintf(" radius %.0f/%.0f", st.Radius, st.TargetRadius)
	}
	return line + " | click or space to toggle, q to quit"
}

// terminalColor converts #rgb, #rgba, #rrggbb and #rrggbbaa into #rrggbb,
// dropping alpha, which terminals cannot show.
func terminalColor(hex string) lipgloss.Color {
	h := strings.TrimPrefix(hex, "#")
	switch len(h) {
	case 3, 4:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 8:
		h = h[:6]
	}
	return lipgloss.Color("#" + strings.ToLower(h))
}

// Run starts the preview full-screen with mouse support.
func Run(ctrl *theme.Controller, frame time.Duration) error {
	p := tea.NewProgram(New(ctrl, frame), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
