// Package terminal renders a page controller in a terminal with bubbletea. Mouse motion drives
// the pointer resolver and grid hover, the wheel drives scroll progress, and a fixed-interval
// tick command advances the controller.
package terminal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Carmen-Shannon/onin-go/common"
	"github.com/Carmen-Shannon/onin-go/engine/flipgrid"
	"github.com/Carmen-Shannon/onin-go/engine/page"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerLines is the number of lines drawn above the first grid.
const headerLines = 4

// cellWidth is how many columns one grid cell occupies.
const cellWidth = 2

// flipGlyphs are indexed by the eighth of a turn a flipping cell is in.
var flipGlyphs = []string{"██", "▆▆", "▄▄", "▂▂", "▁▁", "▂▂", "▄▄", "▆▆"}

type tickMsg time.Time

// Model is a bubbletea model driving a page controller.
type Model struct {
	controller page.Controller
	frame      page.Frame

	interval   time.Duration
	wheelStep  float64
	scrollStep float64
	cellPixels int

	width, height int
	progress      float64
	quitting      bool

	styles styles
}

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	failed lipgloss.Style
	cells  []lipgloss.Style
}

func defaultStyles() styles {
	cells := make([]lipgloss.Style, 0, 4)
	for _, c := range []string{"#5f87af", "#d7875f", "#87af87", "#af87d7"} {
		cells = append(cells, lipgloss.NewStyle().Foreground(lipgloss.Color(c)))
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true),
		label:  lipgloss.NewStyle().Faint(true),
		failed: lipgloss.NewStyle().Foreground(lipgloss.Color("#d75f5f")),
		cells:  cells,
	}
}

var _ tea.Model = Model{}

// NewModel creates a Model for a mounted controller.
//
// Parameters:
//   - c: the controller
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the model
func NewModel(c page.Controller, options ...ModelBuilderOption) Model {
	m := Model{
		controller: c,
		interval:   time.Second / 30,
		wheelStep:  40,
		scrollStep: 0.05,
		cellPixels: 8,
		styles:     defaultStyles(),
	}
	for _, opt := range options {
		opt(&m)
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles terminal events and ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.frame = m.controller.Tick(m.interval.Seconds())
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.controller.SetViewportWidth(float32(msg.Width * m.cellPixels))

	case tea.MouseMsg:
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			m.scroll(-1)
		case msg.Button == tea.MouseButtonWheelDown:
			m.scroll(1)
		case msg.Action == tea.MouseActionMotion:
			m.pointer(msg.X, msg.Y)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.controller.Unmount()
			return m, tea.Quit
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "r":
			m.reset()
		case "esc":
			m.controller.PointerLeave()
		}
	}
	return m, nil
}

// View renders the featured readout, the scroll bar and every grid.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("onin"))
	b.WriteString("\n")
	b.WriteString(m.featuredLine())
	b.WriteString("\n")
	b.WriteString(m.scrollLine())
	b.WriteString("\n\n")

	for i, views := range m.frame.Grids {
		columns := m.controller.Grids()[i].Columns()
		for j, v := range views {
			b.WriteString(m.cell(v))
			if (j+1)%columns == 0 {
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.label.Render("wheel/↑↓ scroll · r reset · esc rest · q quit"))
	return b.String()
}

// Frame returns the frame produced by the latest tick.
func (m Model) Frame() page.Frame {
	return m.frame
}

// Progress returns the scroll progress the model last set.
func (m Model) Progress() float64 {
	return m.progress
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) scroll(direction float64) {
	if m.controller.Smoother() != nil {
		m.controller.Wheel(direction * m.wheelStep)
		return
	}
	m.progress = common.Clamp(m.progress+direction*m.scrollStep, 0, 1)
	m.controller.SetScrollProgress(m.progress)
}

// reset jumps scroll back to the top. The smoother republishes its own position every tick,
// so it is moved too when present.
func (m *Model) reset() {
	m.progress = 0
	if s := m.controller.Smoother(); s != nil {
		s.ScrollTo(0, true)
	}
	m.controller.SetScrollProgress(0)
}

// pointer feeds a motion event at cell (x, y) to the resolver and to the grid under it.
func (m *Model) pointer(x, y int) {
	if m.width > 0 && m.height > 0 {
		m.controller.PointerMoveClient(float32(x)+0.5, float32(y)+0.5, float32(m.width), float32(m.height))
	}

	top := headerLines
	for i, g := range m.controller.Grids() {
		w, h := g.Columns()*cellWidth, g.Rows()
		if y >= top && y < top+h && x >= 0 && x < w {
			m.controller.HoverAt(i, float64(x)+0.5, float64(y-top)+0.5, float64(w), float64(h))
			return
		}
		top += h + 1
	}
}

func (m Model) cell(v flipgrid.CellView) string {
	glyph := flipGlyphs[0]
	if v.Flipping {
		turn := math.Mod(-v.Angle, 360)
		if turn < 0 {
			turn += 360
		}
		glyph = flipGlyphs[int(turn/45)%len(flipGlyphs)]
	}
	return m.styles.cells[v.FlipCount%len(m.styles.cells)].Render(glyph)
}

func (m Model) featuredLine() string {
	s := m.frame.Featured
	status := s.Status.String()
	if s.Err != nil {
		status = m.styles.failed.Render(status)
	}
	live := s.Live
	return fmt.Sprintf("%s %s  %s %+.3f %+.3f  %s %+.3f %+.3f %+.3f  %s %.4f",
		m.styles.label.Render("featured"), status,
		m.styles.label.Render("rot"), live.Rotation.X(), live.Rotation.Y(),
		m.styles.label.Render("pos"), live.Position.X(), live.Position.Y(), live.Position.Z(),
		m.styles.label.Render("scale"), live.Scale.X(),
	)
}

func (m Model) scrollLine() string {
	const width = 20
	sc := m.frame.Scroll
	filled := int(math.Round(sc.Progress * width))
	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	return fmt.Sprintf("%s %s %3.0f%%  %s %+7.1f",
		m.styles.label.Render("scroll"), bar, sc.Progress*100,
		m.styles.label.Render("offset"), sc.Offset,
	)
}
