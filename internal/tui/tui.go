// Package tui provides a Bubble Tea TUI for viewing dive records.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marente/fathom/internal/dive"
	"github.com/marente/fathom/internal/logbook"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 2)

	// Active tab: bright, highlighted
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25")).
			Padding(0, 1)

	// Inactive tab: muted
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	// Separator between tabs
	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	// Section heading inside a tab
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("45"))

	// Key=value label
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	bulletStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	// Depth chart
	waterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("31"))
	profileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	axisStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	syntheticStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)
)

// ── Tabs ────────────

type tabID int

const (
	tabProfile tabID = iota
	tabDetails
	tabNotes
	tabCount
)

var tabNames = [tabCount]string{"Profile", "Details", "Notes"}

// Model is the Bubble Tea model for the dive viewer.
type Model struct {
	rec       *dive.Record
	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool
}

// New creates a new TUI model for the given dive record.
func New(rec *dive.Record) Model {
	return Model{rec: rec}
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3":
			m.activeTab = tabID(msg.String()[0] - '1')
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	site := m.rec.Site
	if site == "" {
		site = "Unnamed site"
	}
	title := titleStyle.Width(m.width).Render("  fathom  " + site)

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	content := m.viewports[m.activeTab].View()

	hint := "  ←/→ tab  ↑/↓ scroll  1-3 jump  q quit"
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(
		hint + strings.Repeat(" ", pad) + pct,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────

func (m *Model) initViewports() {
	// title(1) + tabRow(1) + statusBar(1) = 3 fixed rows
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		vp := viewport.New(m.width, vpHeight)
		vp.SetContent(m.renderTab(i, vpHeight))
		m.viewports[i] = vp
	}
}

func (m *Model) renderTab(t tabID, height int) string {
	switch t {
	case tabProfile:
		return m.renderProfile(height)
	case tabDetails:
		return m.renderDetails()
	case tabNotes:
		return m.renderNotes()
	}
	return ""
}

func heading(s string) string {
	return sectionHeader.Render(s) + "\n"
}

func bullet(text string) string {
	return bulletStyle.Render("  • ") + text + "\n"
}

// ── Tab renderers ───────────────

func (m *Model) renderProfile(height int) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(heading("  Depth profile"))

	samples := m.rec.ActiveSamples()
	if len(samples) < 2 {
		sb.WriteString("\n" + dimStyle.Render("  No depth samples recorded for this dive.") + "\n")
		return sb.String()
	}

	if m.rec.Synthetic {
		sb.WriteString(syntheticStyle.Render("  ~ synthesized from summary data") + "\n")
	}
	sb.WriteString("\n")

	chartHeight := height - 7
	if chartHeight < 6 {
		chartHeight = 6
	}
	chartWidth := m.width - 12
	if chartWidth < 20 {
		chartWidth = 20
	}
	sb.WriteString(RenderChart(m.rec, chartWidth, chartHeight))

	return sb.String()
}

func (m *Model) renderDetails() string {
	r := m.rec
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(heading("  Dive"))
	sb.WriteString(detail("Site", orDash(r.Site)))
	sb.WriteString(detail("Date", r.Start.Format("2006-01-02 15:04 MST")))
	sb.WriteString(detail("Duration", logbook.FormatDuration(r.Duration)))
	sb.WriteString(detail("Max depth", logbook.FormatDepth(r.MaxDepth)))
	if r.MeanDepth > 0 {
		sb.WriteString(detail("Mean depth", logbook.FormatDepth(r.MeanDepth)))
	}
	sb.WriteString(detail("Samples", fmt.Sprintf("%d", r.SampleCount)))
	if r.Synthetic {
		sb.WriteString(detail("Profile", "synthesized"))
		sb.WriteString(detail("Manual to", logbook.FormatDuration(r.LastManualTime)))
	}

	sb.WriteString("\n")
	sb.WriteString(heading("  Device"))
	if r.Model == "" && r.DeviceID == 0 {
		sb.WriteString(dimStyle.Render("  No dive computer recorded.") + "\n")
		return sb.String()
	}
	sb.WriteString(detail("Model", orDash(r.Model)))
	if r.DeviceID != 0 {
		sb.WriteString(detail("Device ID", fmt.Sprintf("0x%08x", r.DeviceID)))
	}
	sb.WriteString(detail("Serial", orDash(r.Serial)))
	sb.WriteString(detail("Firmware", orDash(r.Firmware)))
	return sb.String()
}

func (m *Model) renderNotes() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(heading("  Notes"))
	if len(m.rec.Notes) == 0 {
		sb.WriteString(dimStyle.Render("  No notes for this dive.") + "\n")
		return sb.String()
	}
	for _, n := range m.rec.Notes {
		sb.WriteString(bullet(timeStyle.Render(n.Timestamp.Format("2006-01-02 15:04")) + "  " + n.Message))
	}
	return sb.String()
}

func detail(label, value string) string {
	return fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", label+":")), value)
}

func orDash(s string) string {
	if s == "" {
		return dimStyle.Render("—")
	}
	return s
}

// RenderChart draws the piecewise-linear profile as a width×height character
// grid with a depth axis in meters. It is exported for the --plain printout,
// which reuses the same drawing without the surrounding viewport chrome.
func RenderChart(rec *dive.Record, width, height int) string {
	samples := rec.ActiveSamples()
	if len(samples) < 2 || rec.MaxDepth == 0 || rec.Duration == 0 {
		return dimStyle.Render("  (no profile)") + "\n"
	}
	if width < 10 {
		width = 10
	}
	if height < 4 {
		height = 4
	}

	// grid[row][col]: row 0 is the surface.
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for col := 0; col < width; col++ {
		t := rec.Duration * col / (width - 1)
		depth := dive.DepthAt(samples, t)
		row := depth * (height - 1) / rec.MaxDepth
		if row >= height {
			row = height - 1
		}
		grid[row][col] = '█'
		// Light water column above the profile line.
		for r := 0; r < row; r++ {
			if grid[r][col] == ' ' {
				grid[r][col] = '·'
			}
		}
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		// Label the surface, the bottom, and every few rows in between.
		label := "      "
		if row == 0 || row == height-1 || row%4 == 0 {
			depthAtRow := rec.MaxDepth * row / (height - 1)
			label = fmt.Sprintf("%5.1f ", float64(depthAtRow)/1000)
		}
		sb.WriteString(axisStyle.Render(label + "┤"))

		line := string(grid[row])
		var styled strings.Builder
		for _, ch := range line {
			switch ch {
			case '█':
				styled.WriteString(profileStyle.Render(string(ch)))
			case '·':
				styled.WriteString(waterStyle.Render(string(ch)))
			default:
				styled.WriteRune(ch)
			}
		}
		sb.WriteString(styled.String())
		sb.WriteString("\n")
	}

	// Time axis.
	sb.WriteString(axisStyle.Render("      └" + strings.Repeat("─", width)))
	sb.WriteString("\n")
	left := "0:00"
	right := logbook.FormatDuration(rec.Duration)
	pad := width - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	sb.WriteString(axisStyle.Render("       " + left + strings.Repeat(" ", pad) + right))
	sb.WriteString("\n")

	return sb.String()
}

// Run starts the TUI for the given dive record.
func Run(rec *dive.Record) error {
	p := tea.NewProgram(New(rec), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
