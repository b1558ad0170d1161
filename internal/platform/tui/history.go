package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-biomes/internal/registry"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the biome sidebar
	sidebarWidth       = 18  // Width of the biome sidebar
	maxRuns            = 100 // Max runs to load per biome
)

// HistoryKeyMap defines the key bindings for the run history screen.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBiome key.Binding
	PrevBiome key.Binding
	Clear     key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBiome, k.PrevBiome, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBiome, k.PrevBiome},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBiome: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next biome"),
		),
		PrevBiome: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev biome"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear runs"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists recent runs and aggregate stats per biome.
type HistoryModel struct {
	biomes      []registry.Info
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       storage.BiomeStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	standalone  bool
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history screen starting at the first biome.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		biomes:      registry.List(),
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(m.biomes) > 0 {
		m.load(m.biomes[0].ID)
	}
	return m
}

// createTable creates the runs table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Result", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Keys", Width: 6},
		{Title: "Lives", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads runs and stats for biomeID.
func (m *HistoryModel) load(biomeID string) {
	m.runs, m.stats, m.loadErr = nil, storage.BiomeStats{BiomeID: biomeID}, nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(biomeID, maxRuns); err != nil {
			m.loadErr = err
		} else {
			m.runs = runs
		}
		if st, err := m.store.GetBiomeStats(biomeID); err != nil {
			m.loadErr = err
		} else {
			m.stats = *st
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := string(r.Outcome)
		if r.Resumed {
			result += "*"
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			result,
			fmt.Sprintf("%.1fs", r.Elapsed),
			fmt.Sprintf("%d/%d", r.Keys, r.KeysTotal),
			fmt.Sprintf("%d", r.Lives),
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *HistoryModel) step(delta int) {
	if len(m.biomes) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.biomes)) % len(m.biomes)
	m.load(m.biomes[m.cursor].ID)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextBiome):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevBiome):
			m.step(-1)
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && len(m.biomes) > 0 {
				id := m.biomes[m.cursor].ID
				if err := m.store.ClearRuns(id); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.load(id)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if len(m.biomes) > 0 {
		title = fmt.Sprintf("RUN HISTORY - %s", m.biomes[m.cursor].Title)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render("history unavailable: " + m.loadErr.Error()))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected biome.
func (m HistoryModel) statsLine() string {
	st := m.stats
	if st.Runs == 0 {
		return dimStyle.Render("No runs yet")
	}
	best := "-"
	if st.Wins > 0 {
		best = fmt.Sprintf("%.1fs", st.BestTime)
	}
	return fmt.Sprintf("Runs %d  Wins %d  Losses %d  Win rate %.0f%%  Best %s  Played %.0fs",
		st.Runs, st.Wins, st.Losses, st.WinRate()*100, best, st.TotalTime)
}

// renderWideLayout renders the table with a biome sidebar.
func (m HistoryModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Biomes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	for i, info := range m.biomes {
		line := "  " + info.Title
		if i == m.cursor {
			line = titleStyle.Render("> " + info.Title)
		}
		sidebar.WriteString(line)
		sidebar.WriteString("\n")
	}

	side := boxStyle.Width(sidebarWidth).Padding(0, 1).Render(sidebar.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, side, "  ", boxStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders biome tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	activeTab := selectedStyle.Padding(0, 1)
	tabs := make([]string, len(m.biomes))
	for i, info := range m.biomes {
		if i == m.cursor {
			tabs[i] = activeTab.Render(info.Title)
		} else {
			tabs[i] = dimStyle.Render(" " + info.Title + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.biomes) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.biomes[m.cursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).Render("No runs recorded yet.\nFinish a level to see it here.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, width, height)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
