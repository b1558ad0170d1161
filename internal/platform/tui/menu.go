package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/registry"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

// MenuItem represents a selectable biome in the menu.
type MenuItem struct {
	BiomeID       string
	Title         string
	Description   string
	BestTime      float64
	HasBest       bool
	HasCheckpoint bool
}

// MenuModel is the Bubble Tea model for the biome picker.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	standalone   bool
	quitting     bool
	selected     *MenuItem
	resume       bool
	wantsHistory bool
	notice       string
}

// NewMenuModel creates a menu over every registered biome. Best times
// come from store and checkpoint markers from cfg.SaveDir; either may be
// missing.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	infos := registry.List()
	items := make([]MenuItem, 0, len(infos))
	for _, info := range infos {
		item := MenuItem{
			BiomeID:     info.ID,
			Title:       info.Title,
			Description: info.Description,
		}
		if store != nil {
			if best, ok, err := store.BestTime(info.ID); err == nil && ok {
				item.BestTime, item.HasBest = best, true
			}
		}
		item.HasCheckpoint = hasCheckpoint(cfg.SaveDir, info.ID)
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func hasCheckpoint(dir, id string) bool {
	if dir == "" {
		return false
	}
	s, err := checkpoint.NewStore(dir, id)
	if err != nil {
		return false
	}
	return s.Exists()
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		return m.choose(false)

	case MenuActionResume:
		if len(m.items) > 0 && !m.items[m.cursor].HasCheckpoint {
			m.notice = "No checkpoint for " + m.items[m.cursor].Title
			return m, nil
		}
		return m.choose(true)

	case MenuActionHistory:
		m.wantsHistory = true
		return m, m.done()
	}

	return m, nil
}

func (m MenuModel) choose(resume bool) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	selected := m.items[m.cursor]
	m.selected = &selected
	m.resume = resume
	return m, m.done()
}

// done exits the program when the menu runs on its own. Inside a session
// the caller polls Selected and WantsHistory instead.
func (m MenuModel) done() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  B I O M E S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a biome", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-12s", item.Title)
		if item.HasBest {
			line += fmt.Sprintf("  best %6.1fs", item.BestTime)
		} else {
			line += "  best      -"
		}
		if item.HasCheckpoint {
			line += "  [saved]"
		} else {
			line += "         "
		}
		if i == m.cursor {
			line = selectedStyle.Render(">" + line[1:])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(m.items[m.cursor].Description), m.width))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(centerText(noticeStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: New game  |  C: Continue  |  Tab: History  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Resume reports whether the selection should continue from a checkpoint.
func (m MenuModel) Resume() bool {
	return m.resume
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.wantsHistory
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	BiomeID      string
	Resume       bool
	Config       core.RuntimeConfig
	WantsHistory bool
	Quit         bool
}

// menuResult converts a finished menu into a MenuResult.
func menuResult(m MenuModel) MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsHistory():
		result.WantsHistory = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.BiomeID = m.Selected().BiomeID
		result.Resume = m.Resume()
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return menuResult(m), nil
}
