package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-biomes/internal/config"
	"github.com/vovakirdan/tui-biomes/internal/core"
	"github.com/vovakirdan/tui-biomes/internal/registry"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

// noticeSeconds is how long a status notice stays on screen.
const noticeSeconds = 3

// GameResult is how a game session ended.
type GameResult struct {
	Choice core.EndChoice
	State  core.GameState
}

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithPlayer sets the name recorded with finished runs.
func WithPlayer(name string) GameOption {
	return func(m *GameModel) {
		m.player = name
	}
}

// WithWatcher shows a notice whenever a biome config file changes.
// Changes apply to the next game.
func WithWatcher(w *config.Watcher) GameOption {
	return func(m *GameModel) {
		if w != nil {
			m.events = w.Events
			m.errs = w.Errors
		}
	}
}

// WithLogger sets the logger for run bookkeeping.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		m.logger = l
	}
}

// GameModel runs one biome inside Bubble Tea. After a win or loss it
// shows the end screen and either starts a new game in place or hands
// control back to the caller.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	input     *InputState
	keyMapper *KeyMapper
	logger    *log.Logger
	player    string

	events <-chan string
	errs   <-chan error

	gameState   core.GameState
	recorded    bool
	choice      int
	notice      string
	noticeTicks int

	standalone bool
	quitting   bool
	backToMenu bool
	result     GameResult
}

// NewGameModel creates a model for game. A zero seed is replaced with a
// time based one.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		input:     NewInputState(DefaultHoldTicks),
		keyMapper: NewKeyMapper(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = log.Default().WithPrefix("tui")
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.events, m.errs))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// World coordinates are normalized, so a resize only changes the
		// raster size and the level keeps running.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		m.logger.Info("biome config changed", "path", msg.Path)
		m.showNotice(fmt.Sprintf("%s changed, applies to the next game", filepath.Base(msg.Path)))
		return m, watchCmd(m.events, m.errs)

	case configErrMsg:
		m.logger.Warn("config watcher error", "error", msg.err)
		m.showNotice("config watcher: " + msg.err.Error())
		return m, watchCmd(m.events, m.errs)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.gameState.GameOver() {
		return m.handleEndKey(msg)
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.recordRun(storage.OutcomeQuit)
		return m.finish(core.ChoiceExit)
	case action == core.ActionBack && m.gameState.Paused():
		m.recordRun(storage.OutcomeQuit)
		return m.finish(core.ChoiceSelectBiome)
	}

	m.input.Press(action)
	return m, nil
}

// handleEndKey drives the end screen menu.
func (m GameModel) handleEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "r" {
		m.restart()
		return m, nil
	}

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionUp:
		m.choice = (m.choice + len(core.EndChoices) - 1) % len(core.EndChoices)
	case MenuActionDown:
		m.choice = (m.choice + 1) % len(core.EndChoices)
	case MenuActionSelect:
		choice := core.EndChoices[m.choice]
		if choice == core.ChoiceNewGame {
			m.restart()
			return m, nil
		}
		return m.finish(choice)
	case MenuActionBack:
		return m.finish(core.ChoiceSelectBiome)
	case MenuActionQuit:
		return m.finish(core.ChoiceExit)
	}
	return m, nil
}

// restart starts a fresh level instance. A new game never resumes.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.config.Resume = false
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.input.Reset()
	m.recorded = false
	m.choice = 0
}

// finish ends the game session with choice.
func (m GameModel) finish(choice core.EndChoice) (tea.Model, tea.Cmd) {
	m.result = GameResult{Choice: choice, State: m.gameState}
	if choice == core.ChoiceExit {
		m.quitting = true
		return m, tea.Quit
	}
	m.backToMenu = true
	if m.standalone {
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.input.Next())
	m.gameState = result.State

	switch {
	case result.Has(core.EventCheckpointLoaded):
		m.showNotice("Checkpoint loaded")
	case result.Has(core.EventCheckpointSaved):
		m.showNotice("Checkpoint saved")
	}

	if m.gameState.GameOver() && !m.recorded {
		outcome := storage.OutcomeLost
		if m.gameState.Phase == core.PhaseWon {
			outcome = storage.OutcomeWon
		}
		m.recordRun(outcome)
		m.input.Reset()
		m.choice = 0
	}

	if m.noticeTicks > 0 {
		m.noticeTicks--
		if m.noticeTicks == 0 {
			m.notice = ""
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// recordRun stores the finished run once per level instance.
func (m *GameModel) recordRun(outcome storage.Outcome) {
	if m.recorded {
		return
	}
	m.recorded = true

	st := m.game.State()
	if m.store == nil || (outcome == storage.OutcomeQuit && st.Elapsed == 0) {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		BiomeID:   m.game.ID(),
		Player:    m.player,
		Outcome:   outcome,
		Lives:     st.Lives,
		Keys:      st.Keys,
		KeysTotal: st.KeysTotal,
		Elapsed:   st.Elapsed,
		Resumed:   m.game.Resumed(),
	})
	if err != nil {
		m.logger.Warn("cannot record run", "biome", m.game.ID(), "error", err)
	}
}

func (m *GameModel) showNotice(text string) {
	m.notice = text
	m.noticeTicks = noticeSeconds * m.config.TickRate
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".biomes", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.showNotice("screenshot saved to " + path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver() {
		m.drawEndChoices()
	}
	if m.notice != "" && m.screen.Height() > 1 {
		m.screen.DrawTextColored(0, m.screen.Height()-1, m.notice, core.ColorOrange)
	}
	return RenderScreen(m.screen)
}

// drawEndChoices draws the end screen options under the result banner.
func (m GameModel) drawEndChoices() {
	labels := make([]string, len(core.EndChoices))
	for i, c := range core.EndChoices {
		if i == m.choice {
			labels[i] = "[" + c.String() + "]"
		} else {
			labels[i] = " " + c.String() + " "
		}
	}
	y := (m.screen.Height()-4)/2 + 5
	if y >= m.screen.Height() {
		y = m.screen.Height() - 1
	}
	m.screen.DrawTextCentered(y, strings.Join(labels, "  "))
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Result returns how the session ended.
func (m GameModel) Result() GameResult {
	return m.result
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs game in its own Bubble Tea program and reports how it
// ended.
func RunGame(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) (GameResult, error) {
	model := NewGameModel(game, store, cfg, opts...)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return GameResult{}, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.Result(), nil
	}
	return GameResult{Choice: core.ChoiceExit}, nil
}
