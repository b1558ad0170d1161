package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-biomes/internal/checkpoint"
	"github.com/vovakirdan/tui-biomes/internal/storage"
)

func sendMenu(m MenuModel, msg tea.Msg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func sendSession(m SessionModel, msg tea.Msg) SessionModel {
	next, _ := m.Update(msg)
	return next.(SessionModel)
}

func TestMenuListsRegisteredBiomes(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun(storage.Run{BiomeID: "fake", Outcome: storage.OutcomeWon, Elapsed: 12.5}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	m := NewMenuModel(store, testRuntime())
	if len(m.items) == 0 || m.items[0].BiomeID != "fake" {
		t.Fatalf("menu items = %+v, want the fake biome", m.items)
	}
	if !m.items[0].HasBest || m.items[0].BestTime != 12.5 {
		t.Errorf("best time not loaded: %+v", m.items[0])
	}
	view := m.View()
	if !strings.Contains(view, "Fake") || !strings.Contains(view, "12.5s") {
		t.Errorf("View() missing biome or best time:\n%s", view)
	}
}

func TestMenuSelectAndResume(t *testing.T) {
	saveDir := t.TempDir()
	cfg := testRuntime()
	cfg.SaveDir = saveDir

	m := NewMenuModel(nil, cfg)
	m = sendMenu(m, runeKey('c'))
	if m.Selected() != nil {
		t.Fatal("resume without a checkpoint must not select")
	}
	if !strings.Contains(m.View(), "No checkpoint") {
		t.Error("View() should explain the missing checkpoint")
	}

	cs, err := checkpoint.NewStore(saveDir, "fake")
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := cs.Save(checkpoint.Record{Biome: "fake", Player: checkpoint.Player{Lives: 2, Health: 50}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	m = NewMenuModel(nil, cfg)
	if !m.items[0].HasCheckpoint {
		t.Fatal("checkpoint marker missing")
	}
	m = sendMenu(m, runeKey('c'))
	if m.Selected() == nil || !m.Resume() {
		t.Fatal("c should select with resume")
	}
	res := menuResult(m)
	if res.BiomeID != "fake" || !res.Resume || res.Quit {
		t.Errorf("menuResult() = %+v", res)
	}
}

func TestMenuHistoryAndQuit(t *testing.T) {
	m := sendMenu(NewMenuModel(nil, testRuntime()), tea.KeyMsg{Type: tea.KeyTab})
	if !menuResult(m).WantsHistory {
		t.Error("tab should open history")
	}

	m = sendMenu(NewMenuModel(nil, testRuntime()), runeKey('q'))
	if !menuResult(m).Quit {
		t.Error("q should quit")
	}
}

func TestHistoryModelShowsRuns(t *testing.T) {
	store := openStore(t)
	store.SaveRun(storage.Run{BiomeID: "fake", Outcome: storage.OutcomeWon, Elapsed: 20, Keys: 2, KeysTotal: 2, Lives: 3, Player: "ann"})
	store.SaveRun(storage.Run{BiomeID: "fake", Outcome: storage.OutcomeLost, Elapsed: 9, Resumed: true})

	h := NewHistoryModel(store, 100, 30)
	if len(h.runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(h.runs))
	}
	view := h.View()
	for _, want := range []string{"RUN HISTORY - Fake", "Runs 2", "Wins 1", "Best 20.0s", "lost*", "ann"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	next, _ := h.Update(runeKey('x'))
	h = next.(HistoryModel)
	if len(h.runs) != 0 || h.stats.Runs != 0 {
		t.Error("x should clear the biome's runs")
	}

	next, _ = h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(HistoryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	cfg := testRuntime()
	cfg.SaveDir = userSaveDir(t.TempDir(), "ann")

	m := NewSessionModel(store, cfg, "ann", log.New(os.Stderr))
	m.Init()

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	// The registered fake biome wins on its first step.
	m = sendSession(m, TickMsg{})
	if !m.game.State().GameOver() {
		t.Fatal("game should be over")
	}
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu {
		t.Fatalf("Select Biome should return to the menu, screen = %v", m.screen)
	}
	if !m.game.game.(*fakeGame).closed {
		t.Error("leaving a game should close it")
	}

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 1 || runs[0].Player != "ann" {
		t.Fatalf("Expected one run by ann, got %+v", runs)
	}

	// A late tick from the finished game is ignored by the menu.
	m = sendSession(m, TickMsg{})
	if m.screen != screenMenu {
		t.Error("stray tick changed the screen")
	}

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatalf("tab should open history, screen = %v", m.screen)
	}
	if !strings.Contains(m.View(), "RUN HISTORY") {
		t.Error("history view not shown")
	}
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc should return to the menu")
	}

	next, cmd := m.Update(runeKey('q'))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q should end the session")
	}
}

func TestUserSaveDir(t *testing.T) {
	root := filepath.Join("srv", "saves")

	tests := []struct {
		user string
		want string
	}{
		{"ann", filepath.Join(root, "ann")},
		{"bob-2_x", filepath.Join(root, "bob-2_x")},
		{"../../etc", filepath.Join(root, "______etc")},
		{"", filepath.Join(root, "anonymous")},
		{"..", filepath.Join(root, "anonymous")},
	}
	for _, tt := range tests {
		if got := userSaveDir(root, tt.user); got != tt.want {
			t.Errorf("userSaveDir(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
	if got := userSaveDir("", "ann"); got != "" {
		t.Errorf("empty root should disable checkpoints, got %q", got)
	}
}
