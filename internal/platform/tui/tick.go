// Package tui provides the Bubble Tea frontend for the biome engine.
// It handles the terminal UI loop, input mapping and run bookkeeping.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// ConfigChangedMsg reports an edited biome config file.
type ConfigChangedMsg struct {
	Path string
}

// configErrMsg carries a watcher failure.
type configErrMsg struct {
	err error
}

// watchCmd waits for the next config change. It returns nil once the
// watcher's channels are closed.
func watchCmd(events <-chan string, errs <-chan error) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			return ConfigChangedMsg{Path: path}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}
