package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/scriptarena/internal/logger"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.events.Width = max(msg.Width-4, 20)
		return m, nil

	case tickMsg:
		if !m.paused && m.err == nil {
			m.runBatch()
		}
		return m, m.tick()

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If help is showing, handle help keys
	if m.showHelp {
		if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		// Ignore other keys when help is showing
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		logger.Info("quit requested", "steps", m.snap.Result.Steps)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.addEvent("paused")
		} else {
			m.addEvent("resumed")
		}
		return m, nil

	case key.Matches(msg, m.keys.Step):
		m.runBatch()
		return m, nil

	case key.Matches(msg, m.keys.Drain):
		m.drain()
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		m.batch = min(m.batch*2, maxBatch)
		return m.setStatus("batch size %d", m.batch)

	case key.Matches(msg, m.keys.Slower):
		m.batch = max(m.batch/2, minBatch)
		return m.setStatus("batch size %d", m.batch)

	case key.Matches(msg, m.keys.Copy):
		if err := m.copySnapshot(); err != nil {
			logger.Warn("copy failed", "error", err)
			return m.setStatus("copy failed: %v", err)
		}
		return m.setStatus("snapshot copied to clipboard")

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.events, cmd = m.events.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setStatus shows a message in the status bar for two seconds.
func (m Model) setStatus(format string, args ...any) (tea.Model, tea.Cmd) {
	m.statusMessage = fmt.Sprintf(format, args...)
	return m, tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func marshalSnapshot(s Snapshot) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
