package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/workload"
)

// TestHelper drives a Model through messages the way the program loop would.
type TestHelper struct {
	t      testing.TB
	model  Model
	copied []string
}

// NewTestHelper builds a model over a small heap-backed arena.
func NewTestHelper(t testing.TB, mix workload.Mix) *TestHelper {
	t.Helper()
	sim, err := NewSimulation(SimOptions{
		Config: &arena.Config{Base: 16, Counts: []int{64, 32, 16, 8}, Region: arena.RegionHeap},
		Mix:    mix,
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	h := &TestHelper{t: t}
	h.model = NewModel(sim, 100, time.Millisecond)
	h.model.copyFn = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}
	return h
}

// Send delivers msg and returns the command the model produced.
func (h *TestHelper) Send(msg tea.Msg) tea.Cmd {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	return cmd
}

// SendKeyRune simulates pressing a rune key
func (h *TestHelper) SendKeyRune(r rune) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// SendKey simulates pressing a special key
func (h *TestHelper) SendKey(keyType tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: keyType})
}

// Tick simulates n ticks of the program clock.
func (h *TestHelper) Tick(n int) {
	for range n {
		h.Send(tickMsg(time.Now()))
	}
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}
