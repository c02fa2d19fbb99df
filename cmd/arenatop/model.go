package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/scriptarena/arena"
)

const (
	minBatch      = 10
	maxBatch      = 100000
	historyLen    = 60
	maxEvents     = 200
	eventsHeight  = 6
	defaultWidth  = 100
	defaultHeight = 30
)

// tickMsg drives the workload.
type tickMsg time.Time

// clearStatusMsg clears the status message.
type clearStatusMsg struct{}

// Model is the top-level viewer model.
type Model struct {
	sim  *Simulation
	keys KeyMap
	help help.Model

	events viewport.Model
	log    []string

	batch    int
	interval time.Duration
	paused   bool
	showHelp bool

	width  int
	height int

	snap    Snapshot
	history []int // live bytes per tick, oldest first

	statusMessage string
	copyFn        func(string) error
	err           error
}

// NewModel creates a model over a running simulation.
func NewModel(sim *Simulation, batch int, interval time.Duration) Model {
	if batch < minBatch {
		batch = minBatch
	}
	m := Model{
		sim:      sim,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		events:   viewport.New(defaultWidth, eventsHeight),
		batch:    batch,
		interval: interval,
		width:    defaultWidth,
		height:   defaultHeight,
		copyFn:   clipboard.WriteAll,
	}
	m.snap = sim.Snapshot()
	m.addEvent("started: mix %s, region %s, %d banks", m.snap.Mix, m.snap.Region, m.snap.Diagnostics.Count)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runBatch advances the workload by one batch and refreshes the snapshot.
func (m *Model) runBatch() {
	before := m.snap
	if _, err := m.sim.Step(m.batch); err != nil {
		m.err = err
		return
	}
	m.refresh()
	if d := m.snap.Result.Failures - before.Result.Failures; d > 0 {
		m.addEvent("%d allocations failed", d)
	}
	if d := m.snap.Stats.NewDelegated - before.Stats.NewDelegated; d > 0 && before.Stats.NewDelegated == 0 {
		m.addEvent("first requests passed to the delegate")
	}
	for i, b := range m.snap.Diagnostics.Banks {
		if b.Free() == 0 && i < len(before.Diagnostics.Banks) && before.Diagnostics.Banks[i].Free() > 0 {
			m.addEvent("bank %d (%d B) full", b.Slot, b.BlockSize)
		}
	}
}

func (m *Model) refresh() {
	m.snap = m.sim.Snapshot()
	m.history = append(m.history, m.snap.Diagnostics.LiveBytes())
	if len(m.history) > historyLen {
		m.history = m.history[len(m.history)-historyLen:]
	}
}

func (m *Model) drain() {
	live := m.snap.Result.Live
	m.sim.Drain()
	m.refresh()
	m.addEvent("drained %d objects", live)
}

func (m *Model) addEvent(format string, args ...any) {
	line := time.Now().Format("15:04:05") + "  " + fmt.Sprintf(format, args...)
	m.log = append(m.log, line)
	if len(m.log) > maxEvents {
		m.log = m.log[len(m.log)-maxEvents:]
	}
	m.events.SetContent(strings.Join(m.log, "\n"))
	m.events.GotoBottom()
}

func (m *Model) copySnapshot() error {
	data, err := marshalSnapshot(m.snap)
	if err != nil {
		return err
	}
	return m.copyFn(data)
}

// Close drains the workload and uninstalls the arena.
func (m Model) Close() error {
	return m.sim.Close()
}

// Diagnostics returns the last snapshot's occupancy.
func (m Model) Diagnostics() arena.Diagnostics {
	return m.snap.Diagnostics
}
