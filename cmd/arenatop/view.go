package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/scriptarena/arena"
	"github.com/joshuapare/scriptarena/internal/humanize"
)

const (
	barWidth   = 30
	sparkRunes = "▁▂▃▄▅▆▇█"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	frame := m.renderMain()
	if m.showHelp {
		// overlay needs tea.Models on both sides; the rendered frames are static
		return overlay.New(
			staticView(m.renderHelp()),
			staticView(frame),
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		).View()
	}
	return frame
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderBanks(), m.renderStats()),
		m.renderTrend(),
		m.renderEvents(),
		m.renderStatus(),
	)
}

func (m Model) renderHeader() string {
	info := fmt.Sprintf("mix %s · region %s · seed %d · batch %s",
		m.snap.Mix, m.snap.Region, m.snap.Seed, humanize.Number(int64(m.batch)))
	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		headerStyle.Render("Script Arena"),
		"  ",
		infoStyle.Render(info),
	)
	if m.paused {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", pausedStyle.Render("PAUSED"))
	}
	return header
}

func (m Model) renderBanks() string {
	d := m.snap.Diagnostics
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Banks"))
	b.WriteString("\n")
	for _, bs := range d.Banks {
		ratio := 0.0
		if bs.Capacity > 0 {
			ratio = float64(bs.Live) / float64(bs.Capacity)
		}
		fmt.Fprintf(&b, "%s %s %s %s\n",
			labelStyle.Render(fmt.Sprintf("slot %d %7s", bs.Slot, humanize.Bytes(int64(bs.BlockSize)))),
			renderBar(ratio, barWidth),
			fmt.Sprintf("%9s/%-9s", humanize.Number(int64(bs.Live)), humanize.Number(int64(bs.Capacity))),
			humanize.Percent(ratio),
		)
	}
	fmt.Fprintf(&b, "%s %s of %s (%s)",
		labelStyle.Render("total"),
		humanize.Bytes(int64(d.LiveBytes())),
		humanize.Bytes(int64(d.Capacity())),
		humanize.Percent(d.Utilization()),
	)
	return paneStyle.Render(b.String())
}

func (m Model) renderStats() string {
	st := m.snap.Stats
	res := m.snap.Result
	rows := []struct {
		label string
		value int
	}{
		{"steps", res.Steps},
		{"live objects", res.Live},
		{"oom", res.Failures},
		{"hook calls", st.Calls},
		{"new", st.New},
		{"delegated", st.NewDelegated},
		{"foreign", st.Foreign},
		{"frees", st.Frees},
		{"no-ops", st.NoOps},
		{"grows", st.Grows},
		{"grow fails", st.GrowFailures},
		{"shrinks", st.Shrinks},
		{"kept", st.ShrinksKept},
	}
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Hook"))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n%s %12s", labelStyle.Render(fmt.Sprintf("%-12s", r.label)), humanize.Number(int64(r.value)))
	}
	return paneStyle.Render(b.String())
}

func (m Model) renderTrend() string {
	capacity := m.snap.Diagnostics.Capacity()
	return paneStyle.Render(
		paneTitleStyle.Render("Live bytes") + "\n" + trendStyle.Render(sparkline(m.history, capacity)),
	)
}

func (m Model) renderEvents() string {
	return paneStyle.Render(paneTitleStyle.Render("Events") + "\n" + m.events.View())
}

func (m Model) renderStatus() string {
	if m.statusMessage != "" {
		return statusStyle.Render(m.statusMessage)
	}
	return statusStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("blocks above %s go to the delegate",
		humanize.Bytes(int64(maxBlock(m.snap.Diagnostics))))))
	return helpBoxStyle.Render(b.String())
}

// renderBar draws a horizontal occupancy bar.
func renderBar(ratio float64, width int) string {
	filled := int(ratio*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return barStyle(ratio).Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// sparkline scales values against limit into block characters.
func sparkline(values []int, limit int) string {
	if len(values) == 0 {
		return "waiting for data"
	}
	runes := []rune(sparkRunes)
	var b strings.Builder
	for _, v := range values {
		i := 0
		if limit > 0 {
			i = v * (len(runes) - 1) / limit
		}
		b.WriteRune(runes[min(max(i, 0), len(runes)-1)])
	}
	return b.String()
}

func maxBlock(d arena.Diagnostics) int {
	if len(d.Banks) == 0 {
		return 0
	}
	return d.Banks[len(d.Banks)-1].BlockSize
}

// staticView adapts a rendered frame to tea.Model for the overlay.
type staticView string

func (v staticView) Init() tea.Cmd                       { return nil }
func (v staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v staticView) View() string                        { return string(v) }
