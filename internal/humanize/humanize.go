// Package humanize formats sizes, counts and arena snapshots for terminals.
package humanize

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/scriptarena/arena"
)

var printer = message.NewPrinter(language.English)

// SetLanguage switches the locale used for digit grouping.
func SetLanguage(tag language.Tag) {
	printer = message.NewPrinter(tag)
}

// Number formats n with digit grouping, e.g. 1,234,567.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Bytes formats a byte count with a binary unit, e.g. "1.5 KB".
func Bytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Percent formats a ratio in [0,1] as a percentage with one decimal.
func Percent(r float64) string {
	return printer.Sprintf("%.1f%%", r*100)
}

// DiagnosticsTable renders one line per bank plus a totals line.
func DiagnosticsTable(d arena.Diagnostics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %10s  %10s  %10s  %7s\n", "SLOT", "BLOCK", "LIVE", "CAPACITY", "USED")
	for _, bs := range d.Banks {
		used := 0.0
		if bs.Capacity > 0 {
			used = float64(bs.Live) / float64(bs.Capacity)
		}
		fmt.Fprintf(&b, "%4d  %10s  %10s  %10s  %7s\n",
			bs.Slot,
			Bytes(int64(bs.BlockSize)),
			Number(int64(bs.Live)),
			Number(int64(bs.Capacity)),
			Percent(used),
		)
	}
	fmt.Fprintf(&b, "%d banks, base %s, %s of %s in use (%s)\n",
		d.Count,
		Bytes(int64(d.Base)),
		Bytes(int64(d.LiveBytes())),
		Bytes(int64(d.Capacity())),
		Percent(d.Utilization()),
	)
	return b.String()
}

// LayoutTable renders a bank layout.
func LayoutTable(layout []arena.BankLayout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%4s  %10s  %10s  %12s  %12s\n", "SLOT", "BLOCK", "COUNT", "START", "END")
	total := 0
	for _, bl := range layout {
		fmt.Fprintf(&b, "%4d  %10s  %10s  %12s  %12s\n",
			bl.Slot,
			Bytes(int64(bl.BlockSize)),
			Number(int64(bl.Count)),
			Number(int64(bl.Start)),
			Number(int64(bl.End)),
		)
		total = bl.End
	}
	fmt.Fprintf(&b, "data region: %s (%s bytes)\n", Bytes(int64(total)), Number(int64(total)))
	return b.String()
}
