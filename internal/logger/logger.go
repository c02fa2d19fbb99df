// Package logger holds the process-wide structured logger shared by
// arenactl and arenatop.
//
// Two sinks are supported. A Writer gets human-readable text records,
// which is what arenactl uses for --verbose and --debug on stderr. With
// no Writer, records go as JSON lines to a dated file under LogDir, which
// suits arenatop since the terminal belongs to the TUI.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the shared logger. It drops everything until Init enables it.
var L = slog.New(slog.DiscardHandler)

const (
	logSuffix  = ".log"
	dateLayout = "2006-01-02"

	// Files older than this are removed when a new file is opened.
	retention = 30 * 24 * time.Hour
)

// Options selects the sink and level.
type Options struct {
	Enabled bool       // false installs the discarding handler
	Level   slog.Level // minimum level; zero value is Info
	Writer  io.Writer  // text sink; takes precedence over LogDir
	LogDir  string     // JSON file directory; default ~/.scriptarena/logs
	Prefix  string     // file name prefix, e.g. "arenatop-"
}

// Init replaces L according to opts. Call it once from main before the
// first record is written.
func Init(opts Options) error {
	if !opts.Enabled {
		L = slog.New(slog.DiscardHandler)
		return nil
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.Writer != nil {
		L = slog.New(slog.NewTextHandler(opts.Writer, handlerOpts))
		return nil
	}

	f, err := openLogFile(opts.LogDir, opts.Prefix, time.Now())
	if err != nil {
		return err
	}
	L = slog.New(slog.NewJSONHandler(f, handlerOpts))
	return nil
}

// openLogFile prunes stale files and opens today's file for appending.
func openLogFile(dir, prefix string, now time.Time) (*os.File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".scriptarena", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	pruneLogs(dir, prefix, now.Add(-retention))

	name := filepath.Join(dir, prefix+now.Format(dateLayout)+logSuffix)
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// pruneLogs removes <prefix><date>.log files dated before cutoff. Errors
// are ignored; a leftover file is harmless.
func pruneLogs(dir, prefix string, cutoff time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		date, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok {
			continue
		}
		date, ok = strings.CutSuffix(date, logSuffix)
		if !ok {
			continue
		}
		day, err := time.Parse(dateLayout, date)
		if err != nil || !day.Before(cutoff) {
			continue
		}
		os.Remove(filepath.Join(dir, e.Name()))
	}
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
