package arena

import (
	"fmt"
	"log/slog"
)

// New builds an arena and installs it as h's allocator. The allocator h had
// before becomes the delegate for every request the arena cannot serve.
//
// Parameters:
//   - h: the host to install into
//   - cfg: bank layout (use nil for DefaultConfig)
//
// On error nothing is installed and h keeps its previous allocator.
func New(h Host, cfg *Config) (*Arena, error) {
	if h == nil {
		return nil, ErrNoHost
	}
	if cfg == nil {
		cfg = &DefaultConfig
	}
	total, err := cfg.dataSize()
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	fn, ud := h.Allocator()
	a := &Arena{
		host:     h,
		delegate: Delegate{Func: fn, UD: ud},
		base:     cfg.Base,
		max:      cfg.Base << (len(cfg.Counts) - 1),
		banks:    make([]bank, len(cfg.Counts)),
		name:     cfg.Name,
		log:      log,
	}
	a.region, a.freeRegion, err = obtainRegion(cfg.Region, a.delegate, total)
	if err != nil {
		return nil, err
	}

	size := cfg.Base
	for i, n := range cfg.Counts {
		a.banks[i] = bank{size: size, count: n}
		size *= 2
	}
	a.format()

	h.SetAllocator(Hook, a)
	if a.name != "" {
		h.SetGlobal(a.name, DiagnosticsFunc(a.Diagnostics))
	}

	log.Info("arena installed",
		"base", a.base,
		"banks", len(a.banks),
		"max", a.max,
		"bytes", total,
		"region", cfg.Region.String(),
		"diagnostics", a.name,
	)
	return a, nil
}

// Close uninstalls the arena: the delegate becomes the host's allocator
// again, the diagnostics global is removed and the region is released.
// It fails with ErrInUse while any block is still live.
func (a *Arena) Close() error {
	if a.closed {
		return ErrClosed
	}
	if live := a.Diagnostics().Live(); live > 0 {
		return fmt.Errorf("%w: %d live blocks", ErrInUse, live)
	}

	a.host.SetAllocator(a.delegate.Func, a.delegate.UD)
	if a.name != "" {
		a.host.SetGlobal(a.name, nil)
	}

	// With no banks left, any stray call through an old hook reference
	// falls through to the delegate.
	a.banks = nil
	a.max = 0
	a.region = nil
	a.closed = true

	var err error
	if a.freeRegion != nil {
		err = a.freeRegion()
		a.freeRegion = nil
	}
	a.log.Info("arena closed", "calls", a.stats.Calls)
	return err
}
