package arena

import "errors"

var (
	// ErrNoHost indicates that New was called without a host.
	ErrNoHost = errors.New("arena: nil host")

	// ErrNoTiers indicates a configuration without any banks.
	ErrNoTiers = errors.New("arena: at least one tier is required")

	// ErrEmptyTier indicates a tier with a zero or negative block count.
	ErrEmptyTier = errors.New("arena: tier block count must be positive")

	// ErrBaseTooSmall indicates a base block size that cannot hold a free-list link.
	ErrBaseTooSmall = errors.New("arena: base size smaller than a free-list link")

	// ErrTooLarge indicates that the data region size does not fit in an int.
	ErrTooLarge = errors.New("arena: data region too large")

	// ErrRegion indicates that the backing region could not be obtained.
	ErrRegion = errors.New("arena: cannot obtain backing region")

	// ErrInUse indicates a Close while blocks are still handed out.
	ErrInUse = errors.New("arena: blocks still in use")

	// ErrClosed indicates a second Close.
	ErrClosed = errors.New("arena: already closed")
)
