package arena

import (
	"fmt"
	"log/slog"
	"math/bits"
	"slices"
	"strconv"
	"strings"
)

// RegionKind selects where the data region comes from.
type RegionKind uint8

const (
	// RegionMapped maps anonymous memory from the OS (heap where unsupported).
	RegionMapped RegionKind = iota
	// RegionHeap allocates the region on the Go heap.
	RegionHeap
	// RegionDelegate takes the region as one block from the host's previous allocator.
	RegionDelegate
)

// String returns the flag spelling of k.
func (k RegionKind) String() string {
	switch k {
	case RegionMapped:
		return "mapped"
	case RegionHeap:
		return "heap"
	case RegionDelegate:
		return "delegate"
	default:
		return "RegionKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseRegionKind is the inverse of RegionKind.String.
func ParseRegionKind(s string) (RegionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mapped", "mmap":
		return RegionMapped, nil
	case "heap":
		return RegionHeap, nil
	case "delegate":
		return RegionDelegate, nil
	}
	return 0, fmt.Errorf("arena: unknown region kind %q", s)
}

// Config describes an arena's layout.
type Config struct {
	// Name for this configuration. When non-empty, New registers a
	// DiagnosticsFunc under this name with the host.
	Name string

	// Base is the block size of bank 0. Bank i uses Base<<i.
	Base int

	// Counts holds the number of blocks per bank, smallest bank first.
	Counts []int

	// Region selects the backing memory source.
	Region RegionKind

	// Logger receives construction/teardown records and, when
	// ARENA_LOG_ALLOC is set, hot-path records. Nil discards.
	Logger *slog.Logger
}

// Predefined configurations.
var (
	// ConfigSmallScripts: tiny footprint for short-lived scripts.
	// 16..128 B, 64 KB total.
	ConfigSmallScripts = Config{
		Base:   16,
		Counts: []int{1024, 512, 256, 128},
	}

	// ConfigBalanced: general purpose.
	// 16..512 B, 1.5 MB total.
	ConfigBalanced = Config{
		Base:   16,
		Counts: []int{16384, 8192, 4096, 2048, 1024, 512},
	}

	// ConfigStringHeavy: more room in the 32..128 B range where short
	// interned strings land.
	ConfigStringHeavy = Config{
		Base:   16,
		Counts: []int{8192, 16384, 16384, 8192, 1024},
	}

	// DefaultConfig is used when New is given a nil config.
	DefaultConfig = ConfigBalanced
)

// Presets maps the predefined configurations by flag name.
var Presets = map[string]Config{
	"small":    ConfigSmallScripts,
	"balanced": ConfigBalanced,
	"strings":  ConfigStringHeavy,
}

// PresetNames returns the keys of Presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for n := range Presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Preset returns a copy of a predefined configuration.
func Preset(name string) (Config, error) {
	cfg, ok := Presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Config{}, fmt.Errorf("arena: unknown preset %q (want one of %s)",
			name, strings.Join(PresetNames(), ", "))
	}
	cfg.Counts = slices.Clone(cfg.Counts)
	return cfg, nil
}

// Validate checks the layout without allocating anything.
func (c *Config) Validate() error {
	_, err := c.dataSize()
	return err
}

// DataSize returns the size of the data region the config describes.
func (c *Config) DataSize() (int, error) {
	return c.dataSize()
}

func (c *Config) dataSize() (int, error) {
	if len(c.Counts) == 0 {
		return 0, ErrNoTiers
	}
	if c.Base < linkSize {
		return 0, fmt.Errorf("%w: base %d < %d", ErrBaseTooSmall, c.Base, linkSize)
	}

	total := 0
	size := c.Base
	for i, n := range c.Counts {
		if n <= 0 {
			return 0, fmt.Errorf("%w: tier %d has count %d", ErrEmptyTier, i, n)
		}
		hi, lo := bits.Mul64(uint64(size), uint64(n))
		if hi != 0 || lo > uint64(maxInt-total) {
			return 0, fmt.Errorf("%w: tier %d", ErrTooLarge, i)
		}
		total += int(lo)
		if i < len(c.Counts)-1 {
			if size > maxInt/2 {
				return 0, fmt.Errorf("%w: tier %d block size", ErrTooLarge, i+1)
			}
			size *= 2
		}
	}
	return total, nil
}

const maxInt = int(^uint(0) >> 1)

// ParseCounts parses a comma-separated list of per-tier block counts
// such as "512,256,128".
func ParseCounts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrNoTiers
	}
	fields := strings.Split(s, ",")
	counts := make([]int, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("arena: tier %d: %w", i, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%w: tier %d has count %d", ErrEmptyTier, i, n)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
