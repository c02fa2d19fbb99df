// Package workload drives a host state with synthetic script-like
// allocation traffic: short strings, closures and growing tables, with a
// steady stream of frees.
package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/joshuapare/scriptarena/internal/host"
)

// Mix weights the operations a runner picks from.
type Mix struct {
	Name string

	Strings  int // new string
	Closures int // new closure
	Tables   int // new table
	Resizes  int // grow or shrink a live table
	Frees    int // free a random live object

	MaxString  int // longest string, in bytes
	MaxTable   int // largest table, in slots
	MaxObjects int // live object cap; beyond it only frees run
}

// Predefined mixes.
var (
	// MixChurn: many short-lived strings and closures.
	MixChurn = Mix{
		Name: "churn", Strings: 5, Closures: 2, Tables: 1, Resizes: 1, Frees: 7,
		MaxString: 48, MaxTable: 8, MaxObjects: 512,
	}

	// MixStrings: string building, slightly longer strings.
	MixStrings = Mix{
		Name: "strings", Strings: 8, Closures: 0, Tables: 0, Resizes: 0, Frees: 6,
		MaxString: 120, MaxTable: 1, MaxObjects: 2048,
	}

	// MixTables: tables that grow and shrink.
	MixTables = Mix{
		Name: "tables", Strings: 1, Closures: 1, Tables: 3, Resizes: 6, Frees: 3,
		MaxString: 24, MaxTable: 64, MaxObjects: 256,
	}
)

// Mixes lists the predefined mixes by name.
var Mixes = map[string]Mix{
	MixChurn.Name:   MixChurn,
	MixStrings.Name: MixStrings,
	MixTables.Name:  MixTables,
}

// Lookup returns a predefined mix.
func Lookup(name string) (Mix, error) {
	m, ok := Mixes[strings.ToLower(name)]
	if !ok {
		return Mix{}, fmt.Errorf("workload: unknown mix %q", name)
	}
	return m, nil
}

func (m Mix) total() int {
	return m.Strings + m.Closures + m.Tables + m.Resizes + m.Frees
}

// Options configures a Runner.
type Options struct {
	Seed int64

	// Limit paces steps; zero runs unthrottled.
	Limit rate.Limit
	Burst int

	// Tracer records one span per Run. Nil uses the global provider.
	Tracer trace.Tracer
}

// Result accumulates what a runner has done.
type Result struct {
	Steps    int `json:"steps"`
	Strings  int `json:"strings"`
	Closures int `json:"closures"`
	Tables   int `json:"tables"`
	Resizes  int `json:"resizes"`
	Frees    int `json:"frees"`
	Failures int `json:"failures"`
	Live     int `json:"live"`
}

// Runner issues operations against one state.
type Runner struct {
	s       *host.State
	mix     Mix
	rng     *rand.Rand
	limiter *rate.Limiter
	tracer  trace.Tracer
	live    []*host.Object
	tables  []*host.Object
	res     Result
}

// NewRunner validates mix and returns a runner over s.
func NewRunner(s *host.State, mix Mix, opts Options) (*Runner, error) {
	if mix.total() <= 0 {
		return nil, fmt.Errorf("workload: mix %q has no operations", mix.Name)
	}
	if mix.MaxString <= 0 || mix.MaxTable <= 0 || mix.MaxObjects <= 0 {
		return nil, fmt.Errorf("workload: mix %q needs positive limits", mix.Name)
	}
	r := &Runner{
		s:      s,
		mix:    mix,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		tracer: opts.Tracer,
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("workload")
	}
	if opts.Limit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(opts.Limit, burst)
	}
	return r, nil
}

// Run performs n steps. Out-of-memory results are counted, not returned;
// the only errors are context cancellation and closed states.
func (r *Runner) Run(ctx context.Context, n int) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "workload.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("mix", r.mix.Name),
		attribute.Int("steps", n),
	)

	for i := 0; i < n; i++ {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				span.RecordError(err)
				return r.Result(), err
			}
		} else if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return r.Result(), err
		}
		if err := r.step(); err != nil {
			span.RecordError(err)
			return r.Result(), err
		}
	}

	span.SetAttributes(
		attribute.Int("live", len(r.live)),
		attribute.Int("failures", r.res.Failures),
	)
	return r.Result(), nil
}

// Result returns the totals so far.
func (r *Runner) Result() Result {
	res := r.res
	res.Live = len(r.live)
	return res
}

// Drain frees every object the runner created.
func (r *Runner) Drain() {
	for _, o := range r.live {
		r.s.Free(o)
		r.res.Frees++
	}
	r.live = r.live[:0]
	r.tables = r.tables[:0]
}

func (r *Runner) step() error {
	r.res.Steps++
	if len(r.live) >= r.mix.MaxObjects {
		r.free()
		return nil
	}

	pick := r.rng.Intn(r.mix.total())
	switch {
	case pick < r.mix.Strings:
		return r.track(r.s.NewString(r.randomString()))
	case pick < r.mix.Strings+r.mix.Closures:
		return r.track(r.s.NewClosure(r.rng.Intn(4)))
	case pick < r.mix.Strings+r.mix.Closures+r.mix.Tables:
		return r.track(r.s.NewTable(1 + r.rng.Intn(r.mix.MaxTable)))
	case pick < r.mix.Strings+r.mix.Closures+r.mix.Tables+r.mix.Resizes:
		return r.resize()
	default:
		r.free()
		return nil
	}
}

func (r *Runner) track(o *host.Object, err error) error {
	switch {
	case errors.Is(err, host.ErrOutOfMemory):
		r.res.Failures++
		return nil
	case err != nil:
		return err
	}
	r.live = append(r.live, o)
	switch o.Kind() {
	case host.KindString:
		r.res.Strings++
	case host.KindClosure:
		r.res.Closures++
	case host.KindTable:
		r.res.Tables++
		r.tables = append(r.tables, o)
	}
	return nil
}

func (r *Runner) resize() error {
	if len(r.tables) == 0 {
		return r.track(r.s.NewTable(1))
	}
	t := r.tables[r.rng.Intn(len(r.tables))]
	slots := t.Slots() * 2
	if slots > r.mix.MaxTable || r.rng.Intn(3) == 0 {
		slots = max(1, t.Slots()/2)
	}
	err := r.s.ResizeTable(t, slots)
	switch {
	case errors.Is(err, host.ErrOutOfMemory):
		r.res.Failures++
		return nil
	case err != nil:
		return err
	}
	r.res.Resizes++
	return nil
}

func (r *Runner) free() {
	if len(r.live) == 0 {
		return
	}
	i := r.rng.Intn(len(r.live))
	o := r.live[i]
	r.live[i] = r.live[len(r.live)-1]
	r.live = r.live[:len(r.live)-1]
	if o.Kind() == host.KindTable {
		for j, t := range r.tables {
			if t == o {
				r.tables[j] = r.tables[len(r.tables)-1]
				r.tables = r.tables[:len(r.tables)-1]
				break
			}
		}
	}
	r.s.Free(o)
	r.res.Frees++
}

const letters = "abcdefghijklmnopqrstuvwxyz0123456789_"

func (r *Runner) randomString() string {
	n := r.rng.Intn(r.mix.MaxString + 1)
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(letters[r.rng.Intn(len(letters))])
	}
	return b.String()
}
