// Package lattice defines the collaborators, options and errors of the lazy
// best-first combination search (the ESV priority queue).
//
// A Search holds one column (outbound only) or two columns (outbound and
// inbound) of price-ordered wrapped options and emits cross-leg combinations
// in non-decreasing price order without materializing the cross product.
//
// Collaborators (all optional):
//
//	– InterlineChecker: interline ticketing eligibility of non-online legs.
//	  When nil every carrier mix is accepted.
//	– MileageLookup:    ground distances for open-jaw legality. When nil,
//	  every open-jaw combination that needs a distance is rejected.
//	– Diversifier:      per-queue quota and upper-bound checks.
//	– ItemFilter:       pass-level checks run before the diversifier.
//	– StopFunc:         decides which rejections end the search.
//	– diag.Sink:        one record per popped frontier entry.
//
// Options:
//
//	– Queue:         queue type reported to the diversifier and the sink.
//	– MinConnection: minimum time between outbound arrival and inbound
//	  departure (default DefaultMinConnection, must be ≥ 0).
//
// Errors (sentinel), returned by New:
//
//	– ErrNoColumns       if no column is given.
//	– ErrTooManyColumns  if more than two columns are given.
//	– ErrEmptyColumn     if a column holds no option.
//	– ErrNilOption       if a column holds a nil option.
//	– ErrUnsortedColumn  if a column is not sorted by ascending Total.
//
// Complexity:
//
//	– Time:  O(k · L · log F) for k pops, L ≤ 2 columns and F frontier entries.
//	– Space: O(F + E) for the frontier and the E emitted combination ids.
package lattice

import (
	"errors"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
)

// Sentinel errors returned by New.
var (
	// ErrNoColumns indicates that New was called without columns.
	ErrNoColumns = errors.New("lattice: at least one column is required")

	// ErrTooManyColumns indicates more columns than legs.
	ErrTooManyColumns = errors.New("lattice: at most two columns are supported")

	// ErrEmptyColumn indicates a column without options.
	ErrEmptyColumn = errors.New("lattice: column is empty")

	// ErrNilOption indicates a nil option inside a column.
	ErrNilOption = errors.New("lattice: column holds a nil option")

	// ErrUnsortedColumn indicates a column not ordered by ascending Total.
	ErrUnsortedColumn = errors.New("lattice: column is not sorted by total amount")

	// ErrBadConnectionTime indicates a negative minimum connection time.
	ErrBadConnectionTime = errors.New("lattice: minimum connection time must be non-negative")

	errNoMileage = errors.New("lattice: no mileage lookup configured")
)

// DefaultMinConnection is the default minimum time between the outbound
// arrival and the inbound departure.
const DefaultMinConnection = 30 * time.Minute

// InterlineChecker answers interline ticketing eligibility questions.
type InterlineChecker interface {
	ValidInterline(c *core.Candidate) bool
	ValidInterlinePair(out, in *core.Candidate) bool
}

// MileageLookup returns the ground distance between two points.
type MileageLookup interface {
	Mileage(origin, destination string, dir core.GlobalDirection, date time.Time) (int, error)
}

// Diversifier enforces reuse quotas and upper price bounds.
//
// CheckDiversityLimits consumes budget when it returns true.
// CheckUpperBoundLimits must not have side effects.
type Diversifier interface {
	CheckDiversityLimits(item *core.Item, q core.Queue) bool
	CheckUpperBoundLimits(item *core.Item, minFare float64, q core.Queue) bool
}

// ItemFilter is a pass-level check; it returns diag.Accepted to keep the item
// or the reason it is rejected.
type ItemFilter func(item *core.Item) diag.Reason

// StopFunc reports whether rejecting item for reason means no later pop can
// be accepted either.
type StopFunc func(item *core.Item, reason diag.Reason) bool

// Options configures a Search.
type Options struct {
	Queue         core.Queue
	MinConnection time.Duration
	Interline     InterlineChecker
	Mileage       MileageLookup
	Diversifier   Diversifier
	Filter        ItemFilter
	Stop          StopFunc
	Sink          diag.Sink
}

// Option is a functional option for New.
type Option func(*Options)

// WithQueue sets the queue type reported to collaborators.
func WithQueue(q core.Queue) Option {
	return func(o *Options) {
		o.Queue = q
	}
}

// WithMinConnection sets the minimum connection time. Panics on a negative d.
func WithMinConnection(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			panic(ErrBadConnectionTime.Error())
		}
		o.MinConnection = d
	}
}

// WithInterline sets the interline eligibility collaborator.
func WithInterline(c InterlineChecker) Option {
	return func(o *Options) {
		o.Interline = c
	}
}

// WithMileage sets the ground-distance collaborator.
func WithMileage(m MileageLookup) Option {
	return func(o *Options) {
		o.Mileage = m
	}
}

// WithDiversifier sets the diversifier consulted before emission.
func WithDiversifier(d Diversifier) Option {
	return func(o *Options) {
		o.Diversifier = d
	}
}

// WithFilter sets the pass-level item filter.
func WithFilter(f ItemFilter) Option {
	return func(o *Options) {
		o.Filter = f
	}
}

// WithStop sets the check that ends the search after a rejection.
func WithStop(f StopFunc) Option {
	return func(o *Options) {
		o.Stop = f
	}
}

// WithSink sets the diagnostic sink.
func WithSink(s diag.Sink) Option {
	return func(o *Options) {
		o.Sink = s
	}
}

// DefaultOptions returns options with no collaborators, QueueNone and the
// default minimum connection time.
func DefaultOptions() Options {
	return Options{
		Queue:         core.QueueNone,
		MinConnection: DefaultMinConnection,
		Sink:          diag.Nop,
	}
}

// Stats counts what a Search has done so far.
type Stats struct {
	Pushed   int
	Popped   int
	Emitted  int
	Rejected map[diag.Reason]int
	Stopped  bool
}
