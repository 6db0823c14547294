// Package expand turns flight candidates into a price-ordered column of
// wrapped options, one per viable fare construction.
//
// Options:
//
//	– Leg:        leg the column is built for (default core.Outbound).
//	– Arena:      owner of the created options; a fresh arena is used when nil.
//	– AddPenalty: include each candidate's itinerary penalty in Total.
//	– Kinds:      fare kinds allowed in the column (default: all four).
//	– Filter:     optional candidate predicate applied before expansion.
//
// Dominated candidates and constructions without components are skipped.
package expand

import (
	"errors"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// ErrNoKinds indicates that WithKinds was called with no fare kind.
var ErrNoKinds = errors.New("expand: at least one fare kind must be allowed")

// Options configures Expand.
type Options struct {
	Leg        core.Leg
	Arena      *core.Arena
	AddPenalty bool
	Kinds      [core.NumFareKinds]bool
	Filter     func(*core.Candidate) bool
}

// Option is a functional option for Expand.
type Option func(*Options)

// ForLeg sets the leg of the produced column.
func ForLeg(leg core.Leg) Option {
	return func(o *Options) {
		o.Leg = leg
	}
}

// WithArena stores the created options in a.
func WithArena(a *core.Arena) Option {
	return func(o *Options) {
		o.Arena = a
	}
}

// WithPenalty includes (true) or excludes (false) itinerary penalties.
func WithPenalty(add bool) Option {
	return func(o *Options) {
		o.AddPenalty = add
	}
}

// WithKinds restricts the column to the given fare kinds. Panics when none
// are given.
func WithKinds(kinds ...core.FareKind) Option {
	return func(o *Options) {
		if len(kinds) == 0 {
			panic(ErrNoKinds.Error())
		}
		o.Kinds = [core.NumFareKinds]bool{}
		for _, k := range kinds {
			o.Kinds[k] = true
		}
	}
}

// WithCandidateFilter keeps only candidates for which keep returns true.
func WithCandidateFilter(keep func(*core.Candidate) bool) Option {
	return func(o *Options) {
		o.Filter = keep
	}
}

// DefaultOptions returns outbound, penalty-free options allowing every kind.
func DefaultOptions() Options {
	return Options{
		Leg:        core.Outbound,
		AddPenalty: false,
		Kinds:      [core.NumFareKinds]bool{true, true, true, true},
	}
}
