// Package dominance defines configuration for the pareto-dominance filter.
//
// A flight is dominated when another flight of the same leg with the same
// carrier sequence, sharing its departure or arrival date, is strictly faster
// and the slower flight is not cheaper in any of the four fare-construction
// categories (one-way, round-trip, open-jaw, circle-trip).
//
// Options:
//
//	– RequestedOptions: number of options the caller asked for. The filter
//	  marks at most 2 × RequestedOptions flights per leg over its lifetime.
//	  Zero means no cap.
//	– Sink: diagnostic sink receiving one diag.Dominated record per mark.
//
// Errors (sentinel):
//
//	– ErrBadRequested if RequestedOptions < 0 (panics in WithRequestedOptions).
package dominance

import (
	"errors"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
)

// ErrBadRequested indicates a negative requested option count.
var ErrBadRequested = errors.New("dominance: requested options must be non-negative")

// capFactor multiplies RequestedOptions to obtain the per-leg cap.
const capFactor = 2

// Options configures a Filter.
type Options struct {
	RequestedOptions int
	Sink             diag.Sink
}

// Option is a functional option for New.
type Option func(*Options)

// WithRequestedOptions sets the requested option count the cap derives from.
// Panics on a negative value.
func WithRequestedOptions(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic(ErrBadRequested.Error())
		}
		o.RequestedOptions = n
	}
}

// WithSink routes one record per dominated flight to s.
func WithSink(s diag.Sink) Option {
	return func(o *Options) {
		o.Sink = s
	}
}

// DefaultOptions returns an uncapped filter configuration with no sink.
func DefaultOptions() Options {
	return Options{RequestedOptions: 0, Sink: diag.Nop}
}
