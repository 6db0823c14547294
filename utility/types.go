// Package utility scores itineraries and reorders equally priced search
// results by descending utility.
//
// Per-leg utility:
//
//	U = Σ harmonics(2πf, 4πf, 6πf)         f = departure minute / 1440
//	  + Stops[min(stops, 2)] × elapsed minutes
//	  + Fare × ln(legAmount / 100)
//
// legAmount is the leg's priced total plus ComplexInterline when the leg is
// not online, or plus SimpleInterline on both legs when each leg is online
// but the carriers differ. The aggregate is the sum over legs; it has no
// unit and only orders items.
//
// Reranker drains a Source in batches of items priced within Epsilon of the
// batch's first item and releases each batch sorted by descending aggregate
// utility, ties broken by combination id.
//
// Errors (sentinel):
//
//	– ErrBadEpsilon if Epsilon < 0 (panics in WithEpsilon).
//	– ErrBadBeta    if a beta vector does not hold BetaLen values.
package utility

import (
	"errors"
	"fmt"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// Sentinel errors.
var (
	// ErrBadEpsilon indicates a negative batching epsilon.
	ErrBadEpsilon = errors.New("utility: epsilon must be non-negative")

	// ErrBadBeta indicates a beta vector of the wrong length.
	ErrBadBeta = errors.New("utility: beta vector has wrong length")
)

// DefaultEpsilon is the price tolerance of one batch.
const DefaultEpsilon = 0.01

// BetaLen is the length of a beta vector: six harmonics, three stop
// buckets, the fare coefficient, two interline penalties and mu.
const BetaLen = 13

// Coefficients parameterize the utility of one leg.
type Coefficients struct {
	// TimeOfDay holds sin/cos pairs for 2πf, 4πf and 6πf.
	TimeOfDay [6]float64 `mapstructure:"time_of_day" yaml:"time_of_day"`
	// Stops is indexed by min(stops, 2) and multiplies elapsed minutes.
	Stops            [3]float64 `mapstructure:"stops" yaml:"stops"`
	Fare             float64    `mapstructure:"fare" yaml:"fare"`
	ComplexInterline float64    `mapstructure:"complex_interline" yaml:"complex_interline"`
	SimpleInterline  float64    `mapstructure:"simple_interline" yaml:"simple_interline"`
	// Mu is the nest scale of incremental-value selection.
	Mu float64 `mapstructure:"mu" yaml:"mu"`
}

// FromBeta unpacks a beta vector laid out as TimeOfDay[0..5], Stops[6..8],
// Fare[9], ComplexInterline[10], SimpleInterline[11], Mu[12].
func FromBeta(beta []float64) (Coefficients, error) {
	var c Coefficients
	if len(beta) != BetaLen {
		return c, fmt.Errorf("%w: got %d, want %d", ErrBadBeta, len(beta), BetaLen)
	}
	copy(c.TimeOfDay[:], beta[0:6])
	copy(c.Stops[:], beta[6:9])
	c.Fare = beta[9]
	c.ComplexInterline = beta[10]
	c.SimpleInterline = beta[11]
	c.Mu = beta[12]

	return c, nil
}

// DefaultCoefficients returns a neutral-to-plausible parameter set: morning
// and early-evening departures score higher, stops and longer trips lower,
// higher fares lower.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		TimeOfDay:        [6]float64{-0.10, -0.35, 0.05, 0.10, -0.02, 0.03},
		Stops:            [3]float64{-0.002, -0.004, -0.006},
		Fare:             -1.2,
		ComplexInterline: 50,
		SimpleInterline:  20,
		Mu:               0.8,
	}
}

// Model holds the coefficients of both legs.
type Model struct {
	Outbound Coefficients `mapstructure:"outbound" yaml:"outbound"`
	Inbound  Coefficients `mapstructure:"inbound" yaml:"inbound"`
}

// DefaultModel uses DefaultCoefficients on both legs.
func DefaultModel() Model {
	return Model{Outbound: DefaultCoefficients(), Inbound: DefaultCoefficients()}
}

// For returns the coefficients of leg.
func (m Model) For(leg core.Leg) Coefficients {
	if leg == core.Inbound {
		return m.Inbound
	}

	return m.Outbound
}

// Options configures a Reranker.
type Options struct {
	Epsilon float64
}

// Option is a functional option for NewReranker.
type Option func(*Options)

// WithEpsilon sets the batch price tolerance. Panics on a negative eps.
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if eps < 0 {
			panic(ErrBadEpsilon.Error())
		}
		o.Epsilon = eps
	}
}

// DefaultOptions returns DefaultEpsilon batching.
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon}
}
