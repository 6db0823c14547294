// Package esv runs the estimated-seat-value passes of one request and groups
// the picked solutions for display.
//
// Passes run in queue order. The must-price passes (01..05, 11, 12) run only
// when Config.MustPrice is set; the low-fare passes (13, 14, 15) always run.
// Every pass owns a fresh Diversifier and arena, an item budget derived from
// the number of solutions already picked, and a penalty flag that is cleared
// for the low-fare passes. A combination picked by an earlier pass is never
// picked again.
//
// Pass shapes:
//
//	– per carrier: one search per governing carrier (01, 02, 03, 04, 05, 13);
//	  the budget is recomputed before each carrier.
//	– merged:      one search per governing carrier, drained cheapest head
//	  first under one budget (11, 14).
//	– remaining:   one search over every candidate (12, 15).
//
// Options:
//
//	– Logger:    receives one line per pass and carrier (default: discard).
//	– Sink:      diagnostic records of every search (default: diag.Nop).
//	– Interline: interline eligibility and fare carrier restrictions. When
//	  nil every carrier mix is accepted.
//	– Mileage:   ground distances for open-jaw legality.
//
// Errors (sentinel):
//
//	– ErrNoOutbound        if a request has no outbound candidate.
//	– ErrBadEpsilon        if Config.Epsilon < 0.
//	– ErrBadMaxGroups      if Config.MaxGroups < -1.
//	– ErrBadFamilies       if Config.MaxFamiliesInGroup < 1.
//	– ErrBadMinConnection  if Config.MinConnection < 0.
package esv

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diversity"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// Sentinel errors.
var (
	// ErrNoOutbound indicates a request without outbound candidates.
	ErrNoOutbound = errors.New("esv: request has no outbound candidates")

	// ErrBadEpsilon indicates a negative rerank tolerance.
	ErrBadEpsilon = errors.New("esv: epsilon must be non-negative")

	// ErrBadMaxGroups indicates a group cap below -1.
	ErrBadMaxGroups = errors.New("esv: max groups must be -1 (unlimited) or non-negative")

	// ErrBadFamilies indicates a family cap below one.
	ErrBadFamilies = errors.New("esv: max families in group must be positive")

	// ErrBadMinConnection indicates a negative minimum connection time.
	ErrBadMinConnection = errors.New("esv: minimum connection time must be non-negative")
)

// Unlimited disables the carrier group cap.
const Unlimited = -1

// DefaultMaxFamiliesInGroup is the family count above which a connecting
// carrier group is split.
const DefaultMaxFamiliesInGroup = 15

// Logger is the logging surface the engine needs; *logrus.Logger and
// *logrus.Entry satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// InterlineRules is the interline collaborator of the engine. *interline.Rules
// implements it.
type InterlineRules interface {
	lattice.InterlineChecker

	// OnlineOnly reports whether carrier may only be sold online.
	OnlineOnly(carrier string) bool

	// FareCarriersAllowed applies carrier restrictions to the fare
	// components of an item.
	FareCarriersAllowed(it *core.Item) bool
}

// Config holds the engine settings of one request.
type Config struct {
	MustPrice          bool          `mapstructure:"must_price" yaml:"must_price"`
	MinConnection      time.Duration `mapstructure:"min_connection" yaml:"min_connection"`
	Dominance          bool          `mapstructure:"dominance" yaml:"dominance"`
	Rerank             bool          `mapstructure:"rerank" yaml:"rerank"`
	Epsilon            float64       `mapstructure:"epsilon" yaml:"epsilon"`
	Grouping           bool          `mapstructure:"grouping" yaml:"grouping"`
	MaxGroups          int           `mapstructure:"max_groups" yaml:"max_groups"`
	MaxFamiliesInGroup int           `mapstructure:"max_families_in_group" yaml:"max_families_in_group"`

	Diversity diversity.Config `mapstructure:"-" yaml:"-"`
	Utility   utility.Model    `mapstructure:"-" yaml:"-"`
}

// DefaultConfig runs every pass with dominance, reranking and grouping on.
func DefaultConfig() Config {
	return Config{
		MustPrice:          true,
		MinConnection:      lattice.DefaultMinConnection,
		Dominance:          true,
		Rerank:             true,
		Epsilon:            utility.DefaultEpsilon,
		Grouping:           true,
		MaxGroups:          Unlimited,
		MaxFamiliesInGroup: DefaultMaxFamiliesInGroup,
		Diversity:          diversity.DefaultConfig(),
		Utility:            utility.DefaultModel(),
	}
}

// Validate checks the engine settings and the diversity quotas.
func (c Config) Validate() error {
	switch {
	case c.Epsilon < 0:
		return fmt.Errorf("%w: %g", ErrBadEpsilon, c.Epsilon)
	case c.MaxGroups < Unlimited:
		return fmt.Errorf("%w: %d", ErrBadMaxGroups, c.MaxGroups)
	case c.MaxFamiliesInGroup < 1:
		return fmt.Errorf("%w: %d", ErrBadFamilies, c.MaxFamiliesInGroup)
	case c.MinConnection < 0:
		return fmt.Errorf("%w: %s", ErrBadMinConnection, c.MinConnection)
	}

	return c.Diversity.Validate()
}

// Options holds the collaborators of an Engine.
type Options struct {
	Logger    Logger
	Sink      diag.Sink
	Interline InterlineRules
	Mileage   lattice.MileageLookup
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogger routes pass logging to l.
func WithLogger(l Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithSink routes the diagnostic records of every search to s.
func WithSink(s diag.Sink) Option {
	return func(o *Options) {
		o.Sink = s
	}
}

// WithInterline sets the interline collaborator.
func WithInterline(r InterlineRules) Option {
	return func(o *Options) {
		o.Interline = r
	}
}

// WithMileage sets the ground-distance collaborator.
func WithMileage(m lattice.MileageLookup) Option {
	return func(o *Options) {
		o.Mileage = m
	}
}

// DefaultOptions returns options with a discarding logger and sink.
func DefaultOptions() Options {
	return Options{Logger: nopLogger{}, Sink: diag.Nop}
}

// Request is one search request.
//
// Requested overrides Config.Diversity.RequestedSolutions when positive.
type Request struct {
	ID        string
	Outbound  []*core.Candidate
	Inbound   []*core.Candidate
	Requested int
}

// RoundTrip reports whether the request has an inbound leg.
func (r Request) RoundTrip() bool { return len(r.Inbound) > 0 }

// PassSummary describes one search of a pass. Merged and remaining passes
// report one summary with an empty Carrier.
type PassSummary struct {
	Queue    core.Queue
	Carrier  string
	Limit    int
	Picked   int
	Popped   int
	Rejected map[diag.Reason]int
}

// Result is the outcome of Process.
type Result struct {
	RunID     uuid.UUID
	RequestID string
	Solutions []*core.Item
	Passes    []PassSummary
	Dominated [core.NumLegs]int
}

// Picked returns how many solutions pass q contributed.
func (r *Result) Picked(q core.Queue) int {
	n := 0
	for _, s := range r.Solutions {
		if s.Queue == q {
			n++
		}
	}

	return n
}
