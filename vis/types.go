// Package vis selects itineraries by value (VIS): instead of running the
// must-price and low-fare passes it scores every flight with a utility model
// chosen for the market, fills a small set of selection buckets per leg and
// tops the set up by incremental value.
//
// One Select call runs, in order:
//
//	1. Beta lookup:   market key (UTC offset, mileage band, advance purchase)
//	   picks the utility coefficients of each leg.
//	2. Dominance:     dominated flights are dropped.
//	3. Low fare set:  the NoOfLFSItineraries cheapest itineraries.
//	4. Outbounds:     the buckets of the outbound leg, in priority order,
//	   then the incremental-value top-up and the additional low-fare
//	   outbounds.
//	5. Inbounds:      for a round trip, the same on the inbound leg for every
//	   selected outbound, with the low-fare and simple-interline buckets.
//
// Buckets (a count of zero disables one):
//
//	– CR  carrier:           cheapest options of the cheapest carriers.
//	– TB  time of day:       cheapest options per departure time bin.
//	– ET  elapsed time:      shortest trips.
//	– UV  utility value:     highest leg utility.
//	– NS  nonstop:           nonstops priced within a multiple of the
//	  cheapest itinerary.
//	– LFS low fare:          cheapest inbounds (inbound leg only).
//	– SI  simple interline:  nonstop inbounds of another carrier than the
//	  nonstop outbound (inbound leg only).
//
// Errors (sentinel):
//
//	– ErrNoOutbound    if a request has no outbound candidate.
//	– ErrBadCount      if a count is negative.
//	– ErrBadTimeBin    if a bin is not within 0000..2359 or ends before it
//	  begins.
//	– ErrBadMultiplier if a nonstop fare multiplier is negative.
//	– ErrBadBeta       if a beta entry has an unknown direction or advance
//	  purchase flag; a vector of the wrong length wraps utility.ErrBadBeta.
//
// Grouping and connection-time settings reuse the esv sentinels.
package vis

import (
	"errors"
	"fmt"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// Sentinel errors.
var (
	// ErrNoOutbound indicates a request without outbound candidates.
	ErrNoOutbound = errors.New("vis: request has no outbound candidates")

	// ErrBadCount indicates a negative option count.
	ErrBadCount = errors.New("vis: counts must be non-negative")

	// ErrBadTimeBin indicates a time bin outside the day or inverted.
	ErrBadTimeBin = errors.New("vis: time bin must satisfy 0000 <= begin <= end <= 2359")

	// ErrBadMultiplier indicates a negative nonstop fare multiplier.
	ErrBadMultiplier = errors.New("vis: nonstop fare multiplier must be non-negative")

	// ErrBadBeta indicates a beta entry key with an unknown flag.
	ErrBadBeta = errors.New("vis: beta direction must be O or I and advance purchase C or F")
)

// Selection sources appended to Item.SelectionSource, one per bucket that
// marked the item.
const (
	SourceCarrier         = "B-CR"
	SourceTimeBin         = "B-TB"
	SourceElapsed         = "B-ET"
	SourceUtility         = "B-UV"
	SourceNonstop         = "B-NS"
	SourceLowFare         = "B-LFS"
	SourceSimpleInterline = "B-SI"
	SourceAdditionalLFS   = "O-LFS"
)

// AdditionalPriority is the priority of items added after the buckets.
const AdditionalPriority = utility.SelectionPriority

// TimeBin is an inclusive range of departure times written as hhmm.
type TimeBin struct {
	Begin int `mapstructure:"begin" yaml:"begin"`
	End   int `mapstructure:"end" yaml:"end"`
}

// Contains reports whether hhmm lies within the bin.
func (b TimeBin) Contains(hhmm int) bool { return hhmm >= b.Begin && hhmm <= b.End }

func (b TimeBin) validate() error {
	valid := func(t int) bool { return t >= 0 && t <= 2359 && t%100 < 60 }
	if !valid(b.Begin) || !valid(b.End) || b.End < b.Begin {
		return fmt.Errorf("%w: %04d-%04d", ErrBadTimeBin, b.Begin, b.End)
	}

	return nil
}

// LegSelection holds the bucket settings of one leg. Lower priorities run
// first; a zero count disables a bucket. The low-fare and simple-interline
// buckets are used on the inbound leg only, the carrier bucket on the
// outbound leg only.
type LegSelection struct {
	CarrierPriority       int `mapstructure:"carrier_priority" yaml:"carrier_priority"`
	NoOfCarriers          int `mapstructure:"carriers" yaml:"carriers"`
	NoOfOptionsPerCarrier int `mapstructure:"options_per_carrier" yaml:"options_per_carrier"`

	TimeOfDayPriority     int       `mapstructure:"time_of_day_priority" yaml:"time_of_day_priority"`
	TimeOfDayBins         []TimeBin `mapstructure:"time_of_day_bins" yaml:"time_of_day_bins"`
	NoOfOptionsPerTimeBin int       `mapstructure:"options_per_time_bin" yaml:"options_per_time_bin"`

	ElapsedTimePriority    int `mapstructure:"elapsed_time_priority" yaml:"elapsed_time_priority"`
	NoOfElapsedTimeOptions int `mapstructure:"elapsed_time_options" yaml:"elapsed_time_options"`

	UtilityValuePriority    int `mapstructure:"utility_value_priority" yaml:"utility_value_priority"`
	NoOfUtilityValueOptions int `mapstructure:"utility_value_options" yaml:"utility_value_options"`

	NonStopPriority       int     `mapstructure:"nonstop_priority" yaml:"nonstop_priority"`
	NoOfNonStopOptions    int     `mapstructure:"nonstop_options" yaml:"nonstop_options"`
	NonStopFareMultiplier float64 `mapstructure:"nonstop_fare_multiplier" yaml:"nonstop_fare_multiplier"`

	LowestFarePriority int `mapstructure:"lowest_fare_priority" yaml:"lowest_fare_priority"`
	NoOfLFSOptions     int `mapstructure:"lfs_options" yaml:"lfs_options"`

	SimpleInterlinePriority    int `mapstructure:"simple_interline_priority" yaml:"simple_interline_priority"`
	NoOfSimpleInterlineOptions int `mapstructure:"simple_interline_options" yaml:"simple_interline_options"`
}

// DefaultLegSelection returns four six-hour bins and one or two options per
// bucket.
func DefaultLegSelection() LegSelection {
	return LegSelection{
		CarrierPriority:            1,
		NoOfCarriers:               3,
		NoOfOptionsPerCarrier:      1,
		TimeOfDayPriority:          2,
		TimeOfDayBins:              []TimeBin{{0, 559}, {600, 1159}, {1200, 1759}, {1800, 2359}},
		NoOfOptionsPerTimeBin:      1,
		ElapsedTimePriority:        3,
		NoOfElapsedTimeOptions:     1,
		UtilityValuePriority:       4,
		NoOfUtilityValueOptions:    1,
		NonStopPriority:            5,
		NoOfNonStopOptions:         2,
		NonStopFareMultiplier:      1.5,
		LowestFarePriority:         1,
		NoOfLFSOptions:             1,
		SimpleInterlinePriority:    6,
		NoOfSimpleInterlineOptions: 1,
	}
}

func (l LegSelection) validate(name string) error {
	counts := []int{
		l.NoOfCarriers, l.NoOfOptionsPerCarrier, l.NoOfOptionsPerTimeBin,
		l.NoOfElapsedTimeOptions, l.NoOfUtilityValueOptions, l.NoOfNonStopOptions,
		l.NoOfLFSOptions, l.NoOfSimpleInterlineOptions,
	}
	for _, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: %s: %d", ErrBadCount, name, n)
		}
	}
	if l.NonStopFareMultiplier < 0 {
		return fmt.Errorf("%w: %s: %g", ErrBadMultiplier, name, l.NonStopFareMultiplier)
	}
	for _, b := range l.TimeOfDayBins {
		if err := b.validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// Config holds the settings of one selector.
type Config struct {
	OutboundOW LegSelection `mapstructure:"outbound_ow" yaml:"outbound_ow"`
	OutboundRT LegSelection `mapstructure:"outbound_rt" yaml:"outbound_rt"`
	InboundRT  LegSelection `mapstructure:"inbound_rt" yaml:"inbound_rt"`

	NoOfOutboundsOW int `mapstructure:"outbounds_ow" yaml:"outbounds_ow"`
	NoOfOutboundsRT int `mapstructure:"outbounds_rt" yaml:"outbounds_rt"`
	NoOfInboundsRT  int `mapstructure:"inbounds_rt" yaml:"inbounds_rt"`

	NoOfLFSItineraries        int `mapstructure:"lfs_itineraries" yaml:"lfs_itineraries"`
	NoOfAdditionalOutboundsOW int `mapstructure:"additional_outbounds_ow" yaml:"additional_outbounds_ow"`
	NoOfAdditionalOutboundsRT int `mapstructure:"additional_outbounds_rt" yaml:"additional_outbounds_rt"`
	NoOfAdditionalInboundsRT  int `mapstructure:"additional_inbounds_rt" yaml:"additional_inbounds_rt"`

	// RequestedSolutions sizes the inbound sets when fewer outbounds than
	// asked for were found.
	RequestedSolutions int  `mapstructure:"requested_solutions" yaml:"requested_solutions"`
	IncrementalValue   bool `mapstructure:"incremental_value" yaml:"incremental_value"`

	MinConnection      time.Duration `mapstructure:"min_connection" yaml:"min_connection"`
	Dominance          bool          `mapstructure:"dominance" yaml:"dominance"`
	Grouping           bool          `mapstructure:"grouping" yaml:"grouping"`
	MaxGroups          int           `mapstructure:"max_groups" yaml:"max_groups"`
	MaxFamiliesInGroup int           `mapstructure:"max_families_in_group" yaml:"max_families_in_group"`

	// Betas is the coefficient table keyed by market; Utility is used for a
	// leg without a usable entry.
	Betas   []BetaEntry   `mapstructure:"betas" yaml:"betas"`
	Utility utility.Model `mapstructure:"-" yaml:"-"`
}

// DefaultConfig returns the default buckets on every leg with dominance,
// grouping and the incremental-value top-up on.
func DefaultConfig() Config {
	return Config{
		OutboundOW:                DefaultLegSelection(),
		OutboundRT:                DefaultLegSelection(),
		InboundRT:                 DefaultLegSelection(),
		NoOfOutboundsOW:           10,
		NoOfOutboundsRT:           5,
		NoOfInboundsRT:            3,
		NoOfLFSItineraries:        3,
		NoOfAdditionalOutboundsOW: 2,
		NoOfAdditionalOutboundsRT: 1,
		NoOfAdditionalInboundsRT:  1,
		RequestedSolutions:        15,
		IncrementalValue:          true,
		MinConnection:             lattice.DefaultMinConnection,
		Dominance:                 true,
		Grouping:                  true,
		MaxGroups:                 esv.Unlimited,
		MaxFamiliesInGroup:        esv.DefaultMaxFamiliesInGroup,
		Utility:                   utility.DefaultModel(),
	}
}

// Validate checks every count, bin and beta entry.
func (c Config) Validate() error {
	legs := []struct {
		name string
		sel  LegSelection
	}{{"outbound_ow", c.OutboundOW}, {"outbound_rt", c.OutboundRT}, {"inbound_rt", c.InboundRT}}
	for _, l := range legs {
		if err := l.sel.validate(l.name); err != nil {
			return err
		}
	}
	counts := []int{
		c.NoOfOutboundsOW, c.NoOfOutboundsRT, c.NoOfInboundsRT, c.NoOfLFSItineraries,
		c.NoOfAdditionalOutboundsOW, c.NoOfAdditionalOutboundsRT, c.NoOfAdditionalInboundsRT,
		c.RequestedSolutions,
	}
	for _, n := range counts {
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrBadCount, n)
		}
	}
	for i, b := range c.Betas {
		if err := b.validate(); err != nil {
			return fmt.Errorf("vis: beta %d: %w", i, err)
		}
	}

	switch {
	case c.MinConnection < 0:
		return fmt.Errorf("%w: %s", esv.ErrBadMinConnection, c.MinConnection)
	case c.MaxGroups < esv.Unlimited:
		return fmt.Errorf("%w: %d", esv.ErrBadMaxGroups, c.MaxGroups)
	case c.MaxFamiliesInGroup < 1:
		return fmt.Errorf("%w: %d", esv.ErrBadFamilies, c.MaxFamiliesInGroup)
	}

	return nil
}

// Options holds the collaborators of a Selector.
type Options struct {
	Logger    esv.Logger
	Sink      diag.Sink
	Interline lattice.InterlineChecker
	Mileage   lattice.MileageLookup
}

// Option is a functional option for New.
type Option func(*Options)

// WithLogger routes selection logging to l.
func WithLogger(l esv.Logger) Option {
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

// WithInterline sets the interline eligibility collaborator.
func WithInterline(c lattice.InterlineChecker) Option {
	return func(o *Options) {
		o.Interline = c
	}
}

// WithMileage sets the distance lookup used for the mileage band and for
// open-jaw legality.
func WithMileage(m lattice.MileageLookup) Option {
	return func(o *Options) {
		o.Mileage = m
	}
}

// Request is one selection request. A zero TicketingDate means now.
type Request struct {
	esv.Request
	TicketingDate time.Time
}

// Result is the outcome of Select.
type Result struct {
	esv.Result

	// Market is the key the coefficients were looked up with.
	Market Market
	// Outbounds holds the outbound selection in selection order.
	Outbounds []*core.Item
	// LowFare holds the cheapest itineraries found.
	LowFare []*core.Item
}
