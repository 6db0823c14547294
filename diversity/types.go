// Package diversity implements the per-pass quota and upper-bound checks the
// lattice search consults before it emits a combination.
//
// Budgets (all countdowns unless stated otherwise):
//
//	– must-price flight:      FlightReuseLimit per leg and flight.
//	– must-price online:      int((PercentFactor+0.1) × MustPriceOnline) per leg and carrier.
//	– must-price interline:   int((PercentFactor+0.1) × MustPriceInterline) per leg and carrier.
//	– low-fare flight:        LowMaxPerOption for AVS carriers, HighMaxPerOption otherwise.
//	– low-fare carrier:       int((ESVPercent/100+0.1) × RequestedSolutions) per leg and carrier.
//	– low-fare online:        an up-counter per outbound carrier, limited by
//	  MinOnlinePerCarrier until RecalcOnlineLimits redistributes the online
//	  share in proportion to each carrier's outbound flights.
//
// A check first verifies every budget it touches; only when all of them are
// positive does it consume one unit of each. A refused item costs nothing.
//
// Upper bounds are minFare × factor, with a factor per queue family:
// UpperBoundNonstop or UpperBoundNotNonstop for must-price queues (chosen by
// the item's stops), UpperBoundLFS for low-fare queues.
//
// Errors (sentinel), returned by Config.Validate:
//
//	– ErrNegativeQuota  if a count or limit is negative.
//	– ErrBadPercent     if a percentage lies outside [0, 100].
//	– ErrBadFactor      if an upper-bound factor or the percent factor is negative.
//	– ErrLowFareQuota   if LowFareRequired exceeds RequestedSolutions.
package diversity

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Config.Validate.
var (
	// ErrNegativeQuota indicates a negative solution count or reuse limit.
	ErrNegativeQuota = errors.New("diversity: quota must be non-negative")

	// ErrBadPercent indicates a percentage outside [0, 100].
	ErrBadPercent = errors.New("diversity: percentage must be within [0, 100]")

	// ErrBadFactor indicates a negative multiplier.
	ErrBadFactor = errors.New("diversity: factor must be non-negative")

	// ErrLowFareQuota indicates more low-fare solutions than requested in total.
	ErrLowFareQuota = errors.New("diversity: low-fare solutions exceed requested solutions")
)

// Config holds the numeric quotas of one request.
type Config struct {
	RequestedSolutions int `mapstructure:"requested_solutions" yaml:"requested_solutions"`
	LowFareRequired    int `mapstructure:"low_fare_required" yaml:"low_fare_required"`

	// Must-price pass targets.
	MustPriceOnline              int `mapstructure:"must_price_online" yaml:"must_price_online"`
	MustPriceInterline           int `mapstructure:"must_price_interline" yaml:"must_price_interline"`
	MustPriceNonstopOnline       int `mapstructure:"must_price_nonstop_online" yaml:"must_price_nonstop_online"`
	MustPriceNonstopInterline    int `mapstructure:"must_price_nonstop_interline" yaml:"must_price_nonstop_interline"`
	MustPriceOutNonstopOnline    int `mapstructure:"must_price_out_nonstop_online" yaml:"must_price_out_nonstop_online"`
	MustPriceOutNonstopInterline int `mapstructure:"must_price_out_nonstop_interline" yaml:"must_price_out_nonstop_interline"`
	MustPriceSingleStopOnline    int `mapstructure:"must_price_single_stop_online" yaml:"must_price_single_stop_online"`

	// PercentFactor is the allowed overage per carrier.
	PercentFactor    float64 `mapstructure:"percent_factor" yaml:"percent_factor"`
	FlightReuseLimit int     `mapstructure:"flight_reuse_limit" yaml:"flight_reuse_limit"`

	UpperBoundNonstop    float64 `mapstructure:"upper_bound_nonstop" yaml:"upper_bound_nonstop"`
	UpperBoundNotNonstop float64 `mapstructure:"upper_bound_not_nonstop" yaml:"upper_bound_not_nonstop"`
	UpperBoundLFS        float64 `mapstructure:"upper_bound_lfs" yaml:"upper_bound_lfs"`

	// Low-fare search quotas.
	ESVPercent          float64  `mapstructure:"esv_percent" yaml:"esv_percent"`
	MinOnlinePerCarrier int      `mapstructure:"min_online_per_carrier" yaml:"min_online_per_carrier"`
	OnlinePercent       float64  `mapstructure:"online_percent" yaml:"online_percent"`
	LowMaxPerOption     int      `mapstructure:"low_max_per_option" yaml:"low_max_per_option"`
	HighMaxPerOption    int      `mapstructure:"high_max_per_option" yaml:"high_max_per_option"`
	AVSCarriers         []string `mapstructure:"avs_carriers" yaml:"avs_carriers"`
}

// DefaultConfig returns the quotas used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		RequestedSolutions:           50,
		LowFareRequired:              20,
		MustPriceOnline:              10,
		MustPriceInterline:           5,
		MustPriceNonstopOnline:       5,
		MustPriceNonstopInterline:    3,
		MustPriceOutNonstopOnline:    5,
		MustPriceOutNonstopInterline: 3,
		MustPriceSingleStopOnline:    5,
		PercentFactor:                0.2,
		FlightReuseLimit:             3,
		UpperBoundNonstop:            3.0,
		UpperBoundNotNonstop:         2.0,
		UpperBoundLFS:                2.5,
		ESVPercent:                   20,
		MinOnlinePerCarrier:          5,
		OnlinePercent:                30,
		LowMaxPerOption:              2,
		HighMaxPerOption:             5,
	}
}

// Validate checks that every quota is usable.
func (c Config) Validate() error {
	counts := []struct {
		name string
		v    int
	}{
		{"requested_solutions", c.RequestedSolutions},
		{"low_fare_required", c.LowFareRequired},
		{"must_price_online", c.MustPriceOnline},
		{"must_price_interline", c.MustPriceInterline},
		{"must_price_nonstop_online", c.MustPriceNonstopOnline},
		{"must_price_nonstop_interline", c.MustPriceNonstopInterline},
		{"must_price_out_nonstop_online", c.MustPriceOutNonstopOnline},
		{"must_price_out_nonstop_interline", c.MustPriceOutNonstopInterline},
		{"must_price_single_stop_online", c.MustPriceSingleStopOnline},
		{"flight_reuse_limit", c.FlightReuseLimit},
		{"min_online_per_carrier", c.MinOnlinePerCarrier},
		{"low_max_per_option", c.LowMaxPerOption},
		{"high_max_per_option", c.HighMaxPerOption},
	}
	for _, q := range counts {
		if q.v < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeQuota, q.name, q.v)
		}
	}

	for name, p := range map[string]float64{"esv_percent": c.ESVPercent, "online_percent": c.OnlinePercent} {
		if p < 0 || p > 100 {
			return fmt.Errorf("%w: %s=%g", ErrBadPercent, name, p)
		}
	}

	for name, f := range map[string]float64{
		"percent_factor":          c.PercentFactor,
		"upper_bound_nonstop":     c.UpperBoundNonstop,
		"upper_bound_not_nonstop": c.UpperBoundNotNonstop,
		"upper_bound_lfs":         c.UpperBoundLFS,
	} {
		if f < 0 {
			return fmt.Errorf("%w: %s=%g", ErrBadFactor, name, f)
		}
	}

	if c.LowFareRequired > c.RequestedSolutions {
		return fmt.Errorf("%w: %d > %d", ErrLowFareQuota, c.LowFareRequired, c.RequestedSolutions)
	}

	return nil
}

// onlineMaximum is the share of requested solutions reserved for online
// low-fare results.
func (c Config) onlineMaximum() int {
	return int(float64(c.RequestedSolutions) * c.OnlinePercent / 100)
}

// carrierShare is the per-carrier must-price budget derived from n.
func (c Config) carrierShare(n int) int {
	return int((c.PercentFactor + 0.1) * float64(n))
}
