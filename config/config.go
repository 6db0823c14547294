// Package config loads engine, diversity, utility, interline and
// value-based selection settings through viper.
//
// Every key has a default, so an empty configuration is usable. Keys can be
// overridden from a YAML file or from ESV_-prefixed environment variables,
// with dots replaced by underscores (ESV_ENGINE_MUST_PRICE=false).
//
// Viper folds keys to lower case; carrier codes in the interline section are
// upper-cased again after decoding.
//
// Validation wraps the sentinel errors of the utility, esv and diversity
// packages, so callers match them with errors.Is.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diversity"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/interline"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/vis"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "ESV"

// Config is the complete configuration of one engine.
type Config struct {
	Engine    esv.Config       `mapstructure:"engine" yaml:"engine"`
	Diversity diversity.Config `mapstructure:"diversity" yaml:"diversity"`
	Utility   Utility          `mapstructure:"utility" yaml:"utility"`
	Interline Interline        `mapstructure:"interline" yaml:"interline"`
	Vis       vis.Config       `mapstructure:"vis" yaml:"vis"`
}

// Utility holds the coefficients of both legs. A non-empty Beta replaces
// both legs' coefficients.
type Utility struct {
	Outbound utility.Coefficients `mapstructure:"outbound" yaml:"outbound"`
	Inbound  utility.Coefficients `mapstructure:"inbound" yaml:"inbound"`
	Beta     []float64            `mapstructure:"beta" yaml:"beta,omitempty"`
}

// Interline holds carrier restrictions.
//
// Restricted is a flat token list in which "*" closes a group; the first
// carrier of each group may only be combined with the rest of its group.
type Interline struct {
	OnlineOnly []string            `mapstructure:"online_only" yaml:"online_only"`
	Restricted []string            `mapstructure:"restricted" yaml:"restricted"`
	Agreements map[string][]string `mapstructure:"agreements" yaml:"agreements"`
}

// Default returns the configuration used when no key is set.
func Default() Config {
	m := utility.DefaultModel()

	return Config{
		Engine:    esv.DefaultConfig(),
		Diversity: diversity.DefaultConfig(),
		Utility:   Utility{Outbound: m.Outbound, Inbound: m.Inbound},
		Vis:       vis.DefaultConfig(),
	}
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	d := Default()

	e := d.Engine
	v.SetDefault("engine.must_price", e.MustPrice)
	v.SetDefault("engine.min_connection", e.MinConnection)
	v.SetDefault("engine.dominance", e.Dominance)
	v.SetDefault("engine.rerank", e.Rerank)
	v.SetDefault("engine.epsilon", e.Epsilon)
	v.SetDefault("engine.grouping", e.Grouping)
	v.SetDefault("engine.max_groups", e.MaxGroups)
	v.SetDefault("engine.max_families_in_group", e.MaxFamiliesInGroup)

	q := d.Diversity
	v.SetDefault("diversity.requested_solutions", q.RequestedSolutions)
	v.SetDefault("diversity.low_fare_required", q.LowFareRequired)
	v.SetDefault("diversity.must_price_online", q.MustPriceOnline)
	v.SetDefault("diversity.must_price_interline", q.MustPriceInterline)
	v.SetDefault("diversity.must_price_nonstop_online", q.MustPriceNonstopOnline)
	v.SetDefault("diversity.must_price_nonstop_interline", q.MustPriceNonstopInterline)
	v.SetDefault("diversity.must_price_out_nonstop_online", q.MustPriceOutNonstopOnline)
	v.SetDefault("diversity.must_price_out_nonstop_interline", q.MustPriceOutNonstopInterline)
	v.SetDefault("diversity.must_price_single_stop_online", q.MustPriceSingleStopOnline)
	v.SetDefault("diversity.percent_factor", q.PercentFactor)
	v.SetDefault("diversity.flight_reuse_limit", q.FlightReuseLimit)
	v.SetDefault("diversity.upper_bound_nonstop", q.UpperBoundNonstop)
	v.SetDefault("diversity.upper_bound_not_nonstop", q.UpperBoundNotNonstop)
	v.SetDefault("diversity.upper_bound_lfs", q.UpperBoundLFS)
	v.SetDefault("diversity.esv_percent", q.ESVPercent)
	v.SetDefault("diversity.min_online_per_carrier", q.MinOnlinePerCarrier)
	v.SetDefault("diversity.online_percent", q.OnlinePercent)
	v.SetDefault("diversity.low_max_per_option", q.LowMaxPerOption)
	v.SetDefault("diversity.high_max_per_option", q.HighMaxPerOption)
	v.SetDefault("diversity.avs_carriers", append([]string{}, q.AVSCarriers...))

	for leg, c := range map[string]utility.Coefficients{"outbound": d.Utility.Outbound, "inbound": d.Utility.Inbound} {
		p := "utility." + leg + "."
		v.SetDefault(p+"time_of_day", c.TimeOfDay[:])
		v.SetDefault(p+"stops", c.Stops[:])
		v.SetDefault(p+"fare", c.Fare)
		v.SetDefault(p+"complex_interline", c.ComplexInterline)
		v.SetDefault(p+"simple_interline", c.SimpleInterline)
		v.SetDefault(p+"mu", c.Mu)
	}
	v.SetDefault("utility.beta", []float64{})

	v.SetDefault("interline.online_only", []string{})
	v.SetDefault("interline.restricted", []string{})
	v.SetDefault("interline.agreements", map[string][]string{})

	s := d.Vis
	setLegDefaults(v, "vis.outbound_ow.", s.OutboundOW)
	setLegDefaults(v, "vis.outbound_rt.", s.OutboundRT)
	setLegDefaults(v, "vis.inbound_rt.", s.InboundRT)
	v.SetDefault("vis.outbounds_ow", s.NoOfOutboundsOW)
	v.SetDefault("vis.outbounds_rt", s.NoOfOutboundsRT)
	v.SetDefault("vis.inbounds_rt", s.NoOfInboundsRT)
	v.SetDefault("vis.lfs_itineraries", s.NoOfLFSItineraries)
	v.SetDefault("vis.additional_outbounds_ow", s.NoOfAdditionalOutboundsOW)
	v.SetDefault("vis.additional_outbounds_rt", s.NoOfAdditionalOutboundsRT)
	v.SetDefault("vis.additional_inbounds_rt", s.NoOfAdditionalInboundsRT)
	v.SetDefault("vis.requested_solutions", s.RequestedSolutions)
	v.SetDefault("vis.incremental_value", s.IncrementalValue)
	v.SetDefault("vis.min_connection", s.MinConnection)
	v.SetDefault("vis.dominance", s.Dominance)
	v.SetDefault("vis.grouping", s.Grouping)
	v.SetDefault("vis.max_groups", s.MaxGroups)
	v.SetDefault("vis.max_families_in_group", s.MaxFamiliesInGroup)
	v.SetDefault("vis.betas", []map[string]interface{}{})
}

func setLegDefaults(v *viper.Viper, p string, l vis.LegSelection) {
	bins := make([]map[string]interface{}, len(l.TimeOfDayBins))
	for i, b := range l.TimeOfDayBins {
		bins[i] = map[string]interface{}{"begin": b.Begin, "end": b.End}
	}
	v.SetDefault(p+"carrier_priority", l.CarrierPriority)
	v.SetDefault(p+"carriers", l.NoOfCarriers)
	v.SetDefault(p+"options_per_carrier", l.NoOfOptionsPerCarrier)
	v.SetDefault(p+"time_of_day_priority", l.TimeOfDayPriority)
	v.SetDefault(p+"time_of_day_bins", bins)
	v.SetDefault(p+"options_per_time_bin", l.NoOfOptionsPerTimeBin)
	v.SetDefault(p+"elapsed_time_priority", l.ElapsedTimePriority)
	v.SetDefault(p+"elapsed_time_options", l.NoOfElapsedTimeOptions)
	v.SetDefault(p+"utility_value_priority", l.UtilityValuePriority)
	v.SetDefault(p+"utility_value_options", l.NoOfUtilityValueOptions)
	v.SetDefault(p+"nonstop_priority", l.NonStopPriority)
	v.SetDefault(p+"nonstop_options", l.NoOfNonStopOptions)
	v.SetDefault(p+"nonstop_fare_multiplier", l.NonStopFareMultiplier)
	v.SetDefault(p+"lowest_fare_priority", l.LowestFarePriority)
	v.SetDefault(p+"lfs_options", l.NoOfLFSOptions)
	v.SetDefault(p+"simple_interline_priority", l.SimpleInterlinePriority)
	v.SetDefault(p+"simple_interline_options", l.NoOfSimpleInterlineOptions)
}

// Load registers defaults and environment overrides on v, decodes it and
// validates the result. Reading a config file is left to the caller.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	c.Interline = c.Interline.normalized()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if len(c.Utility.Beta) > 0 {
		if _, err := utility.FromBeta(c.Utility.Beta); err != nil {
			return fmt.Errorf("config: utility: %w", err)
		}
	}
	if err := c.ESV().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.VIS().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Model returns the utility model, built from Beta when it is set.
func (c Config) Model() utility.Model {
	if len(c.Utility.Beta) > 0 {
		if co, err := utility.FromBeta(c.Utility.Beta); err == nil {
			return utility.Model{Outbound: co, Inbound: co}
		}
	}

	return utility.Model{Outbound: c.Utility.Outbound, Inbound: c.Utility.Inbound}
}

// ESV returns the engine configuration with the diversity and utility
// sections folded in.
func (c Config) ESV() esv.Config {
	e := c.Engine
	e.Diversity = c.Diversity
	e.Utility = c.Model()

	return e
}

// VIS returns the value-based selection configuration with the utility
// section as the fallback for markets without a beta entry.
func (c Config) VIS() vis.Config {
	s := c.Vis
	s.Utility = c.Model()

	return s
}

// Rules builds the interline collaborator.
func (c Config) Rules() *interline.Rules {
	opts := []interline.Option{
		interline.WithOnlineOnly(c.Interline.OnlineOnly...),
		interline.WithRestrictedList(c.Interline.Restricted),
	}
	if len(c.Interline.Agreements) > 0 {
		opts = append(opts, interline.WithTicketingAgreements(c.Interline.Agreements))
	}

	return interline.New(opts...)
}

// YAML renders the configuration as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// normalized upper-cases every carrier code.
func (in Interline) normalized() Interline {
	upper := func(s []string) []string {
		out := make([]string, len(s))
		for i, v := range s {
			out[i] = strings.ToUpper(strings.TrimSpace(v))
		}
		return out
	}
	out := Interline{OnlineOnly: upper(in.OnlineOnly), Restricted: upper(in.Restricted)}
	if len(in.Agreements) > 0 {
		out.Agreements = make(map[string][]string, len(in.Agreements))
		for k, v := range in.Agreements {
			out.Agreements[strings.ToUpper(k)] = upper(v)
		}
	}

	return out
}
