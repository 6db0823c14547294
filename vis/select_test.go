package vis_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/mileage"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/vis"
)

// roundTrip returns two nonstop outbounds and three inbounds, the cheapest
// of them a connection.
func roundTrip() (out, in []*core.Candidate) {
	out = []*core.Candidate{
		flight(1, core.Outbound, 8, 100, "AA"),
		flight(2, core.Outbound, 9, 120, "DL"),
	}
	in = []*core.Candidate{
		flight(11, core.Inbound, 8, 100, "AA"),
		flight(12, core.Inbound, 10, 90, "UA"),
		flight(13, core.Inbound, 12, 50, "AA", "AA"),
	}

	return out, in
}

func roundTripConfig() vis.Config {
	cfg := bare()
	cfg.OutboundRT.CarrierPriority = 1
	cfg.OutboundRT.NoOfCarriers = 2
	cfg.OutboundRT.NoOfOptionsPerCarrier = 1
	cfg.NoOfOutboundsRT = 2
	cfg.NoOfInboundsRT = 2
	cfg.RequestedSolutions = 4

	return cfg
}

// ------------------------------------------------------------------------
// 1. Round trips.
// ------------------------------------------------------------------------

func TestSelect_RoundTrip(t *testing.T) {
	out, in := roundTrip()
	cfg := roundTripConfig()
	cfg.InboundRT.LowestFarePriority = 1
	cfg.InboundRT.NoOfLFSOptions = 1
	cfg.InboundRT.SimpleInterlinePriority = 2
	cfg.InboundRT.NoOfSimpleInterlineOptions = 1

	res := run(t, cfg, out, in)
	assert.Equal(t, []string{"1/13", "2/13"}, ids(res.Outbounds))
	assert.Equal(t, []string{vis.SourceCarrier, vis.SourceCarrier}, sources(res.Outbounds))

	assert.Equal(t, []float64{150, 170, 190, 210}, totals(res.Solutions))
	assert.Equal(t, []string{"1/13", "2/13", "1/12", "2/12"}, ids(res.Solutions))
	assert.Equal(t, []string{vis.SourceLowFare, vis.SourceLowFare, vis.SourceSimpleInterline, vis.SourceSimpleInterline},
		sources(res.Solutions))

	orders := make([]int, len(res.Solutions))
	for i, s := range res.Solutions {
		orders[i] = s.SelectionOrder
	}
	assert.Equal(t, []int{0, 2, 1, 3}, orders, "numbered per outbound, in selection order")
}

func TestSelect_SimpleInterlineNeedsNonstopOutbound(t *testing.T) {
	_, in := roundTrip()
	out := []*core.Candidate{flight(1, core.Outbound, 8, 100, "AA", "AA")}
	cfg := roundTripConfig()
	cfg.NoOfOutboundsRT = 1
	cfg.InboundRT.LowestFarePriority = 1
	cfg.InboundRT.NoOfLFSOptions = 1
	cfg.InboundRT.SimpleInterlinePriority = 2
	cfg.InboundRT.NoOfSimpleInterlineOptions = 1

	res := run(t, cfg, out, in)
	assert.Equal(t, []string{"1/13"}, ids(res.Solutions))
	assert.Equal(t, []string{vis.SourceLowFare}, sources(res.Solutions))
}

func TestSelect_InboundsSpreadOverFewOutbounds(t *testing.T) {
	out, in := roundTrip()
	cfg := roundTripConfig()
	cfg.OutboundRT.NoOfCarriers = 1
	cfg.NoOfInboundsRT = 1
	cfg.RequestedSolutions = 3
	cfg.InboundRT.LowestFarePriority = 1
	cfg.InboundRT.NoOfLFSOptions = 3

	res := run(t, cfg, out, in)
	assert.Equal(t, []string{"1/13"}, ids(res.Outbounds))
	assert.Equal(t, []string{"1/13", "1/12", "1/11"}, ids(res.Solutions), "one outbound carries all three")
}

func TestSelect_AdditionalLowFareInbounds(t *testing.T) {
	out, in := roundTrip()
	cfg := roundTripConfig()
	cfg.NoOfInboundsRT = 1
	cfg.RequestedSolutions = 2
	cfg.NoOfLFSItineraries = 2
	cfg.NoOfAdditionalInboundsRT = 1
	cfg.InboundRT.TimeOfDayPriority = 1
	cfg.InboundRT.TimeOfDayBins = []vis.TimeBin{{Begin: 0, End: 1159}}
	cfg.InboundRT.NoOfOptionsPerTimeBin = 1

	res := run(t, cfg, out, in)
	assert.Equal(t, []float64{150, 170}, totals(res.LowFare))
	assert.Equal(t, []string{"1/13", "2/13", "1/12", "2/12"}, ids(res.Solutions))
	assert.Equal(t, []string{vis.SourceAdditionalLFS, vis.SourceAdditionalLFS, vis.SourceTimeBin, vis.SourceTimeBin},
		sources(res.Solutions), "each outbound gets the low fare itinerary it flies")
}

func TestSelect_Grouping(t *testing.T) {
	out := []*core.Candidate{
		flight(1, core.Outbound, 8, 100, "AA"),
		flight(2, core.Outbound, 9, 150, "DL"),
		flight(3, core.Outbound, 10, 200, "AA"),
	}
	cfg := bare()
	cfg.Grouping = true
	cfg.OutboundOW.CarrierPriority = 1
	cfg.OutboundOW.NoOfCarriers = 2
	cfg.OutboundOW.NoOfOptionsPerCarrier = 2

	res := run(t, cfg, out, nil)
	require.Len(t, res.Solutions, 3)
	groups := []int{res.Solutions[0].CarrierGroup, res.Solutions[1].CarrierGroup, res.Solutions[2].CarrierGroup}
	assert.Equal(t, groups[0], groups[2], "same carrier, same group")
	assert.NotEqual(t, groups[0], groups[1])
	assert.True(t, res.Solutions[0].Primary)
}

// ------------------------------------------------------------------------
// 2. Market coefficients.
// ------------------------------------------------------------------------

func TestSelect_MarketBeta(t *testing.T) {
	beta := []float64{0.5, -0.2, 0.1, 0, 0, 0, -0.001, -0.002, -0.003, -1, 30, 10, 0.7}
	cfg := bare()
	cfg.NoOfOutboundsOW = 1
	cfg.IncrementalValue = true
	cfg.Betas = []vis.BetaEntry{{
		TimeDiff: 0, Mileage: 4000, Direction: vis.DirectionOutbound, AdvancePurchase: vis.AdvanceFar, Beta: beta,
	}}
	miles := mileage.NewTable().Set("JFK", "LHR", 3451)

	logger, hook := logtest.NewNullLogger()
	res := run(t, cfg, []*core.Candidate{flight(1, core.Outbound, 8, 100, "AA")}, nil,
		vis.WithMileage(miles), vis.WithLogger(logger))
	assert.Equal(t, vis.Market{TimeDiff: 0, Mileage: 4000, Miles: 3451, AdvancePurchase: vis.AdvanceFar}, res.Market)
	assert.Zero(t, warnings(hook), "a one-way needs no inbound beta")

	require.Len(t, res.Solutions, 1)
	co, err := utility.FromBeta(beta)
	require.NoError(t, err)
	sol := res.Solutions[0]
	assert.InDelta(t, utility.LegUtility(sol, core.Outbound, co), sol.Utility[core.Outbound], 1e-9)
}

func TestSelect_MissingBetaWarns(t *testing.T) {
	out, in := roundTrip()
	cfg := roundTripConfig()
	logger, hook := logtest.NewNullLogger()

	run(t, cfg, out, in, vis.WithLogger(logger))
	assert.Equal(t, 2, warnings(hook), "one per leg")
}

func warnings(hook *logtest.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}

	return n
}

// ------------------------------------------------------------------------
// 3. Inbound count.
// ------------------------------------------------------------------------

func TestInboundCount(t *testing.T) {
	tests := []struct {
		name                                string
		found, wanted, perOutbound, request int
		want                                int
	}{
		{"too few outbounds", 2, 5, 3, 15, 8},
		{"all outbounds found", 5, 5, 3, 15, 3},
		{"enough inbounds already", 2, 5, 10, 15, 10},
		{"nothing found", 0, 5, 3, 15, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, vis.InboundCount(tt.found, tt.wanted, tt.perOutbound, tt.request))
		})
	}
}

// ------------------------------------------------------------------------
// 4. Errors and empty results.
// ------------------------------------------------------------------------

func TestSelect_Errors(t *testing.T) {
	s, err := vis.New(bare())
	require.NoError(t, err)

	_, err = s.Select(context.Background(), request(nil, nil))
	assert.ErrorIs(t, err, vis.ErrNoOutbound)

	s, err = vis.New(roundTripConfig())
	require.NoError(t, err)
	out, in := roundTrip()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Select(ctx, request(out, in))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSelect_NoLowFareItineraries(t *testing.T) {
	cfg := bare()
	cfg.NoOfLFSItineraries = 0
	cfg.OutboundOW.CarrierPriority = 1
	cfg.OutboundOW.NoOfCarriers = 1
	cfg.OutboundOW.NoOfOptionsPerCarrier = 1

	res := run(t, cfg, []*core.Candidate{flight(1, core.Outbound, 8, 100, "AA")}, nil)
	assert.Empty(t, res.Solutions)
	assert.Empty(t, res.Outbounds)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*vis.Config)
		want   error
	}{
		{"negative count", func(c *vis.Config) { c.NoOfOutboundsOW = -1 }, vis.ErrBadCount},
		{"negative leg count", func(c *vis.Config) { c.InboundRT.NoOfLFSOptions = -1 }, vis.ErrBadCount},
		{"reversed bin", func(c *vis.Config) { c.OutboundRT.TimeOfDayBins = []vis.TimeBin{{Begin: 1200, End: 800}} }, vis.ErrBadTimeBin},
		{"bin past midnight", func(c *vis.Config) { c.OutboundOW.TimeOfDayBins = []vis.TimeBin{{Begin: 0, End: 2400}} }, vis.ErrBadTimeBin},
		{"negative multiplier", func(c *vis.Config) { c.OutboundOW.NonStopFareMultiplier = -1 }, vis.ErrBadMultiplier},
		{"beta direction", func(c *vis.Config) {
			c.Betas = []vis.BetaEntry{{Direction: "X", AdvancePurchase: vis.AdvanceFar, Beta: make([]float64, utility.BetaLen)}}
		}, vis.ErrBadBeta},
		{"beta length", func(c *vis.Config) {
			c.Betas = []vis.BetaEntry{{Direction: vis.DirectionInbound, AdvancePurchase: vis.AdvanceClose, Beta: []float64{1}}}
		}, utility.ErrBadBeta},
		{"min connection", func(c *vis.Config) { c.MinConnection = -1 }, esv.ErrBadMinConnection},
		{"families", func(c *vis.Config) { c.MaxFamiliesInGroup = 0 }, esv.ErrBadFamilies},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := vis.DefaultConfig()
			tt.mutate(&cfg)
			_, err := vis.New(cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.NoError(t, vis.DefaultConfig().Validate())
}
