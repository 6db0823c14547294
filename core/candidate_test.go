package core_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

var day = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func seg(from, to, carrier string, depHour, arrHour int) core.Segment {
	return core.Segment{
		Origin:           from,
		Destination:      to,
		MarketingCarrier: carrier,
		OperatingCarrier: carrier,
		Departure:        day.Add(time.Duration(depHour) * time.Hour),
		Arrival:          day.Add(time.Duration(arrHour) * time.Hour),
	}
}

func ow(amount float64) core.Construction {
	return core.Construction{Kind: core.OneWay, Components: []core.FareComponent{{Amount: amount}}}
}

// --------------------------------------------------------------------------
// 1. Derived schedule attributes.
// --------------------------------------------------------------------------

func TestCandidate_Schedule(t *testing.T) {
	c := &core.Candidate{Segments: []core.Segment{
		seg("JFK", "ORD", "AA", 8, 10),
		seg("ORD", "LHR", "BA", 12, 20),
	}}

	assert.Equal(t, "JFK", c.Origin())
	assert.Equal(t, "LHR", c.Destination())
	assert.Equal(t, 12*time.Hour, c.Elapsed())
	assert.Equal(t, 720, c.ElapsedMinutes())
	assert.Equal(t, 1, c.Stops())
	assert.False(t, c.Nonstop())
	assert.False(t, c.Online())
	assert.Equal(t, "", c.OnlineCarrier())
	assert.Equal(t, []string{"AA", "BA"}, c.Carriers())
	assert.Equal(t, "AA-BA", c.Signature())
}

func TestCandidate_SurfaceSectors(t *testing.T) {
	surface := seg("LGA", "JFK", "", 6, 7)
	surface.Kind = core.SegmentSurface
	c := &core.Candidate{Segments: []core.Segment{
		surface,
		seg("JFK", "LHR", "AA", 8, 15),
	}}

	assert.Equal(t, 0, c.Stops(), "surface sectors are not stops")
	assert.True(t, c.Nonstop())
	assert.Equal(t, "AA", c.OnlineCarrier())
	assert.Equal(t, []string{"AA"}, c.Carriers())
	assert.Equal(t, "AA", c.Signature())
	assert.Equal(t, "LGA", c.Origin())
}

func TestCandidate_Empty(t *testing.T) {
	c := &core.Candidate{}
	assert.Equal(t, "", c.Origin())
	assert.True(t, c.Departure().IsZero())
	assert.Equal(t, 0, c.Stops())
	assert.False(t, c.Online())
}

func TestCandidate_Cheapest(t *testing.T) {
	c := &core.Candidate{Constructions: []core.Construction{
		ow(300),
		ow(250),
		{Kind: core.RoundTrip, Components: []core.FareComponent{{Amount: 100}, {Amount: 80}}},
	}}

	assert.Equal(t, 250.0, c.Cheapest(core.OneWay))
	assert.Equal(t, 180.0, c.Cheapest(core.RoundTrip))
	assert.True(t, math.IsInf(c.Cheapest(core.OpenJaw), 1))
}

// --------------------------------------------------------------------------
// 2. Enumerations.
// --------------------------------------------------------------------------

func TestParseFareKind(t *testing.T) {
	for in, want := range map[string]core.FareKind{
		"OW": core.OneWay, "roundtrip": core.RoundTrip, " oj ": core.OpenJaw, "circle-trip": core.CircleTrip,
	} {
		got, err := core.ParseFareKind(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := core.ParseFareKind("XX")
	assert.ErrorIs(t, err, core.ErrUnknownFareKind)

	for _, k := range core.FareKinds {
		back, err := core.ParseFareKind(k.String())
		assert.NoError(t, err)
		assert.Equal(t, k, back)
	}
}

func TestParseCombinationType(t *testing.T) {
	got, err := core.ParseCombinationType("")
	assert.NoError(t, err)
	assert.Equal(t, core.CombinationEndOnEnd, got)

	got, err = core.ParseCombinationType("ojl")
	assert.NoError(t, err)
	assert.Equal(t, core.CombinationOpenJawLast, got)

	_, err = core.ParseCombinationType("ZZ")
	assert.ErrorIs(t, err, core.ErrUnknownCombination)
}

func TestParseSegmentKind(t *testing.T) {
	got, err := core.ParseSegmentKind("ARUNK")
	assert.NoError(t, err)
	assert.Equal(t, core.SegmentSurface, got)
	assert.Equal(t, "surface", got.String())

	_, err = core.ParseSegmentKind("rail")
	assert.ErrorIs(t, err, core.ErrUnknownSegmentKind)
}

func TestQueue(t *testing.T) {
	codes := make([]string, len(core.Queues))
	for i, q := range core.Queues {
		codes[i] = q.Code()
	}
	assert.Equal(t, []string{"01", "02", "03", "04", "05", "11", "12", "13", "14", "15"}, codes)

	assert.True(t, core.MPRemaining.MustPrice())
	assert.False(t, core.MPRemaining.LowFare())
	assert.True(t, core.LFSOnline.LowFare())
	assert.True(t, core.LFSOnlineByCarrier.Online())
	assert.False(t, core.MPRemaining.Online())
	assert.True(t, core.MPOutNonstopInterline.Interline())
	assert.False(t, core.QueueNone.MustPrice())
	assert.Equal(t, "??", core.Queue(99).Code())
	assert.Equal(t, "Queue(99)", core.Queue(99).String())
}
