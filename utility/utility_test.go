package utility_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

var day = time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC)

// flight builds a candidate departing at hour:00 with one segment per
// carrier; every segment lasts the given minutes.
func flight(id int, leg core.Leg, hour, minutes int, carriers ...string) *core.Candidate {
	c := &core.Candidate{ID: id, Leg: leg, GoverningCarrier: carriers[0]}
	at := day.Add(time.Duration(hour) * time.Hour)
	for _, cx := range carriers {
		c.Segments = append(c.Segments, core.Segment{
			Origin: "ORD", Destination: "MIA", MarketingCarrier: cx,
			Departure: at, Arrival: at.Add(time.Duration(minutes) * time.Minute),
		})
		at = at.Add(time.Duration(minutes) * time.Minute)
	}

	return c
}

func item(out, in *core.Candidate, outAmt, inAmt float64) *core.Item {
	a := &core.Arena{}
	ow := func(amt float64) core.Construction {
		return core.Construction{Kind: core.OneWay, Components: []core.FareComponent{{Amount: amt}}}
	}
	var inOpt *core.WrappedOption
	if in != nil {
		inOpt = a.Wrap(in, ow(inAmt), false)
	}

	return core.NewItem(a.Wrap(out, ow(outAmt), false), inOpt)
}

// fareOnly weighs nothing but the fare term.
func fareOnly() utility.Coefficients {
	return utility.Coefficients{Fare: 1, ComplexInterline: 50, SimpleInterline: 20}
}

func TestLegUtility_SimpleInterlineOnDifferentOnlineCarriers(t *testing.T) {
	c := fareOnly()
	it := item(flight(1, core.Outbound, 8, 120, "AA"), flight(2, core.Inbound, 8, 120, "DL"), 80, 80)

	assert.InDelta(t, math.Log((80+20)/100.0), utility.LegUtility(it, core.Inbound, c), 1e-12)
	assert.InDelta(t, math.Log((80+20)/100.0), utility.LegUtility(it, core.Outbound, c), 1e-12)

	mixed := item(flight(1, core.Outbound, 8, 120, "AA"), flight(3, core.Inbound, 8, 60, "AA", "DL"), 80, 80)
	assert.InDelta(t, math.Log((80+50)/100.0), utility.LegUtility(mixed, core.Inbound, c), 1e-12, "complex penalty on the interline leg")
	assert.InDelta(t, math.Log(80/100.0), utility.LegUtility(mixed, core.Outbound, c), 1e-12, "online leg of a mixed trip pays nothing")

	same := item(flight(1, core.Outbound, 8, 120, "AA"), flight(4, core.Inbound, 8, 120, "AA"), 80, 80)
	assert.InDelta(t, math.Log(0.8), utility.LegUtility(same, core.Inbound, c), 1e-12)
}

func TestLegUtility_TimeOfDayAndStops(t *testing.T) {
	c := utility.Coefficients{TimeOfDay: [6]float64{1, 0, 0, 0, 0, 0}, Stops: [3]float64{-0.01, -0.02, -0.03}}

	// 06:00 is a quarter of the day: sin(π/2) = 1; 90 minutes nonstop.
	it := item(flight(1, core.Outbound, 6, 90, "AA"), nil, 100, 0)
	assert.InDelta(t, 1-0.01*90, utility.LegUtility(it, core.Outbound, c), 1e-9)

	// three flown segments use the two-plus bucket.
	it = item(flight(2, core.Outbound, 0, 60, "AA", "AA", "AA"), nil, 100, 0)
	assert.InDelta(t, -0.03*180, utility.LegUtility(it, core.Outbound, c), 1e-9)
}

func TestScore(t *testing.T) {
	m := utility.Model{Outbound: fareOnly(), Inbound: fareOnly()}
	it := item(flight(1, core.Outbound, 8, 120, "AA"), flight(2, core.Inbound, 8, 120, "AA"), 100, 200)

	got := utility.Score(it, m)
	assert.InDelta(t, math.Log(2), got, 1e-12)
	assert.InDelta(t, 0, it.Utility[core.Outbound], 1e-12)
	assert.InDelta(t, math.Log(2), it.Utility[core.Inbound], 1e-12)
	assert.Equal(t, got, it.AggregateUtility)
}

func TestFromBeta(t *testing.T) {
	beta := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	c, err := utility.FromBeta(beta)
	require.NoError(t, err)
	assert.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, c.TimeOfDay)
	assert.Equal(t, [3]float64{7, 8, 9}, c.Stops)
	assert.Equal(t, 10.0, c.Fare)
	assert.Equal(t, 11.0, c.ComplexInterline)
	assert.Equal(t, 12.0, c.SimpleInterline)
	assert.Equal(t, 13.0, c.Mu)

	_, err = utility.FromBeta(beta[:12])
	assert.ErrorIs(t, err, utility.ErrBadBeta)
}

func TestModelFor(t *testing.T) {
	m := utility.Model{Outbound: utility.Coefficients{Fare: 1}, Inbound: utility.Coefficients{Fare: 2}}
	assert.Equal(t, 1.0, m.For(core.Outbound).Fare)
	assert.Equal(t, 2.0, m.For(core.Inbound).Fare)
}
