package esv_test

import (
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
)

var (
	outDay = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	inDay  = time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)
)

// flight builds a candidate leaving at hour, one two-hour segment per
// carrier, from JFK to LHR (outbound) or back (inbound) via ORD.
func flight(id int, leg core.Leg, hour int, carriers ...string) *core.Candidate {
	from, to, day := "JFK", "LHR", outDay
	if leg == core.Inbound {
		from, to, day = "LHR", "JFK", inDay
	}
	points := []string{from}
	for i := 1; i < len(carriers); i++ {
		points = append(points, "ORD")
	}
	points = append(points, to)

	c := &core.Candidate{ID: id, Leg: leg, GoverningCarrier: carriers[0]}
	at := day.Add(time.Duration(hour) * time.Hour)
	for i, cx := range carriers {
		c.Segments = append(c.Segments, core.Segment{
			Origin: points[i], Destination: points[i+1], MarketingCarrier: cx,
			Departure: at, Arrival: at.Add(2 * time.Hour),
		})
		at = at.Add(3 * time.Hour)
	}

	return c
}

// oneWay adds a one-way construction of a single Y component.
func oneWay(c *core.Candidate, amount float64) *core.Candidate {
	c.Constructions = append(c.Constructions, core.Construction{
		Kind: core.OneWay,
		Components: []core.FareComponent{{
			Origin: c.Origin(), Destination: c.Destination(),
			Carrier: c.GoverningCarrier, FareClass: "Y", Amount: amount,
		}},
	})

	return c
}

// item materializes a one-leg or two-leg item from priced candidates.
func item(out, in *core.Candidate) *core.Item {
	a := &core.Arena{}
	o := a.Wrap(out, out.Constructions[0], false)
	if in == nil {
		return core.NewItem(o, nil)
	}

	return core.NewItem(o, a.Wrap(in, in.Constructions[0], false))
}

// lowFareOnly returns a config without must-price passes, dominance,
// reranking or grouping.
func lowFareOnly(requested int) esv.Config {
	cfg := esv.DefaultConfig()
	cfg.MustPrice = false
	cfg.Dominance = false
	cfg.Rerank = false
	cfg.Grouping = false
	cfg.Diversity.RequestedSolutions = requested
	cfg.Diversity.LowFareRequired = 2

	return cfg
}

func totals(items []*core.Item) []float64 {
	out := make([]float64, len(items))
	for i, it := range items {
		out[i] = it.Total
	}

	return out
}

func sources(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.SelectionSource
	}

	return out
}
