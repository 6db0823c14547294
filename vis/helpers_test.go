package vis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/vis"
)

var (
	outDay    = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	inDay     = time.Date(2026, time.June, 5, 0, 0, 0, 0, time.UTC)
	ticketing = time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
)

// flight builds a one-way priced candidate leaving at hour, one two-hour
// segment per carrier, from JFK to LHR (outbound) or back (inbound) via ORD.
func flight(id int, leg core.Leg, hour int, amount float64, carriers ...string) *core.Candidate {
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
	c.Constructions = []core.Construction{{
		Kind: core.OneWay,
		Components: []core.FareComponent{{
			Origin: from, Destination: to, Carrier: carriers[0], FareClass: "Y", Amount: amount,
		}},
	}}

	return c
}

// bare returns a config with every bucket, top-up and additional option
// off and one low-fare itinerary.
func bare() vis.Config {
	cfg := vis.DefaultConfig()
	cfg.OutboundOW = vis.LegSelection{}
	cfg.OutboundRT = vis.LegSelection{}
	cfg.InboundRT = vis.LegSelection{}
	cfg.NoOfLFSItineraries = 1
	cfg.NoOfAdditionalOutboundsOW = 0
	cfg.NoOfAdditionalOutboundsRT = 0
	cfg.NoOfAdditionalInboundsRT = 0
	cfg.IncrementalValue = false
	cfg.Dominance = false
	cfg.Grouping = false

	return cfg
}

func request(out, in []*core.Candidate) vis.Request {
	return vis.Request{
		Request:       esv.Request{ID: "JFK-LHR", Outbound: out, Inbound: in},
		TicketingDate: ticketing,
	}
}

func run(t *testing.T, cfg vis.Config, out, in []*core.Candidate, opts ...vis.Option) *vis.Result {
	t.Helper()
	s, err := vis.New(cfg, opts...)
	require.NoError(t, err)
	res, err := s.Select(context.Background(), request(out, in))
	require.NoError(t, err)

	return res
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

func ids(items []*core.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID.String()
	}

	return out
}
