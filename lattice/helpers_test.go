package lattice_test

import (
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

var (
	outDay = time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	inDay  = time.Date(2026, time.June, 5, 8, 0, 0, 0, time.UTC)
)

// cand builds a two-hour flight; each carrier adds one segment.
func cand(id int, leg core.Leg, dep time.Time, carriers ...string) *core.Candidate {
	if len(carriers) == 0 {
		carriers = []string{"AA"}
	}
	c := &core.Candidate{ID: id, Leg: leg, GoverningCarrier: carriers[0]}
	at := dep
	for _, cx := range carriers {
		c.Segments = append(c.Segments, core.Segment{
			Origin: "AAA", Destination: "BBB", MarketingCarrier: cx,
			Departure: at, Arrival: at.Add(2 * time.Hour),
		})
		at = at.Add(3 * time.Hour)
	}

	return c
}

func fc(origin, destination string, amount float64) core.FareComponent {
	return core.FareComponent{Origin: origin, Destination: destination, Amount: amount}
}

// wrap prices c with the given kind, tag and components.
func wrap(c *core.Candidate, kind core.FareKind, comb core.CombinationType, comps ...core.FareComponent) *core.WrappedOption {
	a := &core.Arena{}
	return a.Wrap(c, core.Construction{Kind: kind, Combination: comb, Components: comps}, false)
}

func column(leg core.Leg, opts ...*core.WrappedOption) core.Column {
	return core.Column{Leg: leg, Options: opts}
}

// owColumn builds a column of one-way single-component options, one
// candidate per price. Candidate ids are leg*100+i.
func owColumn(leg core.Leg, prices ...float64) core.Column {
	dep := outDay
	if leg == core.Inbound {
		dep = inDay
	}
	col := core.Column{Leg: leg}
	for i, p := range prices {
		c := cand(int(leg)*100+i, leg, dep.Add(time.Duration(i)*time.Minute))
		col.Options = append(col.Options, wrap(c, core.OneWay, core.CombinationEndOnEnd, fc("AAA", "BBB", p)))
	}

	return col
}

// stubInterline records calls and answers with fixed verdicts.
type stubInterline struct {
	single, pair   bool
	singles, pairs int
}

func (s *stubInterline) ValidInterline(*core.Candidate) bool {
	s.singles++
	return s.single
}

func (s *stubInterline) ValidInterlinePair(_, _ *core.Candidate) bool {
	s.pairs++
	return s.pair
}

// stubDiversifier allows budget items and bounds prices at factor × minFare.
type stubDiversifier struct {
	budget   int
	factor   float64
	minFares []float64
}

func (d *stubDiversifier) CheckDiversityLimits(*core.Item, core.Queue) bool {
	if d.budget <= 0 {
		return false
	}
	d.budget--

	return true
}

func (d *stubDiversifier) CheckUpperBoundLimits(it *core.Item, minFare float64, _ core.Queue) bool {
	d.minFares = append(d.minFares, minFare)
	return it.Total <= minFare*d.factor
}

// refusingDiversifier refuses the outbound candidate ids in refuse and bounds
// prices at factor × minFare.
type refusingDiversifier struct {
	refuse map[int]bool
	factor float64
}

func (d *refusingDiversifier) CheckDiversityLimits(it *core.Item, _ core.Queue) bool {
	return !d.refuse[it.ID.Out]
}

func (d *refusingDiversifier) CheckUpperBoundLimits(it *core.Item, minFare float64, _ core.Queue) bool {
	return it.Total <= minFare*d.factor
}
