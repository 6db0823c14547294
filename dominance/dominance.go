package dominance

import (
	"math"
	"sort"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
)

// Filter marks and removes dominated flights.
//
// The dominance cap is counted across every FindDominated call on the same
// Filter, so a Filter should live exactly as long as one search pass.
// A Filter is not safe for concurrent use.
type Filter struct {
	opts   Options
	marked [core.NumLegs]int
}

// New returns a Filter configured by opts.
func New(opts ...Option) *Filter {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Sink = diag.OrNop(cfg.Sink)

	return &Filter{opts: cfg}
}

// Cap returns the per-leg limit on dominated flights, or -1 when uncapped.
func (f *Filter) Cap() int {
	if f.opts.RequestedOptions == 0 {
		return -1
	}

	return capFactor * f.opts.RequestedOptions
}

// Marked returns how many flights of leg the filter has marked so far.
func (f *Filter) Marked(leg core.Leg) int { return f.marked[leg] }

// FindDominated marks dominated flights of both legs and returns how many
// flights were newly marked. Either slice may be empty.
func (f *Filter) FindDominated(outbound, inbound []*core.Candidate) int {
	return f.findLeg(core.Outbound, outbound) + f.findLeg(core.Inbound, inbound)
}

// Remove returns the legs without the flights marked dominated.
// The input slices are not modified.
func (f *Filter) Remove(outbound, inbound []*core.Candidate) ([]*core.Candidate, []*core.Candidate) {
	return keep(outbound), keep(inbound)
}

// record caches what the pairwise comparison needs for one candidate.
type record struct {
	c         *core.Candidate
	signature string
	elapsed   time.Duration
	cheapest  [core.NumFareKinds]float64
	depDate   date
	arrDate   date
}

type date struct {
	y int
	m time.Month
	d int
}

func dateOf(t time.Time) date {
	y, m, d := t.Date()
	return date{y, m, d}
}

func newRecord(c *core.Candidate) record {
	r := record{
		c:         c,
		signature: c.Signature(),
		elapsed:   c.Elapsed(),
		depDate:   dateOf(c.Departure()),
		arrDate:   dateOf(c.Arrival()),
	}
	for i, k := range core.FareKinds {
		r.cheapest[i] = c.Cheapest(k)
	}

	return r
}

// comparable reports whether two records may dominate each other.
func (r *record) comparable(o *record) bool {
	if r.signature != o.signature {
		return false
	}

	return r.depDate == o.depDate || r.arrDate == o.arrDate
}

// cheaperThan reports whether r beats o in at least one fare category.
func (r *record) cheaperThan(o *record) bool {
	for i := range r.cheapest {
		if r.cheapest[i] < o.cheapest[i] {
			return true
		}
	}

	return false
}

// findLeg runs the pairwise scan over one leg.
func (f *Filter) findLeg(leg core.Leg, cands []*core.Candidate) int {
	// 1) Build the transient records, skipping flights already dominated.
	recs := make([]record, 0, len(cands))
	for _, c := range cands {
		if c == nil || c.Dominated {
			continue
		}
		recs = append(recs, newRecord(c))
	}

	// 2) Shortest first; ties by id keep the scan deterministic.
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].elapsed != recs[j].elapsed {
			return recs[i].elapsed < recs[j].elapsed
		}
		return recs[i].c.ID < recs[j].c.ID
	})

	// 3) For every pair i<j the later record is the slower one.
	limit := f.Cap()
	marked := 0
	for i := 0; i < len(recs); i++ {
		if recs[i].c.Dominated {
			continue
		}
		for j := i + 1; j < len(recs); j++ {
			if limit >= 0 && f.marked[leg] >= limit {
				return marked
			}
			if recs[j].c.Dominated || !recs[i].comparable(&recs[j]) {
				continue
			}
			if recs[j].elapsed <= recs[i].elapsed || recs[j].cheaperThan(&recs[i]) {
				continue
			}
			recs[j].c.Dominated = true
			f.marked[leg]++
			marked++
			f.opts.Sink.Record(diag.Record{ID: legID(leg, recs[j].c.ID), Total: minFare(&recs[j]), Reason: diag.Dominated})
		}
	}

	return marked
}

func legID(leg core.Leg, id int) core.CombinationID {
	if leg == core.Inbound {
		return core.CombinationID{Out: core.NoInbound, In: id}
	}

	return core.CombinationID{Out: id, In: core.NoInbound}
}

func minFare(r *record) float64 {
	best := r.cheapest[0]
	for _, v := range r.cheapest[1:] {
		if v < best {
			best = v
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}

	return best
}

func keep(cands []*core.Candidate) []*core.Candidate {
	out := make([]*core.Candidate, 0, len(cands))
	for _, c := range cands {
		if c != nil && !c.Dominated {
			out = append(out, c)
		}
	}

	return out
}
