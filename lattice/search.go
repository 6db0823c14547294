// Package lattice implements the lazy best-first combination search.
//
// The search keeps a min-heap of combination indices. The all-zero index is
// pushed first; every popped index expands into its successors: for each
// column c from the entry's expand-from cursor to the last column, the index
// with column c incremented (if not already at its last element) is pushed
// with expand-from = c. Every index of the cross product is therefore pushed
// exactly once, and because each successor costs at least as much as its
// parent, pops come out in non-decreasing total order.
//
// Rejections are not errors: a rejected entry is reported to the diagnostic
// sink and the loop moves on to the next pop. Two rejections end the search
// instead: an upper-bound rejection on a low-fare queue (the bound is fixed
// once the min fare is known and pops never get cheaper), and any rejection
// the StopFunc option reports as final.
package lattice

import (
	"container/heap"
	"fmt"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
)

// Search is one lazy combination search. It is owned by a single pass and
// is not safe for concurrent use.
type Search struct {
	columns []core.Column
	opts    Options
	pq      frontier
	seen    map[core.CombinationID]struct{}
	minFare float64
	haveMin bool
	stopped bool
	stats   Stats
}

// New validates the columns and returns a Search positioned before the
// cheapest combination.
//
// Preconditions (in order):
//  1. At least one column (ErrNoColumns).
//  2. At most two columns (ErrTooManyColumns).
//  3. Every column non-empty (ErrEmptyColumn).
//  4. No nil option (ErrNilOption).
//  5. Every column sorted by ascending Total (ErrUnsortedColumn).
func New(columns []core.Column, opts ...Option) (*Search, error) {
	// 1) Resolve options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Sink = diag.OrNop(cfg.Sink)

	// 2) Validate the shape of the lattice.
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if len(columns) > core.NumLegs {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyColumns, len(columns))
	}
	for c, col := range columns {
		if col.Len() == 0 {
			return nil, fmt.Errorf("%w: column %d", ErrEmptyColumn, c)
		}
		for i, o := range col.Options {
			if o == nil || o.Candidate == nil {
				return nil, fmt.Errorf("%w: column %d index %d", ErrNilOption, c, i)
			}
		}
		if !col.Sorted() {
			return nil, fmt.Errorf("%w: column %d", ErrUnsortedColumn, c)
		}
	}

	// 3) Seed the frontier with the all-zero index.
	s := &Search{
		columns: columns,
		opts:    cfg,
		pq:      make(frontier, 0, 64),
		seen:    make(map[core.CombinationID]struct{}),
		stats:   Stats{Rejected: make(map[diag.Reason]int)},
	}
	heap.Init(&s.pq)
	s.push([core.NumLegs]int{}, 0)

	return s, nil
}

// Next returns the next accepted combination in non-decreasing price order,
// or false once the frontier is exhausted or the search has stopped.
func (s *Search) Next() (*core.Item, bool) {
	for !s.stopped && s.pq.Len() > 0 {
		// 1) Pop the cheapest pending index.
		e := heap.Pop(&s.pq).(*entry)
		s.stats.Popped++

		// 2) Expand regardless of the outcome below.
		s.expand(e)

		// 3) Materialize and check.
		item := s.materialize(e)
		reason := s.check(item)
		s.opts.Sink.Record(diag.Record{Queue: s.opts.Queue, ID: item.ID, Total: item.Total, Reason: reason})
		if reason != diag.Accepted {
			s.stats.Rejected[reason]++
			s.stopped = s.final(item, reason)
			continue
		}

		// 4) Accept.
		s.seen[item.ID] = struct{}{}
		s.stats.Emitted++

		return item, true
	}

	return nil, false
}

// Drain returns up to limit accepted items (all of them when limit < 0).
func (s *Search) Drain(limit int) []*core.Item {
	var out []*core.Item
	for limit < 0 || len(out) < limit {
		it, ok := s.Next()
		if !ok {
			break
		}
		out = append(out, it)
	}

	return out
}

// Stopped reports whether a final rejection ended the search before its
// frontier ran out.
func (s *Search) Stopped() bool { return s.stopped }

// Pending returns the number of frontier entries not yet popped.
func (s *Search) Pending() int { return s.pq.Len() }

// MinFare returns the fare the upper bound is derived from, and whether one
// has been seen yet.
func (s *Search) MinFare() (float64, bool) { return s.minFare, s.haveMin }

// Queue returns the queue type the search runs for.
func (s *Search) Queue() core.Queue { return s.opts.Queue }

// Stats returns a snapshot of the search counters.
func (s *Search) Stats() Stats {
	out := s.stats
	out.Stopped = s.stopped
	out.Rejected = make(map[diag.Reason]int, len(s.stats.Rejected))
	for k, v := range s.stats.Rejected {
		out.Rejected[k] = v
	}

	return out
}

// push adds idx to the frontier with its total price.
func (s *Search) push(idx [core.NumLegs]int, from int) {
	var total float64
	for c, col := range s.columns {
		total += col.Options[idx[c]].Total
	}
	heap.Push(&s.pq, &entry{idx: idx, from: from, total: total})
	s.stats.Pushed++
}

// expand pushes the successors of e.
func (s *Search) expand(e *entry) {
	var next [core.NumLegs]int
	for c := e.from; c < len(s.columns); c++ {
		if e.idx[c] >= s.columns[c].Len()-1 {
			continue
		}
		next = e.idx
		next[c]++
		s.push(next, c)
	}
}

// materialize builds the candidate item for e.
func (s *Search) materialize(e *entry) *core.Item {
	out := s.columns[0].Options[e.idx[0]]
	var in *core.WrappedOption
	if len(s.columns) > 1 {
		in = s.columns[1].Options[e.idx[1]]
	}
	item := core.NewItem(out, in)
	item.Queue = s.opts.Queue

	return item
}

// check runs validity, the pass filter and the diversifier, in that order.
func (s *Search) check(item *core.Item) diag.Reason {
	// 1) Validity gates.
	if r := s.validate(item); r != diag.Accepted {
		return r
	}

	// 2) Pass-level filter.
	if s.opts.Filter != nil {
		if r := s.opts.Filter(item); r != diag.Accepted {
			return r
		}
	}

	d := s.opts.Diversifier
	if d == nil {
		return diag.Accepted
	}

	// 3) Until an item fits the budgets there is no min fare to bound by;
	// the first one that does sets it.
	if !s.haveMin {
		if !d.CheckDiversityLimits(item, s.opts.Queue) {
			return diag.RejectDiversity
		}
		s.minFare = item.Total
		s.haveMin = true
		if !d.CheckUpperBoundLimits(item, s.minFare, s.opts.Queue) {
			return diag.RejectUpperBound
		}

		return diag.Accepted
	}

	// 4) Side-effect free bound first, then the budgets.
	if !d.CheckUpperBoundLimits(item, s.minFare, s.opts.Queue) {
		return diag.RejectUpperBound
	}
	if !d.CheckDiversityLimits(item, s.opts.Queue) {
		return diag.RejectDiversity
	}

	return diag.Accepted
}

// final reports whether rejecting item for reason ends the search.
func (s *Search) final(item *core.Item, reason diag.Reason) bool {
	if reason == diag.RejectUpperBound && s.opts.Queue.LowFare() {
		return true
	}

	return s.opts.Stop != nil && s.opts.Stop(item, reason)
}

// validate applies the trip-type, duplicate, connection-time, legality and
// interline gates.
func (s *Search) validate(item *core.Item) diag.Reason {
	out, in := item.Outbound, item.Inbound

	// (a) trip type compatibility
	if in == nil {
		if out.Kind != core.OneWay {
			return diag.RejectTripType
		}
	} else if out.Kind != in.Kind {
		return diag.RejectTripType
	}

	// (b) already generated
	if _, dup := s.seen[item.ID]; dup {
		return diag.RejectDuplicate
	}

	// (c) minimum connection time
	if in != nil && in.Candidate.Departure().Sub(out.Candidate.Arrival()) < s.opts.MinConnection {
		return diag.RejectConnectionTime
	}

	// (d) fare-construction legality, then interline eligibility
	if r := s.legal(out, in); r != diag.Accepted {
		return r
	}
	if !s.interlineValid(out.Candidate, candidateOf(in)) {
		return diag.RejectInterline
	}

	return diag.Accepted
}

func candidateOf(o *core.WrappedOption) *core.Candidate {
	if o == nil {
		return nil
	}

	return o.Candidate
}
