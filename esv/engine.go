package esv

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diversity"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/dominance"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/expand"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// Engine runs the passes of a request. An Engine holds no per-request
// state; Process may be called concurrently on distinct requests.
type Engine struct {
	cfg  Config
	opts Options
}

// New validates cfg and returns an Engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	o.Sink = diag.OrNop(o.Sink)

	return &Engine{cfg: cfg, opts: o}, nil
}

// Config returns the settings the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Process runs every enabled pass over req and returns the picked solutions
// sorted by price. The dominance filter marks dominated candidates of req
// in place. ctx is checked between searches.
func (e *Engine) Process(ctx context.Context, req Request) (*Result, error) {
	// 1) Resolve the quotas of this request.
	if len(req.Outbound) == 0 {
		return nil, ErrNoOutbound
	}
	quotas := e.cfg.Diversity
	if req.Requested > 0 {
		quotas.RequestedSolutions = req.Requested
		if quotas.LowFareRequired > req.Requested {
			quotas.LowFareRequired = req.Requested
		}
	}
	if err := quotas.Validate(); err != nil {
		return nil, fmt.Errorf("request %q: %w", req.ID, err)
	}

	res := &Result{RunID: uuid.New(), RequestID: req.ID}
	out, in := req.Outbound, req.Inbound

	// 2) Drop dominated flights.
	if e.cfg.Dominance {
		f := dominance.New(
			dominance.WithRequestedOptions(quotas.RequestedSolutions),
			dominance.WithSink(e.opts.Sink),
		)
		f.FindDominated(out, in)
		res.Dominated = [core.NumLegs]int{f.Marked(core.Outbound), f.Marked(core.Inbound)}
		out, in = f.Remove(out, in)
	}

	// 3) Run the passes in queue order.
	r := newRun(e, quotas, out, in, req.RoundTrip(), res)
	for _, q := range core.Queues {
		if q.MustPrice() && !e.cfg.MustPrice {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.pass(ctx, q); err != nil {
			return nil, fmt.Errorf("queue %s: %w", q.Code(), err)
		}
	}

	// 4) Order and group the solutions.
	SortByPrice(res.Solutions)
	if e.cfg.Grouping {
		GroupCarriers(res.Solutions, e.cfg.MaxGroups)
		GroupFamilies(res.Solutions)
		Regroup(res.Solutions, e.cfg.MaxGroups, e.cfg.MaxFamiliesInGroup)
	}
	e.opts.Logger.Infof("esv: run %s request %q picked %d of %d requested",
		res.RunID, req.ID, len(res.Solutions), quotas.RequestedSolutions)

	return res, nil
}

// run holds the state of one Process call.
type run struct {
	e         *Engine
	quotas    diversity.Config
	out, in   []*core.Candidate
	outBy     map[string][]*core.Candidate
	inBy      map[string][]*core.Candidate
	carriers  []string
	roundTrip bool
	picked    map[core.CombinationID]struct{}
	res       *Result
}

func newRun(e *Engine, quotas diversity.Config, out, in []*core.Candidate, roundTrip bool, res *Result) *run {
	r := &run{
		e:         e,
		quotas:    quotas,
		out:       out,
		in:        in,
		outBy:     byCarrier(out),
		inBy:      byCarrier(in),
		roundTrip: roundTrip,
		picked:    make(map[core.CombinationID]struct{}),
		res:       res,
	}
	for c := range r.outBy {
		r.carriers = append(r.carriers, c)
	}
	sort.Strings(r.carriers)

	return r
}

func byCarrier(cands []*core.Candidate) map[string][]*core.Candidate {
	m := make(map[string][]*core.Candidate)
	for _, c := range cands {
		m[c.GoverningCarrier] = append(m[c.GoverningCarrier], c)
	}

	return m
}

// pass runs queue q with a fresh Diversifier and arena.
func (r *run) pass(ctx context.Context, q core.Queue) error {
	div := diversity.New(r.quotas, r.out)
	if q == core.LFSOnlineByCarrier {
		div.RecalcOnlineLimits()
	}
	arena := &core.Arena{}

	switch q {
	case core.MPNonstopOnline, core.MPOutNonstopOnline, core.MPSingleStopOnline, core.LFSOnline:
		if !r.roundTrip && q == core.MPOutNonstopOnline {
			return nil
		}
		return r.perCarrier(ctx, q, div, arena, func(c string) []*core.Candidate { return r.inBy[c] })

	case core.MPNonstopInterline, core.MPOutNonstopInterline:
		if !r.roundTrip {
			return nil
		}
		return r.perCarrier(ctx, q, div, arena, func(string) []*core.Candidate { return r.in })

	case core.MPRemainingOnline, core.LFSOnlineByCarrier:
		return r.merged(q, div, arena)

	case core.MPRemaining, core.LFSRemaining:
		s, err := r.search(q, div, arena, r.carriers, r.out, r.in)
		if err != nil || s == nil {
			return err
		}
		r.drain(q, "", div, r.e.source(s), div.Limit(q, len(r.picked)), s.Stats)
		return nil

	default:
		return nil
	}
}

// perCarrier runs one search per outbound governing carrier, recomputing
// the budget before each.
func (r *run) perCarrier(ctx context.Context, q core.Queue, div *diversity.Diversifier, arena *core.Arena, inbound func(string) []*core.Candidate) error {
	rules := r.e.opts.Interline
	for _, carrier := range r.carriers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if q.Interline() && rules != nil && rules.OnlineOnly(carrier) {
			continue
		}

		limit := div.Limit(q, len(r.picked))
		if q == core.LFSOnline && r.quotas.MinOnlinePerCarrier < limit {
			limit = r.quotas.MinOnlinePerCarrier
		}
		if limit == 0 {
			continue
		}

		s, err := r.search(q, div, arena, []string{carrier}, r.outBy[carrier], inbound(carrier))
		if err != nil {
			return err
		}
		if s == nil {
			continue
		}
		r.drain(q, carrier, div, r.e.source(s), limit, s.Stats)
	}

	return nil
}

// merged drains one online search per carrier under a single budget.
func (r *run) merged(q core.Queue, div *diversity.Diversifier, arena *core.Arena) error {
	var searches []*lattice.Search
	for _, carrier := range r.carriers {
		s, err := r.search(q, div, arena, []string{carrier}, r.outBy[carrier], r.inBy[carrier])
		if err != nil {
			return err
		}
		if s != nil {
			searches = append(searches, s)
		}
	}
	if len(searches) == 0 {
		return nil
	}

	m := newMerged(searches)
	r.drain(q, "", div, r.e.source(m), div.Limit(q, len(r.picked)), m.stats)

	return nil
}

// search expands the candidates for q and builds the lattice. It returns
// nil when a leg has no usable option. The search stops once the budget of
// every outbound carrier it covers is used up.
func (r *run) search(q core.Queue, div *diversity.Diversifier, arena *core.Arena, carriers []string, out, in []*core.Candidate) (*lattice.Search, error) {
	if r.roundTrip && len(in) == 0 {
		return nil, nil
	}

	// 1) Columns: low-fare passes exclude penalties; single legs price one-way only.
	opts := []expand.Option{
		expand.WithArena(arena),
		expand.WithPenalty(!q.LowFare()),
		expand.WithCandidateFilter(func(c *core.Candidate) bool { return candidateFits(q, c) }),
	}
	if !r.roundTrip {
		opts = append(opts, expand.WithKinds(core.OneWay))
	}
	columns := []core.Column{expand.Expand(out, append(opts, expand.ForLeg(core.Outbound))...)}
	if r.roundTrip {
		columns = append(columns, expand.Expand(in, append(opts, expand.ForLeg(core.Inbound))...))
	}
	for _, col := range columns {
		if col.Len() == 0 {
			return nil, nil
		}
	}

	// 2) Lattice with the pass filter and diversifier.
	lopts := []lattice.Option{
		lattice.WithQueue(q),
		lattice.WithMinConnection(r.e.cfg.MinConnection),
		lattice.WithDiversifier(div),
		lattice.WithFilter(r.filter(q)),
		lattice.WithSink(r.e.opts.Sink),
	}
	if len(carriers) > 0 {
		lopts = append(lopts, lattice.WithStop(exhausted(q, div, carriers)))
	}
	if r.e.opts.Interline != nil {
		lopts = append(lopts, lattice.WithInterline(r.e.opts.Interline))
	}
	if r.e.opts.Mileage != nil {
		lopts = append(lopts, lattice.WithMileage(r.e.opts.Mileage))
	}

	return lattice.New(columns, lopts...)
}

// exhausted stops a search after a budget rejection once no carrier in
// carriers has outbound budget left.
func exhausted(q core.Queue, div *diversity.Diversifier, carriers []string) lattice.StopFunc {
	return func(_ *core.Item, reason diag.Reason) bool {
		if reason != diag.RejectDiversity {
			return false
		}
		for _, c := range carriers {
			if !div.CarrierExhausted(q, c) {
				return false
			}
		}

		return true
	}
}

// drain picks up to limit items from src. Items src pulled ahead but never
// returned give their budget back to div.
func (r *run) drain(q core.Queue, carrier string, div *diversity.Diversifier, src utility.Source, limit int, stats func() lattice.Stats) {
	picked := 0
	for picked < limit {
		it, ok := src.Next()
		if !ok {
			break
		}
		r.pick(it, q)
		picked++
	}
	if h, ok := src.(utility.Holder); ok {
		for _, it := range h.Held() {
			div.Release(it, q)
		}
	}

	st := stats()
	r.res.Passes = append(r.res.Passes, PassSummary{
		Queue:    q,
		Carrier:  carrier,
		Limit:    limit,
		Picked:   picked,
		Popped:   st.Popped,
		Rejected: st.Rejected,
	})
	r.e.opts.Logger.Debugf("esv: queue %s carrier %q limit %d picked %d popped %d",
		q.Code(), carrier, limit, picked, st.Popped)
}

func (r *run) pick(it *core.Item, q core.Queue) {
	r.picked[it.ID] = struct{}{}
	utility.Score(it, r.e.cfg.Utility)
	it.Queue = q
	it.Priority = priority(q)
	it.SelectionSource = q.Code()
	it.SelectionOrder = len(r.res.Solutions)
	r.res.Solutions = append(r.res.Solutions, it)
}

// priority is the numeric queue code.
func priority(q core.Queue) int {
	n, _ := strconv.Atoi(q.Code())
	return n
}

// filter returns the pass-level checks of q.
func (r *run) filter(q core.Queue) lattice.ItemFilter {
	rules := r.e.opts.Interline

	return func(it *core.Item) diag.Reason {
		if _, ok := r.picked[it.ID]; ok {
			return diag.RejectAlreadyPicked
		}
		if !stopsFit(q, it) {
			return diag.RejectStops
		}
		online := it.Online()
		if q.Online() && !online {
			return diag.RejectNotOnline
		}
		if q.Interline() && online {
			return diag.RejectNotInterline
		}
		if rules != nil && !rules.FareCarriersAllowed(it) {
			return diag.RejectRestrictedCarrier
		}

		return diag.Accepted
	}
}

// candidateFits applies the per-leg stop and online requirements of q
// before expansion.
func candidateFits(q core.Queue, c *core.Candidate) bool {
	switch q {
	case core.MPNonstopOnline, core.MPNonstopInterline:
		if !c.Nonstop() {
			return false
		}
	case core.MPOutNonstopOnline, core.MPOutNonstopInterline:
		if c.Leg == core.Outbound && !c.Nonstop() {
			return false
		}
		if c.Leg == core.Inbound && c.Stops() != 1 {
			return false
		}
	case core.MPSingleStopOnline:
		if c.Stops() > 1 {
			return false
		}
	}

	return !q.Online() || c.Online()
}

// stopsFit checks the segment counts of an item against q. A one-leg item
// has zero inbound segments.
func stopsFit(q core.Queue, it *core.Item) bool {
	out, in := segments(it.Outbound), segments(it.Inbound)
	switch q {
	case core.MPNonstopOnline, core.MPNonstopInterline:
		return out == 1 && in <= 1
	case core.MPOutNonstopOnline, core.MPOutNonstopInterline:
		return out == 1 && in == 2
	case core.MPSingleStopOnline:
		return out <= 2 && in <= 2 && !(out == 1 && in == 1)
	default:
		return true
	}
}

func segments(o *core.WrappedOption) int {
	if o == nil {
		return 0
	}

	return o.Candidate.Stops() + 1
}
