package vis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/dominance"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/expand"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// Selector runs value-based selection. It holds no per-request state;
// Select may be called concurrently on distinct requests.
type Selector struct {
	cfg  Config
	opts Options
	now  func() time.Time
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}

// New validates cfg and returns a Selector.
func New(cfg Config, opts ...Option) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := Options{Logger: nopLogger{}, Sink: diag.Nop}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	o.Sink = diag.OrNop(o.Sink)

	return &Selector{cfg: cfg, opts: o, now: time.Now}, nil
}

// Config returns the settings the selector was built with.
func (s *Selector) Config() Config { return s.cfg }

// selection holds the state of one Select call.
type selection struct {
	s      *Selector
	model  utility.Model
	arena  *core.Arena
	oneWay bool
}

// Select picks the solutions of req. The dominance filter marks dominated
// candidates of req in place. ctx is checked between outbounds.
func (s *Selector) Select(ctx context.Context, req Request) (*Result, error) {
	if len(req.Outbound) == 0 {
		return nil, ErrNoOutbound
	}
	ticketing := req.TicketingDate
	if ticketing.IsZero() {
		ticketing = s.now()
	}
	requested := s.cfg.RequestedSolutions
	if req.Requested > 0 {
		requested = req.Requested
	}
	res := &Result{Result: esv.Result{RunID: uuid.New(), RequestID: req.ID}}

	// 1) Coefficients of the market.
	res.Market = MarketOf(req.Outbound[0], s.opts.Mileage, ticketing)
	model, found := s.cfg.Model(res.Market)
	for leg, ok := range found {
		if !ok && (leg == int(core.Outbound) || req.RoundTrip()) {
			s.opts.Logger.Warnf("vis: request %q has no beta for %s leg (time diff %d, mileage %d, ap %s); using defaults",
				req.ID, core.Leg(leg), res.Market.TimeDiff, res.Market.Mileage, res.Market.AdvancePurchase)
		}
	}
	r := &selection{s: s, model: model, arena: &core.Arena{}, oneWay: !req.RoundTrip()}

	// 2) Drop dominated flights.
	out, in := req.Outbound, req.Inbound
	if s.cfg.Dominance {
		f := dominance.New(
			dominance.WithRequestedOptions(requested),
			dominance.WithSink(s.opts.Sink),
		)
		f.FindDominated(out, in)
		res.Dominated = [core.NumLegs]int{f.Marked(core.Outbound), f.Marked(core.Inbound)}
		out, in = f.Remove(out, in)
	}

	// 3) Low fare set, and one itinerary per outbound to choose from.
	lfs, remaining, err := r.lowFare(out, in)
	if err != nil {
		return nil, fmt.Errorf("request %q: %w", req.ID, err)
	}
	if len(lfs) == 0 {
		s.opts.Logger.Infof("vis: run %s request %q found no itinerary", res.RunID, req.ID)
		return res, nil
	}
	res.LowFare = lfs
	cheapest := lfs[0].Total

	// 4) Outbounds.
	wanted, sel, extra := s.cfg.NoOfOutboundsRT, s.cfg.OutboundRT, s.cfg.NoOfAdditionalOutboundsRT
	if r.oneWay {
		wanted, sel, extra = s.cfg.NoOfOutboundsOW, s.cfg.OutboundOW, s.cfg.NoOfAdditionalOutboundsOW
	}
	outbounds := r.pick(core.Outbound, sel, remaining, cheapest, nil, wanted)
	inbounds := InboundCount(len(outbounds), wanted, s.cfg.NoOfInboundsRT, requested)
	outbounds = addLowFare(lfs, core.Outbound, nil, outbounds, extra)
	res.Outbounds = outbounds
	s.opts.Logger.Debugf("vis: request %q selected %d outbounds, %d inbounds each", req.ID, len(outbounds), inbounds)

	// 5) Inbounds of every selected outbound.
	var final []*core.Item
	if r.oneWay {
		final = outbounds
	} else {
		for _, ob := range outbounds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			items, err := r.inbounds(ob, in)
			if err != nil {
				return nil, fmt.Errorf("request %q: outbound %d: %w", req.ID, ob.ID.Out, err)
			}
			chosen := r.pick(core.Inbound, s.cfg.InboundRT, items, cheapest, ob, inbounds)
			chosen = addLowFare(lfs, core.Inbound, ob, chosen, s.cfg.NoOfAdditionalInboundsRT)
			final = append(final, chosen...)
		}
	}

	// 6) Number, order and group the solutions.
	for i, it := range final {
		it.SelectionOrder = i
	}
	esv.SortByPrice(final)
	if s.cfg.Grouping {
		esv.GroupCarriers(final, s.cfg.MaxGroups)
		esv.GroupFamilies(final)
		esv.Regroup(final, s.cfg.MaxGroups, s.cfg.MaxFamiliesInGroup)
	}
	res.Solutions = final
	s.opts.Logger.Infof("vis: run %s request %q picked %d solutions from %d outbounds",
		res.RunID, req.ID, len(final), len(outbounds))

	return res, nil
}

// InboundCount sizes the inbound set of every outbound. When fewer than
// wanted outbounds were found and they cannot carry requested solutions
// with perOutbound inbounds each, the requested solutions are spread over
// the outbounds found.
func InboundCount(found, wanted, perOutbound, requested int) int {
	if found > 0 && found < wanted && found*perOutbound < requested {
		return (requested + found - 1) / found
	}

	return perOutbound
}

// pick runs the buckets of leg over items and tops the selection up to n by
// incremental value.
func (r *selection) pick(leg core.Leg, sel LegSelection, items []*core.Item, cheapest float64, ob *core.Item, n int) []*core.Item {
	st := newLegState(leg, sel, items, cheapest, ob)
	selected := st.run(n)
	if len(st.items) > 0 && r.s.cfg.IncrementalValue {
		selected = append(selected, utility.SelectByIncrementalValue(r.model, leg, selected, st.items, n-len(selected))...)
	}

	return selected
}

// lowFare returns the NoOfLFSItineraries cheapest itineraries and the items
// the outbound buckets choose from: every one-way itinerary, or the
// cheapest round trip of every outbound.
func (r *selection) lowFare(out, in []*core.Candidate) (lfs, remaining []*core.Item, err error) {
	n := r.s.cfg.NoOfLFSItineraries
	if r.oneWay {
		s, err := r.search(out, nil)
		if err != nil || s == nil {
			return nil, nil, err
		}
		all := r.score(s.Drain(-1))
		if n > len(all) {
			n = len(all)
		}
		return all[:n], all, nil
	}

	s, err := r.search(out, in)
	if err != nil || s == nil {
		return nil, nil, err
	}
	lfs = r.score(s.Drain(n))
	for _, c := range out {
		s, err := r.search([]*core.Candidate{c}, in)
		if err != nil {
			return nil, nil, err
		}
		if s == nil {
			continue
		}
		if it, ok := s.Next(); ok {
			remaining = append(remaining, r.score([]*core.Item{it})...)
		}
	}

	return lfs, remaining, nil
}

// inbounds returns the cheapest itinerary of ob's outbound flight with every
// inbound.
func (r *selection) inbounds(ob *core.Item, in []*core.Candidate) ([]*core.Item, error) {
	s, err := r.search([]*core.Candidate{ob.Outbound.Candidate}, in)
	if err != nil || s == nil {
		return nil, err
	}

	return r.score(s.Drain(-1)), nil
}

func (r *selection) score(items []*core.Item) []*core.Item {
	for _, it := range items {
		utility.Score(it, r.model)
		it.Priority = unmarked
	}

	return items
}

// search builds a penalty-free lattice over out and, for a round trip, in.
// It returns nil when a leg has no usable option. Each combination is
// emitted once, with its cheapest construction.
func (r *selection) search(out, in []*core.Candidate) (*lattice.Search, error) {
	opts := []expand.Option{expand.WithArena(r.arena), expand.WithPenalty(false)}
	if r.oneWay {
		opts = append(opts, expand.WithKinds(core.OneWay))
	}
	columns := []core.Column{expand.Expand(out, append(opts, expand.ForLeg(core.Outbound))...)}
	if !r.oneWay {
		columns = append(columns, expand.Expand(in, append(opts, expand.ForLeg(core.Inbound))...))
	}
	for _, col := range columns {
		if col.Len() == 0 {
			return nil, nil
		}
	}

	lopts := []lattice.Option{
		lattice.WithQueue(core.LFSRemaining),
		lattice.WithMinConnection(r.s.cfg.MinConnection),
		lattice.WithSink(r.s.opts.Sink),
	}
	if r.s.opts.Interline != nil {
		lopts = append(lopts, lattice.WithInterline(r.s.opts.Interline))
	}
	if r.s.opts.Mileage != nil {
		lopts = append(lopts, lattice.WithMileage(r.s.opts.Mileage))
	}

	return lattice.New(columns, lopts...)
}
