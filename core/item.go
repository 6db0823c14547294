package core

import "strconv"

// NoInbound is the inbound half of a CombinationID for one-leg searches.
const NoInbound = -1

// CombinationID identifies a combination of candidates independently of the
// fare construction it was priced with.
type CombinationID struct {
	Out int
	In  int
}

// String renders "out" or "out/in".
func (id CombinationID) String() string {
	if id.In == NoInbound {
		return strconv.Itoa(id.Out)
	}

	return strconv.Itoa(id.Out) + "/" + strconv.Itoa(id.In)
}

// Item is a validated combination produced by a search.
type Item struct {
	ID         CombinationID
	Outbound   *WrappedOption
	Inbound    *WrappedOption
	Total      float64
	Penalty    float64
	Components []FareComponent

	// Utility holds one score per leg; AggregateUtility is their sum.
	Utility          [NumLegs]float64
	AggregateUtility float64

	// Selection bookkeeping.
	Queue           Queue
	Priority        int
	SelectionSource string
	SelectionOrder  int

	// Grouping, filled once the solution set is final.
	CarrierGroup int
	Family       int
	Primary      bool
}

// NewItem materializes the combination of out and (optionally) in.
func NewItem(out, in *WrappedOption) *Item {
	it := &Item{
		ID:       CombinationID{Out: out.Candidate.ID, In: NoInbound},
		Outbound: out,
		Inbound:  in,
		Total:    out.Total,
		Penalty:  out.Penalty,
	}
	n := len(out.Components)
	if in != nil {
		n += len(in.Components)
	}
	it.Components = make([]FareComponent, 0, n)
	it.Components = append(it.Components, out.Components...)
	if in != nil {
		it.ID.In = in.Candidate.ID
		it.Total += in.Total
		it.Penalty += in.Penalty
		it.Components = append(it.Components, in.Components...)
	}

	return it
}

// Legs returns the wrapped options of the item in leg order.
func (it *Item) Legs() []*WrappedOption {
	if it.Inbound == nil {
		return []*WrappedOption{it.Outbound}
	}

	return []*WrappedOption{it.Outbound, it.Inbound}
}

// Candidates returns the candidates of the item in leg order.
func (it *Item) Candidates() []*Candidate {
	legs := it.Legs()
	out := make([]*Candidate, len(legs))
	for i, o := range legs {
		out[i] = o.Candidate
	}

	return out
}

// Kind is the fare kind of the outbound option.
func (it *Item) Kind() FareKind { return it.Outbound.Kind }

// GoverningCarrier is the governing carrier of the outbound candidate.
func (it *Item) GoverningCarrier() string { return it.Outbound.Candidate.GoverningCarrier }

// Online reports whether every leg is online with the same carrier.
func (it *Item) Online() bool {
	carrier := it.Outbound.Candidate.OnlineCarrier()
	if carrier == "" {
		return false
	}
	if it.Inbound == nil {
		return true
	}

	return it.Inbound.Candidate.OnlineCarrier() == carrier
}

// Nonstop reports whether every leg is nonstop.
func (it *Item) Nonstop() bool {
	for _, o := range it.Legs() {
		if !o.Candidate.Nonstop() {
			return false
		}
	}

	return true
}

// Fare is the total without penalties.
func (it *Item) Fare() float64 { return it.Total - it.Penalty }
