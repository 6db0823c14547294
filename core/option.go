package core

// NumNests is the number of departure-time nests (two-hour buckets).
const NumNests = 12

// WrappedOption is a Candidate priced with one fare construction.
// It is created by an Arena and never modified afterwards.
type WrappedOption struct {
	Candidate   *Candidate
	Kind        FareKind
	Combination CombinationType
	Components  []FareComponent
	Total       float64
	Penalty     float64
}

// NestID returns the coarse departure bucket of the option (0..NumNests-1).
func (o *WrappedOption) NestID() int {
	return o.Candidate.Departure().Hour() * NumNests / 24
}

// Fare is the component amount without any penalty.
func (o *WrappedOption) Fare() float64 { return o.Total - o.Penalty }

// Column is the price-ordered sequence of WrappedOptions for one leg.
type Column struct {
	Leg     Leg
	Options []*WrappedOption
}

// Len returns the number of options in the column.
func (c Column) Len() int { return len(c.Options) }

// Sorted reports whether the options are in non-decreasing Total order.
func (c Column) Sorted() bool {
	for i := 1; i < len(c.Options); i++ {
		if c.Options[i].Total < c.Options[i-1].Total {
			return false
		}
	}

	return true
}

// arenaBlock is the allocation granule of an Arena. Blocks are never
// reallocated, so pointers into them stay stable.
const arenaBlock = 128

// Arena owns the WrappedOptions built for one pass.
// The zero value is ready to use. An Arena is not safe for concurrent use.
type Arena struct {
	blocks [][]WrappedOption
	n      int
}

// Wrap stores a new WrappedOption for c priced with con and returns a
// stable pointer to it. When addPenalty is set the candidate's itinerary
// penalty is included in Total.
func (a *Arena) Wrap(c *Candidate, con Construction, addPenalty bool) *WrappedOption {
	if len(a.blocks) == 0 || len(a.blocks[len(a.blocks)-1]) == cap(a.blocks[len(a.blocks)-1]) {
		a.blocks = append(a.blocks, make([]WrappedOption, 0, arenaBlock))
	}
	last := len(a.blocks) - 1
	opt := WrappedOption{
		Candidate:   c,
		Kind:        con.Kind,
		Combination: con.Combination,
		Components:  con.Components,
		Total:       con.Amount(),
	}
	if addPenalty {
		opt.Penalty = c.Penalty
		opt.Total += c.Penalty
	}
	a.blocks[last] = append(a.blocks[last], opt)
	a.n++

	return &a.blocks[last][len(a.blocks[last])-1]
}

// Len returns the number of options the arena holds.
func (a *Arena) Len() int { return a.n }
