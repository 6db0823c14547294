package expand

import (
	"sort"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// Expand builds the column for one leg.
//
// Every surviving candidate contributes one option per allowed construction.
// The result is sorted once by ascending Total; ties are ordered by candidate
// id and fare kind so repeated runs produce the same column.
//
// Complexity: O(n log n) in the number of produced options.
func Expand(cands []*core.Candidate, opts ...Option) core.Column {
	// 1) Resolve options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	arena := cfg.Arena
	if arena == nil {
		arena = &core.Arena{}
	}

	// 2) Wrap every legal construction.
	col := core.Column{Leg: cfg.Leg, Options: make([]*core.WrappedOption, 0, len(cands))}
	for _, c := range cands {
		if c == nil || c.Dominated {
			continue
		}
		if cfg.Filter != nil && !cfg.Filter(c) {
			continue
		}
		for i := range c.Constructions {
			con := c.Constructions[i]
			if !cfg.Kinds[con.Kind] || len(con.Components) == 0 {
				continue
			}
			col.Options = append(col.Options, arena.Wrap(c, con, cfg.AddPenalty))
		}
	}

	// 3) Sort exactly once.
	sort.SliceStable(col.Options, func(i, j int) bool {
		a, b := col.Options[i], col.Options[j]
		if a.Total != b.Total {
			return a.Total < b.Total
		}
		if a.Candidate.ID != b.Candidate.ID {
			return a.Candidate.ID < b.Candidate.ID
		}
		return a.Kind < b.Kind
	})

	return col
}
