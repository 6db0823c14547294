package esv

import (
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// merged drains several searches cheapest head first. Ties go to the search
// listed first. A search that runs dry or stops leaves the merge.
type merged struct {
	all    []*lattice.Search
	active []*lattice.Search
	heads  []*core.Item
	primed bool
}

func newMerged(searches []*lattice.Search) *merged {
	return &merged{all: searches}
}

// Next implements utility.Source.
func (m *merged) Next() (*core.Item, bool) {
	// 1) Every search contributes its first item once.
	if !m.primed {
		for _, s := range m.all {
			if h, ok := s.Next(); ok {
				m.active = append(m.active, s)
				m.heads = append(m.heads, h)
			}
		}
		m.primed = true
	}

	// 2) Pick the cheapest head.
	best := -1
	for i, h := range m.heads {
		if best < 0 || h.Total < m.heads[best].Total {
			best = i
		}
	}
	if best < 0 {
		return nil, false
	}

	// 3) Refill the consumed slot or drop its search.
	it := m.heads[best]
	if h, ok := m.active[best].Next(); ok {
		m.heads[best] = h
	} else {
		m.active = append(m.active[:best], m.active[best+1:]...)
		m.heads = append(m.heads[:best], m.heads[best+1:]...)
	}

	return it, true
}

// Held implements utility.Holder: the heads pulled but not yet returned.
func (m *merged) Held() []*core.Item {
	return append([]*core.Item(nil), m.heads...)
}

// stats sums the counters of every search.
func (m *merged) stats() lattice.Stats {
	return sumStats(m.all...)
}

func sumStats(searches ...*lattice.Search) lattice.Stats {
	out := lattice.Stats{Rejected: make(map[diag.Reason]int)}
	for _, s := range searches {
		st := s.Stats()
		out.Pushed += st.Pushed
		out.Popped += st.Popped
		out.Emitted += st.Emitted
		for r, n := range st.Rejected {
			out.Rejected[r] += n
		}
	}

	return out
}

// source wraps src in a utility reranker when reranking is enabled.
func (e *Engine) source(src utility.Source) utility.Source {
	if !e.cfg.Rerank {
		return src
	}

	return utility.NewReranker(src, e.cfg.Utility, utility.WithEpsilon(e.cfg.Epsilon))
}
