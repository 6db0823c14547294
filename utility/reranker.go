package utility

import (
	"math"
	"sort"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// Source yields items in non-decreasing price order; *lattice.Search is one.
type Source interface {
	Next() (*core.Item, bool)
}

// Holder is a Source that pulls ahead: Held returns the items it has taken
// from its own source but not returned yet.
type Holder interface {
	Held() []*core.Item
}

// Reranker reorders each same-price batch of a Source by utility.
type Reranker struct {
	src     Source
	model   Model
	opts    Options
	batch   []*core.Item
	pending *core.Item
	done    bool
	batches int
}

// NewReranker wraps src.
func NewReranker(src Source, m Model, opts ...Option) *Reranker {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Reranker{src: src, model: m, opts: cfg}
}

// Next returns the next item of the current batch, pulling and ranking a new
// batch when the current one is used up.
func (r *Reranker) Next() (*core.Item, bool) {
	if len(r.batch) == 0 && !r.fill() {
		return nil, false
	}
	it := r.batch[0]
	r.batch[0] = nil
	r.batch = r.batch[1:]

	return it, true
}

// Held implements Holder: the rest of the current batch, the item kept for
// the next batch, and whatever the wrapped source holds.
func (r *Reranker) Held() []*core.Item {
	out := append([]*core.Item(nil), r.batch...)
	if r.pending != nil {
		out = append(out, r.pending)
	}
	if h, ok := r.src.(Holder); ok {
		out = append(out, h.Held()...)
	}

	return out
}

// Batches returns how many batches have been ranked so far.
func (r *Reranker) Batches() int { return r.batches }

// fill pulls the next batch from the source and ranks it.
func (r *Reranker) fill() bool {
	// 1) The first item is the one held back by the previous batch, if any.
	first := r.pending
	r.pending = nil
	if first == nil {
		if r.done {
			return false
		}
		var ok bool
		if first, ok = r.src.Next(); !ok {
			r.done = true
			return false
		}
	}

	// 2) Pull while the price stays within epsilon of the first item.
	batch := []*core.Item{first}
	for !r.done {
		it, ok := r.src.Next()
		if !ok {
			r.done = true
			break
		}
		if math.Abs(it.Total-first.Total) > r.opts.Epsilon {
			r.pending = it
			break
		}
		batch = append(batch, it)
	}

	// 3) Score and sort.
	for _, it := range batch {
		Score(it, r.model)
	}
	Rank(batch)
	r.batch = batch
	r.batches++

	return true
}

// Rank sorts items by descending aggregate utility, then by combination id.
// Items must already be scored.
func Rank(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.AggregateUtility != b.AggregateUtility {
			return a.AggregateUtility > b.AggregateUtility
		}
		if a.ID.Out != b.ID.Out {
			return a.ID.Out < b.ID.Out
		}

		return a.ID.In < b.ID.In
	})
}
