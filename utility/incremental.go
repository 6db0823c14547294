package utility

import (
	"math"
	"sort"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// SelectionSource tags items picked by incremental value.
const SelectionSource = "O-IV"

// SelectionPriority is the priority given to items picked by incremental value.
const SelectionPriority = 99

// nestSums holds Σ exp(U) per departure nest of the selected items.
type nestSums struct {
	sum   [core.NumNests]float64
	exist [core.NumNests]bool
}

func newNestSums(selected []*core.Item, leg core.Leg) nestSums {
	var n nestSums
	for _, it := range selected {
		o := legOption(it, leg)
		if o == nil {
			continue
		}
		id := nest(o)
		n.sum[id] += math.Exp(it.Utility[leg])
		n.exist[id] = true
	}

	return n
}

// IncrementalValue is the nested-logit share, in percent, that it would take
// from a choice set made of selected plus it, on leg. With nothing selected
// every item is worth 100. Utilities must already be scored.
func IncrementalValue(it *core.Item, leg core.Leg, selected []*core.Item, mu float64) float64 {
	if len(selected) == 0 {
		return 100
	}

	return newNestSums(selected, leg).value(it, leg, mu)
}

func (n nestSums) value(it *core.Item, leg core.Leg, mu float64) float64 {
	o := legOption(it, leg)
	if o == nil {
		return 0
	}
	id := nest(o)
	ev := math.Exp(it.Utility[leg])
	own := ev + n.sum[id]

	num := math.Exp(mu * math.Log(own))
	den := num
	for i := range n.sum {
		if n.exist[i] && i != id {
			den += math.Exp(mu * math.Log(n.sum[i]))
		}
	}

	return num / den * ev / own * 100
}

// SelectByIncrementalValue scores the incremental value of every candidate
// against selected once, then picks the n best. Ties go to the cheaper
// item, then the higher utility, then the lower id. Picked items are marked
// with SelectionSource, SelectionPriority and their selection order.
func SelectByIncrementalValue(m Model, leg core.Leg, selected, candidates []*core.Item, n int) []*core.Item {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	// 1) Score once against the current selection.
	sums := newNestSums(selected, leg)
	mu := m.For(leg).Mu
	type scored struct {
		it *core.Item
		iv float64
	}
	pool := make([]scored, 0, len(candidates))
	for _, it := range candidates {
		if legOption(it, leg) == nil {
			continue
		}
		iv := 100.0
		if len(selected) > 0 {
			iv = sums.value(it, leg, mu)
		}
		pool = append(pool, scored{it, iv})
	}

	// 2) Order by value.
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.iv != b.iv {
			return a.iv > b.iv
		}
		if a.it.Total != b.it.Total {
			return a.it.Total < b.it.Total
		}
		if a.it.Utility[leg] != b.it.Utility[leg] {
			return a.it.Utility[leg] > b.it.Utility[leg]
		}
		if a.it.ID.Out != b.it.ID.Out {
			return a.it.ID.Out < b.it.ID.Out
		}

		return a.it.ID.In < b.it.ID.In
	})

	// 3) Take the first n.
	if n > len(pool) {
		n = len(pool)
	}
	picked := make([]*core.Item, n)
	for k := 0; k < n; k++ {
		it := pool[k].it
		it.SelectionSource = SelectionSource
		it.Priority = SelectionPriority
		it.SelectionOrder = len(selected) + k
		picked[k] = it
	}

	return picked
}

func legOption(it *core.Item, leg core.Leg) *core.WrappedOption {
	if leg == core.Inbound {
		return it.Inbound
	}

	return it.Outbound
}

// nest clamps the option's nest id into range.
func nest(o *core.WrappedOption) int {
	id := o.NestID()
	if id < 0 || id >= core.NumNests {
		return 0
	}

	return id
}
