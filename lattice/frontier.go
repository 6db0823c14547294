package lattice

import "github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"

// entry is one pending combination index with its precomputed total.
type entry struct {
	idx   [core.NumLegs]int // per-column offsets; unused positions stay zero
	from  int               // first column this entry may expand
	total float64
}

// frontier is a min-heap of *entry ordered by total, then by index vector.
// The index tie-break makes equal-priced emission order deterministic.
type frontier []*entry

// Len returns the number of pending entries.
func (f frontier) Len() int { return len(f) }

// Less orders by ascending total, then lexicographically by index.
func (f frontier) Less(i, j int) bool {
	if f[i].total != f[j].total {
		return f[i].total < f[j].total
	}
	for c := range f[i].idx {
		if f[i].idx[c] != f[j].idx[c] {
			return f[i].idx[c] < f[j].idx[c]
		}
	}

	return false
}

// Swap swaps two entries.
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

// Push appends x, which must be an *entry. Called by heap.Push.
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*entry)) }

// Pop removes the last entry. Called by heap.Pop.
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]

	return e
}
