package vis

import (
	"math"
	"sort"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// unmarked is the priority of an item no bucket has marked.
const unmarked = math.MaxInt32

type bucket int

const (
	bucketCarrier bucket = iota
	bucketLowFare
	bucketTimeBin
	bucketElapsed
	bucketUtility
	bucketSimpleInterline
	bucketNonstop
)

type ranked struct {
	b        bucket
	priority int
}

// legState is the bucket selection over the remaining items of one leg.
//
// On the inbound leg every item extends outbound, the selected outbound
// the inbound set is built for.
type legState struct {
	leg      core.Leg
	sel      LegSelection
	items    []*core.Item
	marked   map[*core.Item]bool
	cheapest float64
	outbound *core.Item
}

func newLegState(leg core.Leg, sel LegSelection, items []*core.Item, cheapest float64, outbound *core.Item) *legState {
	for _, it := range items {
		it.Priority = unmarked
		it.SelectionSource = ""
	}

	return &legState{
		leg:      leg,
		sel:      sel,
		items:    items,
		marked:   make(map[*core.Item]bool, len(items)),
		cheapest: cheapest,
		outbound: outbound,
	}
}

// run fills the buckets in priority order until n items are marked, then
// keeps the n best marked items. The rest stay in s.items.
func (s *legState) run(n int) []*core.Item {
	found := 0
	for _, r := range s.priorities() {
		if found >= n {
			break
		}
		switch r.b {
		case bucketCarrier:
			found += s.byCarrier()
		case bucketLowFare:
			found += s.byLowFare()
		case bucketTimeBin:
			found += s.byTimeBin()
		case bucketElapsed:
			found += s.byElapsed()
		case bucketUtility:
			found += s.byUtility()
		case bucketSimpleInterline:
			if s.outbound != nil && s.outbound.Outbound.Candidate.Nonstop() {
				found += s.bySimpleInterline()
			}
		case bucketNonstop:
			found += s.byNonstop()
		}
	}

	return s.finalize(n)
}

// priorities lists the buckets of the leg, lowest priority first. Buckets
// of equal priority keep the order CR, LFS, TB, ET, UV, SI, NS.
func (s *legState) priorities() []ranked {
	var out []ranked
	if s.leg == core.Outbound {
		out = append(out, ranked{bucketCarrier, s.sel.CarrierPriority})
	} else {
		out = append(out, ranked{bucketLowFare, s.sel.LowestFarePriority})
	}
	out = append(out,
		ranked{bucketTimeBin, s.sel.TimeOfDayPriority},
		ranked{bucketElapsed, s.sel.ElapsedTimePriority},
		ranked{bucketUtility, s.sel.UtilityValuePriority},
	)
	if s.leg == core.Inbound {
		out = append(out, ranked{bucketSimpleInterline, s.sel.SimpleInterlinePriority})
	}
	out = append(out, ranked{bucketNonstop, s.sel.NonStopPriority})
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority < out[j].priority })

	return out
}

// mark selects it for a bucket and returns 1 when it was not selected yet.
func (s *legState) mark(it *core.Item, priority int, source string) int {
	n := 0
	if !s.marked[it] {
		s.marked[it] = true
		n = 1
	}
	addSource(it, source)
	if priority < it.Priority {
		it.Priority = priority
	}

	return n
}

func addSource(it *core.Item, source string) {
	if it.SelectionSource == "" {
		it.SelectionSource = source
		return
	}
	it.SelectionSource += " " + source
}

// candidate is the leg's flight of it.
func (s *legState) candidate(it *core.Item) *core.Candidate {
	if s.leg == core.Inbound {
		return it.Inbound.Candidate
	}

	return it.Outbound.Candidate
}

// esvLess orders by price, marked items first, then by descending leg
// utility and combination id.
func (s *legState) esvLess(a, b *core.Item) bool {
	if a.Total != b.Total {
		return a.Total < b.Total
	}
	if s.marked[a] != s.marked[b] {
		return s.marked[a]
	}
	if a.Utility[s.leg] != b.Utility[s.leg] {
		return a.Utility[s.leg] > b.Utility[s.leg]
	}
	if a.ID.Out != b.ID.Out {
		return a.ID.Out < b.ID.Out
	}

	return a.ID.In < b.ID.In
}

// sortBy orders s.items by key, ties in esv order.
func (s *legState) sortBy(key func(*core.Item) float64) {
	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		if key != nil {
			if ka, kb := key(a), key(b); ka != kb {
				return ka < kb
			}
		}
		return s.esvLess(a, b)
	})
}

func (s *legState) stops(it *core.Item) float64 { return float64(s.candidate(it).Stops()) }

func firstCarrier(c *core.Candidate) string {
	if cs := c.Carriers(); len(cs) > 0 {
		return cs[0]
	}

	return ""
}

// byCarrier keeps the NoOfOptionsPerCarrier cheapest items of every first
// carrier, then marks those of the NoOfCarriers carriers met first in esv
// order.
func (s *legState) byCarrier() int {
	if len(s.items) == 0 || s.sel.NoOfCarriers == 0 || s.sel.NoOfOptionsPerCarrier == 0 {
		return 0
	}

	// 1) Cheapest options per carrier.
	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := firstCarrier(s.candidate(s.items[i])), firstCarrier(s.candidate(s.items[j]))
		if a != b {
			return a < b
		}
		return s.esvLess(s.items[i], s.items[j])
	})
	var kept []*core.Item
	per := make(map[string]int)
	for _, it := range s.items {
		c := firstCarrier(s.candidate(it))
		if per[c] < s.sel.NoOfOptionsPerCarrier {
			per[c]++
			kept = append(kept, it)
		}
	}

	// 2) Mark the cheapest carriers.
	sort.SliceStable(kept, func(i, j int) bool { return s.esvLess(kept[i], kept[j]) })
	chosen := make(map[string]bool)
	found := 0
	for _, it := range kept {
		c := firstCarrier(s.candidate(it))
		if !chosen[c] {
			if len(chosen) >= s.sel.NoOfCarriers {
				continue
			}
			chosen[c] = true
		}
		found += s.mark(it, s.sel.CarrierPriority, SourceCarrier)
	}

	return found
}

// timeBin returns the index of the first bin holding the departure of it,
// or -1.
func (s *legState) timeBin(it *core.Item) int {
	dep := s.candidate(it).Departure()
	hhmm := dep.Hour()*100 + dep.Minute()
	for i, b := range s.sel.TimeOfDayBins {
		if b.Contains(hhmm) {
			return i
		}
	}

	return -1
}

// byTimeBin marks the NoOfOptionsPerTimeBin cheapest items of every bin.
func (s *legState) byTimeBin() int {
	per := s.sel.NoOfOptionsPerTimeBin
	if per == 0 {
		return 0
	}
	s.sortBy(nil)

	counts := make([]int, len(s.sel.TimeOfDayBins))
	full, found := 0, 0
	for _, it := range s.items {
		if full >= len(counts) {
			break
		}
		b := s.timeBin(it)
		if b < 0 || counts[b] >= per {
			continue
		}
		found += s.mark(it, s.sel.TimeOfDayPriority, SourceTimeBin)
		counts[b]++
		if counts[b] == per {
			full++
		}
	}

	return found
}

// byElapsed marks the NoOfElapsedTimeOptions shortest trips.
func (s *legState) byElapsed() int {
	s.sortBy(func(it *core.Item) float64 { return float64(s.candidate(it).ElapsedMinutes()) })

	return s.markFirst(s.sel.NoOfElapsedTimeOptions, s.sel.ElapsedTimePriority, SourceElapsed)
}

// byUtility marks the NoOfUtilityValueOptions items of highest leg utility.
func (s *legState) byUtility() int {
	s.sortBy(func(it *core.Item) float64 { return -it.Utility[s.leg] })

	return s.markFirst(s.sel.NoOfUtilityValueOptions, s.sel.UtilityValuePriority, SourceUtility)
}

// byLowFare marks the NoOfLFSOptions cheapest items.
func (s *legState) byLowFare() int {
	s.sortBy(nil)

	return s.markFirst(s.sel.NoOfLFSOptions, s.sel.LowestFarePriority, SourceLowFare)
}

func (s *legState) markFirst(n, priority int, source string) int {
	found := 0
	for i := 0; i < n && i < len(s.items); i++ {
		found += s.mark(s.items[i], priority, source)
	}

	return found
}

// byNonstop marks up to NoOfNonStopOptions nonstops priced at most
// NonStopFareMultiplier times the cheapest itinerary.
func (s *legState) byNonstop() int {
	if s.sel.NoOfNonStopOptions == 0 {
		return 0
	}
	s.sortBy(s.stops)

	limit := s.cheapest * s.sel.NonStopFareMultiplier
	found := 0
	for i, it := range s.items {
		if i >= s.sel.NoOfNonStopOptions || !s.candidate(it).Nonstop() || it.Total > limit {
			break
		}
		found += s.mark(it, s.sel.NonStopPriority, SourceNonstop)
	}

	return found
}

// bySimpleInterline marks up to NoOfSimpleInterlineOptions nonstop inbounds
// whose online carrier differs from that of the outbound.
func (s *legState) bySimpleInterline() int {
	if s.sel.NoOfSimpleInterlineOptions == 0 {
		return 0
	}
	s.sortBy(s.stops)

	carrier := s.outbound.Outbound.Candidate.OnlineCarrier()
	count, found := 0, 0
	for _, it := range s.items {
		if count >= s.sel.NoOfSimpleInterlineOptions || !s.candidate(it).Nonstop() {
			break
		}
		if s.candidate(it).OnlineCarrier() == carrier {
			continue
		}
		found += s.mark(it, s.sel.SimpleInterlinePriority, SourceSimpleInterline)
		count++
	}

	return found
}

// finalize keeps the first n marked items by priority, then esv order, and
// numbers them. Marked items past n are released. When fewer than n were
// kept the unmarked items remain for the incremental-value top-up.
func (s *legState) finalize(n int) []*core.Item {
	sort.SliceStable(s.items, func(i, j int) bool {
		a, b := s.items[i], s.items[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return s.esvLess(a, b)
	})

	var selected, rest []*core.Item
	for _, it := range s.items {
		switch {
		case len(selected) < n && s.marked[it]:
			it.SelectionOrder = len(selected)
			selected = append(selected, it)
		case s.marked[it]:
			delete(s.marked, it)
			it.Priority = unmarked
			it.SelectionSource = ""
			rest = append(rest, it)
		default:
			rest = append(rest, it)
		}
	}
	s.items = rest
	if len(selected) == n {
		s.items = nil
	}

	return selected
}

// addLowFare appends up to limit low-fare itineraries whose flight on leg
// is not selected yet. On the inbound leg only itineraries flying the
// outbound of ob are considered.
func addLowFare(lfs []*core.Item, leg core.Leg, ob *core.Item, selected []*core.Item, limit int) []*core.Item {
	added := 0
	for _, it := range lfs {
		if added >= limit {
			break
		}
		if ob != nil && it.ID.Out != ob.ID.Out {
			continue
		}
		if hasFlight(selected, it, leg) {
			continue
		}
		addSource(it, SourceAdditionalLFS)
		if AdditionalPriority < it.Priority {
			it.Priority = AdditionalPriority
		}
		it.SelectionOrder = len(selected)
		selected = append(selected, it)
		added++
	}

	return selected
}

func hasFlight(items []*core.Item, it *core.Item, leg core.Leg) bool {
	id := legID(it, leg)
	for _, s := range items {
		if legID(s, leg) == id {
			return true
		}
	}

	return false
}

func legID(it *core.Item, leg core.Leg) int {
	if leg == core.Inbound {
		return it.ID.In
	}

	return it.ID.Out
}
