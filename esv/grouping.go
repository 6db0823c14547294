package esv

import (
	"sort"
	"strings"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// SortByPrice orders items by ascending total, keeping the pick order of
// equally priced items.
func SortByPrice(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Total < items[j].Total })
}

// GroupCarriers numbers carrier groups from 1 in first-seen order. The group
// key is the outbound governing carrier, prefixed with "_" for interline
// items. Once maxGroups groups exist, every new key joins the last group.
func GroupCarriers(items []*core.Item, maxGroups int) {
	groups := make(map[string]int)
	last := 0
	for _, it := range items {
		key := it.GoverningCarrier()
		if !it.Online() {
			key = "_" + key
		}
		id, ok := groups[key]
		switch {
		case ok:
		case maxGroups != Unlimited && len(groups) >= maxGroups:
			id = last
		default:
			last++
			id = last
			groups[key] = id
		}
		it.CarrierGroup = id
	}
}

// FamilyKey identifies the items that share fare classes and city pairs on
// every leg, e.g. "Y:^JFK-LHR:|Y:^LHR-JFK:|".
func FamilyKey(it *core.Item) string {
	var b strings.Builder
	for _, o := range it.Legs() {
		for _, fc := range o.Components {
			b.WriteString(fc.FareClass)
			b.WriteByte(':')
		}
		b.WriteByte('^')
		for _, s := range o.Candidate.Segments {
			b.WriteString(s.Origin)
			b.WriteByte('-')
			b.WriteString(s.Destination)
			b.WriteByte(':')
		}
		b.WriteByte('|')
	}

	return b.String()
}

// GroupFamilies numbers families from 0 in first-seen order. The first item
// of each family is its primary.
func GroupFamilies(items []*core.Item) {
	families := make(map[string]int)
	for _, it := range items {
		key := FamilyKey(it)
		id, ok := families[key]
		if !ok {
			id = len(families)
			families[key] = id
		}
		it.Family = id
		it.Primary = !ok
	}
}

// Regroup splits every connecting-only carrier group holding more than
// maxFamilies families: the first maxFamilies families keep the group id and
// each further run of maxFamilies families gets a new id after the highest
// one in use. No id above maxGroups is created unless maxGroups is Unlimited.
func Regroup(items []*core.Item, maxGroups, maxFamilies int) {
	if len(items) == 0 || maxFamilies < 1 {
		return
	}

	// 1) Work on a copy ordered by group, then family.
	sorted := make([]*core.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.CarrierGroup != b.CarrierGroup {
			return a.CarrierGroup < b.CarrierGroup
		}
		return a.Family < b.Family
	})
	next := sorted[len(sorted)-1].CarrierGroup + 1
	capped := func() bool { return maxGroups != Unlimited && next > maxGroups }

	for begin := 0; begin < len(sorted); {
		// 2) Find the group's extent and count its families.
		end := begin
		families, connecting := 0, true
		for end < len(sorted) && sorted[end].CarrierGroup == sorted[begin].CarrierGroup {
			if end == begin || sorted[end].Family != sorted[end-1].Family {
				families++
			}
			if sorted[end].Nonstop() {
				connecting = false
			}
			end++
		}
		group := sorted[begin:end]
		begin = end
		if !connecting || families <= maxFamilies {
			continue
		}

		// 3) Split the group in runs of maxFamilies families.
		id, n := group[0].CarrierGroup, 1
		for i, it := range group {
			if i > 0 && it.Family != group[i-1].Family {
				n++
				if n > maxFamilies {
					if capped() {
						break
					}
					id, n = next, 1
					next++
				}
			}
			it.CarrierGroup = id
		}
		if capped() {
			break
		}
	}
}
