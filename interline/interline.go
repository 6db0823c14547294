// Package interline decides whether a set of carriers may be ticketed together.
//
// Rules answers the interline-ticketing-eligibility questions asked by the
// lattice search (ValidInterline / ValidInterlinePair) and the restricted
// carrier check applied by the must-price and low-fare passes.
//
// A carrier set of size one is always valid. Otherwise, when ticketing
// agreements are configured, the validating carrier (the marketing carrier of
// the first flown segment) must have an agreement with every other carrier.
// Without agreements the set is invalid when it contains an online-only
// carrier, or a restricted carrier together with a carrier outside that
// carrier's allowed group.
package interline

import (
	"sort"
	"strings"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// GroupSeparator terminates one restricted carrier group in a flat list.
const GroupSeparator = "*"

// Rules holds carrier restrictions. Build it with New; it is read-only after
// construction and safe for concurrent use.
type Rules struct {
	onlineOnly map[string]struct{}
	restricted map[string]map[string]struct{}
	agreements map[string]map[string]struct{}
}

// Option configures Rules.
type Option func(*Rules)

// WithOnlineOnly marks carriers that may never be combined with others.
func WithOnlineOnly(carriers ...string) Option {
	return func(r *Rules) {
		for _, c := range carriers {
			if c = strings.TrimSpace(c); c != "" {
				r.onlineOnly[c] = struct{}{}
			}
		}
	}
}

// WithRestrictedGroup restricts main to the carriers in allowed (main itself
// is always allowed).
func WithRestrictedGroup(main string, allowed ...string) Option {
	return func(r *Rules) {
		set := map[string]struct{}{main: {}}
		for _, c := range allowed {
			set[c] = struct{}{}
		}
		r.restricted[main] = set
	}
}

// WithRestrictedList parses a flat list such as
// "FL FI F9 HA * B6 AA *": the first carrier of each group is restricted to
// the carriers of its group. A trailing group without separator is kept.
func WithRestrictedList(tokens []string) Option {
	return func(r *Rules) {
		var main string
		allowed := map[string]struct{}{}
		flush := func() {
			if main != "" {
				r.restricted[main] = allowed
			}
			main = ""
			allowed = map[string]struct{}{}
		}
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			switch {
			case tok == "":
				continue
			case tok == GroupSeparator:
				flush()
			default:
				if main == "" {
					main = tok
				}
				allowed[tok] = struct{}{}
			}
		}
		flush()
	}
}

// WithTicketingAgreements switches to agreement-based validation: each key is
// a validating carrier, each value the carriers it may ticket.
func WithTicketingAgreements(agreements map[string][]string) Option {
	return func(r *Rules) {
		if r.agreements == nil {
			r.agreements = make(map[string]map[string]struct{}, len(agreements))
		}
		for v, partners := range agreements {
			set := map[string]struct{}{v: {}}
			for _, p := range partners {
				set[p] = struct{}{}
			}
			r.agreements[v] = set
		}
	}
}

// New builds Rules from opts. Without options every set is valid.
func New(opts ...Option) *Rules {
	r := &Rules{
		onlineOnly: make(map[string]struct{}),
		restricted: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// OnlineOnly reports whether carrier may only be sold online.
func (r *Rules) OnlineOnly(carrier string) bool {
	_, ok := r.onlineOnly[carrier]
	return ok
}

// Allows reports whether the carrier set may be ticketed by validating.
func (r *Rules) Allows(validating string, carriers []string) bool {
	set := make(map[string]struct{}, len(carriers))
	for _, c := range carriers {
		set[c] = struct{}{}
	}
	// a single carrier is online
	if len(set) <= 1 {
		return true
	}

	if r.agreements != nil {
		partners, ok := r.agreements[validating]
		if !ok {
			return false
		}
		for c := range set {
			if _, ok := partners[c]; !ok {
				return false
			}
		}

		return true
	}

	for c := range set {
		if r.OnlineOnly(c) {
			return false
		}
		allowed, ok := r.restricted[c]
		if !ok {
			continue
		}
		for other := range set {
			if _, ok := allowed[other]; !ok {
				return false
			}
		}
	}

	return true
}

// ValidInterline checks the marketing carriers of one candidate.
func (r *Rules) ValidInterline(c *core.Candidate) bool {
	v, ok := validatingCarrier(c)
	if !ok {
		return false
	}

	return r.Allows(v, c.Carriers())
}

// ValidInterlinePair checks the marketing carriers of both legs together;
// the validating carrier comes from the outbound leg.
func (r *Rules) ValidInterlinePair(out, in *core.Candidate) bool {
	v, ok := validatingCarrier(out)
	if !ok {
		return false
	}
	carriers := append(out.Carriers(), in.Carriers()...)

	return r.Allows(v, carriers)
}

// FareCarriersAllowed applies the restrictions to the governing carriers of
// the item's fare components.
func (r *Rules) FareCarriersAllowed(it *core.Item) bool {
	carriers := make([]string, 0, len(it.Components))
	for _, fc := range it.Components {
		carriers = append(carriers, fc.Carrier)
	}
	v := it.GoverningCarrier()
	if len(carriers) > 0 {
		v = carriers[0]
	}

	return r.Allows(v, carriers)
}

// Restricted returns the restricted carriers in sorted order.
func (r *Rules) Restricted() []string {
	out := make([]string, 0, len(r.restricted))
	for c := range r.restricted {
		out = append(out, c)
	}
	sort.Strings(out)

	return out
}

// validatingCarrier is the marketing carrier of the first segment; a
// candidate starting with a surface sector has none.
func validatingCarrier(c *core.Candidate) (string, bool) {
	if len(c.Segments) == 0 || !c.Segments[0].Air() {
		return "", false
	}

	return c.Segments[0].MarketingCarrier, true
}
