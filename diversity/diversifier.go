package diversity

import (
	"strings"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

type flightKey struct {
	leg core.Leg
	id  int
}

type carrierKey struct {
	leg     core.Leg
	carrier string
}

// Diversifier holds the budgets of one pass. Budgets are created lazily
// with their initial value the first time a flight or carrier is seen.
//
// A Diversifier is not safe for concurrent use.
type Diversifier struct {
	cfg Config
	avs map[string]struct{}

	totalOutbound int
	outPerCarrier map[string]int

	flightMP    map[flightKey]int
	onlineMP    map[carrierKey]int
	interlineMP map[carrierKey]int

	flightLFS      map[flightKey]int
	carrierLFS     map[carrierKey]int
	onlineLimitLFS map[string]int
	onlineCountLFS map[string]int
}

// New returns a Diversifier with fresh budgets. The outbound candidates are
// counted per governing carrier for RecalcOnlineLimits.
func New(cfg Config, outbound []*core.Candidate) *Diversifier {
	d := &Diversifier{
		cfg:            cfg,
		avs:            make(map[string]struct{}, len(cfg.AVSCarriers)),
		outPerCarrier:  make(map[string]int),
		flightMP:       make(map[flightKey]int),
		onlineMP:       make(map[carrierKey]int),
		interlineMP:    make(map[carrierKey]int),
		flightLFS:      make(map[flightKey]int),
		carrierLFS:     make(map[carrierKey]int),
		onlineLimitLFS: make(map[string]int),
		onlineCountLFS: make(map[string]int),
	}
	for _, cx := range cfg.AVSCarriers {
		d.avs[strings.ToUpper(strings.TrimSpace(cx))] = struct{}{}
	}
	for _, c := range outbound {
		if c == nil {
			continue
		}
		d.totalOutbound++
		d.outPerCarrier[c.GoverningCarrier]++
	}

	return d
}

// Config returns the quotas the Diversifier was built with.
func (d *Diversifier) Config() Config { return d.cfg }

// AVS reports whether carrier gets the low per-option limit.
func (d *Diversifier) AVS(carrier string) bool {
	_, ok := d.avs[carrier]
	return ok
}

// CheckDiversityLimits consumes one unit of every budget q applies to item,
// or nothing when any of them is exhausted.
func (d *Diversifier) CheckDiversityLimits(item *core.Item, q core.Queue) bool {
	switch {
	case q.MustPrice():
		return d.mustPrice(item.Candidates(), item.Online())
	case q == core.LFSOnline || q == core.LFSOnlineByCarrier:
		return d.lowFareOnline(item.Candidates())
	case q == core.LFSRemaining:
		return d.lowFareRemaining(item.Candidates())
	default:
		return true
	}
}

// Release gives back the units CheckDiversityLimits consumed for item. It
// must only be called for an item the check accepted under the same q.
func (d *Diversifier) Release(item *core.Item, q core.Queue) {
	legs := item.Candidates()
	switch {
	case q.MustPrice():
		carriers := d.interlineMP
		if item.Online() {
			carriers = d.onlineMP
		}
		for _, c := range legs {
			d.flightMP[flightKey{c.Leg, c.ID}]++
			carriers[carrierKey{c.Leg, c.GoverningCarrier}]++
		}
	case q == core.LFSOnline || q == core.LFSOnlineByCarrier:
		for _, c := range legs {
			d.flightLFS[flightKey{c.Leg, c.ID}]++
		}
		d.onlineCountLFS[legs[0].GoverningCarrier]--
	case q == core.LFSRemaining:
		for _, c := range legs {
			d.flightLFS[flightKey{c.Leg, c.ID}]++
			d.carrierLFS[carrierKey{c.Leg, c.GoverningCarrier}]++
		}
	}
}

// CarrierExhausted reports whether the outbound carrier budget of q is used
// up for carrier, so that no further item governed by it can pass. A
// must-price queue that takes both online and interline items needs both
// budgets used up.
func (d *Diversifier) CarrierExhausted(q core.Queue, carrier string) bool {
	switch {
	case q.Online() && q.MustPrice():
		return d.CarrierMustPrice(core.Outbound, carrier, true) <= 0
	case q.Interline():
		return d.CarrierMustPrice(core.Outbound, carrier, false) <= 0
	case q.MustPrice():
		return d.CarrierMustPrice(core.Outbound, carrier, true) <= 0 &&
			d.CarrierMustPrice(core.Outbound, carrier, false) <= 0
	case q == core.LFSOnline || q == core.LFSOnlineByCarrier:
		limit, count := d.OnlineLowFare(carrier)
		return count >= limit
	case q == core.LFSRemaining:
		return d.CarrierLowFare(core.Outbound, carrier) <= 0
	default:
		return false
	}
}

// CheckUpperBoundLimits reports whether item is priced within the bound of
// q derived from minFare. It has no side effects.
func (d *Diversifier) CheckUpperBoundLimits(item *core.Item, minFare float64, q core.Queue) bool {
	if q == core.QueueNone {
		return true
	}

	return item.Total <= d.UpperBound(minFare, q, item.Nonstop())
}

// UpperBound returns minFare × the factor of q. A zero minFare yields zero.
func (d *Diversifier) UpperBound(minFare float64, q core.Queue, nonstop bool) float64 {
	switch {
	case q.LowFare():
		return minFare * d.cfg.UpperBoundLFS
	case nonstop:
		return minFare * d.cfg.UpperBoundNonstop
	default:
		return minFare * d.cfg.UpperBoundNotNonstop
	}
}

// MustPriceLimit is the number of items a must-price pass may pick:
// min(passMax, RequestedSolutions − LowFareRequired − picked), never below 0.
func (d *Diversifier) MustPriceLimit(picked, passMax int) int {
	left := d.cfg.RequestedSolutions - d.cfg.LowFareRequired - picked
	if passMax < left {
		left = passMax
	}
	if left < 0 {
		return 0
	}

	return left
}

// LowFareLimit is the number of items a low-fare pass may pick. The online
// passes are capped by the online share of the request.
func (d *Diversifier) LowFareLimit(picked int, q core.Queue) int {
	left := d.cfg.RequestedSolutions - picked
	if q.Online() {
		if m := d.cfg.onlineMaximum(); m < left {
			left = m
		}
	}
	if left < 0 {
		return 0
	}

	return left
}

// Limit returns the item budget of pass q given the items already picked.
func (d *Diversifier) Limit(q core.Queue, picked int) int {
	switch q {
	case core.MPNonstopOnline:
		return d.MustPriceLimit(picked, d.cfg.MustPriceNonstopOnline)
	case core.MPOutNonstopOnline:
		return d.MustPriceLimit(picked, d.cfg.MustPriceOutNonstopOnline)
	case core.MPNonstopInterline:
		return d.MustPriceLimit(picked, d.cfg.MustPriceNonstopInterline)
	case core.MPOutNonstopInterline:
		return d.MustPriceLimit(picked, d.cfg.MustPriceOutNonstopInterline)
	case core.MPSingleStopOnline:
		return d.MustPriceLimit(picked, d.cfg.MustPriceSingleStopOnline)
	case core.MPRemainingOnline:
		return d.MustPriceLimit(picked, d.cfg.MustPriceOnline)
	case core.MPRemaining:
		return d.MustPriceLimit(picked, d.cfg.MustPriceInterline)
	case core.LFSOnline, core.LFSOnlineByCarrier, core.LFSRemaining:
		return d.LowFareLimit(picked, q)
	default:
		return 0
	}
}

// RecalcOnlineLimits replaces every carrier's online low-fare limit with its
// share of the online maximum, proportional to its outbound flights.
func (d *Diversifier) RecalcOnlineLimits() {
	onlineMax := d.cfg.onlineMaximum()
	for carrier, n := range d.outPerCarrier {
		limit := 0
		if d.totalOutbound > 0 {
			limit = int(float64(n) / float64(d.totalOutbound) * float64(onlineMax))
		}
		d.onlineLimitLFS[carrier] = limit
	}
}

// FlightMustPrice returns the must-price reuse budget left for c.
func (d *Diversifier) FlightMustPrice(c *core.Candidate) int {
	return d.flightBudgetMP(c)
}

// CarrierMustPrice returns the online or interline must-price budget left
// for carrier on leg.
func (d *Diversifier) CarrierMustPrice(leg core.Leg, carrier string, online bool) int {
	if online {
		return d.carrierBudget(d.onlineMP, carrierKey{leg, carrier}, d.cfg.carrierShare(d.cfg.MustPriceOnline))
	}

	return d.carrierBudget(d.interlineMP, carrierKey{leg, carrier}, d.cfg.carrierShare(d.cfg.MustPriceInterline))
}

// FlightLowFare returns the low-fare reuse budget left for c.
func (d *Diversifier) FlightLowFare(c *core.Candidate) int {
	return d.flightBudgetLFS(c)
}

// CarrierLowFare returns the low-fare carrier budget left for carrier on leg.
func (d *Diversifier) CarrierLowFare(leg core.Leg, carrier string) int {
	return d.carrierBudget(d.carrierLFS, carrierKey{leg, carrier}, d.carrierShareLFS())
}

// OnlineLowFare returns the online limit of carrier and how many online
// low-fare items it already has.
func (d *Diversifier) OnlineLowFare(carrier string) (limit, count int) {
	return d.onlineLimit(carrier), d.onlineCountLFS[carrier]
}

// mustPrice checks the flight budget of every leg and the online or
// interline carrier budget of every leg's governing carrier.
func (d *Diversifier) mustPrice(legs []*core.Candidate, online bool) bool {
	// 1) Every budget must have room.
	for _, c := range legs {
		if d.flightBudgetMP(c) <= 0 || d.CarrierMustPrice(c.Leg, c.GoverningCarrier, online) <= 0 {
			return false
		}
	}

	// 2) Consume.
	carriers := d.interlineMP
	if online {
		carriers = d.onlineMP
	}
	for _, c := range legs {
		d.flightMP[flightKey{c.Leg, c.ID}]--
		carriers[carrierKey{c.Leg, c.GoverningCarrier}]--
	}

	return true
}

// lowFareOnline checks the flight budgets and the online count of the
// outbound carrier.
func (d *Diversifier) lowFareOnline(legs []*core.Candidate) bool {
	carrier := legs[0].GoverningCarrier
	for _, c := range legs {
		if d.flightBudgetLFS(c) <= 0 {
			return false
		}
	}
	if d.onlineCountLFS[carrier] >= d.onlineLimit(carrier) {
		return false
	}

	for _, c := range legs {
		d.flightLFS[flightKey{c.Leg, c.ID}]--
	}
	d.onlineCountLFS[carrier]++

	return true
}

// lowFareRemaining checks the flight budgets and every leg's carrier budget.
func (d *Diversifier) lowFareRemaining(legs []*core.Candidate) bool {
	for _, c := range legs {
		if d.flightBudgetLFS(c) <= 0 || d.CarrierLowFare(c.Leg, c.GoverningCarrier) <= 0 {
			return false
		}
	}

	for _, c := range legs {
		d.flightLFS[flightKey{c.Leg, c.ID}]--
		d.carrierLFS[carrierKey{c.Leg, c.GoverningCarrier}]--
	}

	return true
}

func (d *Diversifier) flightBudgetMP(c *core.Candidate) int {
	k := flightKey{c.Leg, c.ID}
	v, ok := d.flightMP[k]
	if !ok {
		v = d.cfg.FlightReuseLimit
		d.flightMP[k] = v
	}

	return v
}

func (d *Diversifier) flightBudgetLFS(c *core.Candidate) int {
	k := flightKey{c.Leg, c.ID}
	v, ok := d.flightLFS[k]
	if !ok {
		v = d.cfg.HighMaxPerOption
		if d.AVS(c.GoverningCarrier) {
			v = d.cfg.LowMaxPerOption
		}
		d.flightLFS[k] = v
	}

	return v
}

func (d *Diversifier) carrierBudget(m map[carrierKey]int, k carrierKey, initial int) int {
	v, ok := m[k]
	if !ok {
		v = initial
		m[k] = v
	}

	return v
}

func (d *Diversifier) carrierShareLFS() int {
	return int((d.cfg.ESVPercent/100 + 0.1) * float64(d.cfg.RequestedSolutions))
}

func (d *Diversifier) onlineLimit(carrier string) int {
	v, ok := d.onlineLimitLFS[carrier]
	if !ok {
		v = d.cfg.MinOnlinePerCarrier
		d.onlineLimitLFS[carrier] = v
	}

	return v
}
