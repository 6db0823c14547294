package utility

import (
	"math"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

const minutesPerDay = 24 * 60

// LegUtility scores one leg of it with c. The leg must be present.
func LegUtility(it *core.Item, leg core.Leg, c Coefficients) float64 {
	o := it.Outbound
	if leg == core.Inbound {
		o = it.Inbound
	}
	cand := o.Candidate

	// 1) Time-of-day harmonics.
	dep := cand.Departure()
	f := float64(dep.Hour()*60+dep.Minute()) / minutesPerDay
	var u float64
	for k := 0; k < 3; k++ {
		angle := float64(k+1) * 2 * math.Pi * f
		u += c.TimeOfDay[2*k]*math.Sin(angle) + c.TimeOfDay[2*k+1]*math.Cos(angle)
	}

	// 2) Stops × elapsed time.
	bucket := cand.Stops()
	if bucket > 2 {
		bucket = 2
	}
	if bucket < 0 {
		bucket = 0
	}
	u += c.Stops[bucket] * float64(cand.ElapsedMinutes())

	// 3) Fare with interline penalties.
	amount := o.Total + interlinePenalty(it, cand, c)
	if amount > 0 {
		u += c.Fare * math.Log(amount/100)
	}

	return u
}

// interlinePenalty is ComplexInterline for a leg that is not online, or
// SimpleInterline when both legs are online on different carriers.
func interlinePenalty(it *core.Item, cand *core.Candidate, c Coefficients) float64 {
	if !cand.Online() {
		return c.ComplexInterline
	}
	if it.Inbound == nil {
		return 0
	}
	out, in := it.Outbound.Candidate, it.Inbound.Candidate
	if out.Online() && in.Online() && out.OnlineCarrier() != in.OnlineCarrier() {
		return c.SimpleInterline
	}

	return 0
}

// Score fills it.Utility and it.AggregateUtility and returns the aggregate.
func Score(it *core.Item, m Model) float64 {
	it.Utility = [core.NumLegs]float64{}
	it.Utility[core.Outbound] = LegUtility(it, core.Outbound, m.Outbound)
	if it.Inbound != nil {
		it.Utility[core.Inbound] = LegUtility(it, core.Inbound, m.Inbound)
	}
	it.AggregateUtility = it.Utility[core.Outbound] + it.Utility[core.Inbound]

	return it.AggregateUtility
}
