package vis

import (
	"fmt"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// Beta directions.
const (
	DirectionOutbound = "O"
	DirectionInbound  = "I"
)

// Advance purchase flags: departure within advanceDays of ticketing is
// close-in, anything later is far.
const (
	AdvanceClose = "C"
	AdvanceFar   = "F"
)

const advanceDays = 14

// mileageBands are the upper bounds of the mileage bands; anything at or
// above the last one falls into topBand.
var mileageBands = []int{500, 1000, 1500, 2000, 2500, 3000}

const topBand = 4000

// BetaEntry is one row of the coefficient table.
type BetaEntry struct {
	TimeDiff        int       `mapstructure:"time_diff" yaml:"time_diff"`
	Mileage         int       `mapstructure:"mileage" yaml:"mileage"`
	Direction       string    `mapstructure:"direction" yaml:"direction"`
	AdvancePurchase string    `mapstructure:"ap" yaml:"ap"`
	Beta            []float64 `mapstructure:"beta" yaml:"beta"`
}

func (b BetaEntry) validate() error {
	if b.Direction != DirectionOutbound && b.Direction != DirectionInbound {
		return fmt.Errorf("%w: direction %q", ErrBadBeta, b.Direction)
	}
	if b.AdvancePurchase != AdvanceClose && b.AdvancePurchase != AdvanceFar {
		return fmt.Errorf("%w: advance purchase %q", ErrBadBeta, b.AdvancePurchase)
	}
	_, err := utility.FromBeta(b.Beta)

	return err
}

// Market is the key the coefficient table is searched with.
type Market struct {
	// TimeDiff is the UTC offset of the origin minus that of the
	// destination, in whole hours.
	TimeDiff int
	// Mileage is the mileage band of the trip.
	Mileage int
	// Miles is the distance the band was derived from.
	Miles int
	// AdvancePurchase is AdvanceClose or AdvanceFar.
	AdvancePurchase string
}

// MileageBand rounds miles up to its band.
func MileageBand(miles int) int {
	for _, b := range mileageBands {
		if miles < b {
			return b
		}
	}

	return topBand
}

// AdvancePurchase classifies a departure against the ticketing date.
func AdvancePurchase(departure, ticketing time.Time) string {
	if int(departure.Sub(ticketing).Hours())/24 < advanceDays {
		return AdvanceClose
	}

	return AdvanceFar
}

// UTCOffsetDiff is the UTC offset at departure from the origin minus the
// offset at arrival at the destination, in whole hours.
func UTCOffsetDiff(c *core.Candidate) int {
	_, dep := c.Departure().Zone()
	_, arr := c.Arrival().Zone()

	return (dep - arr) / 3600
}

// MarketOf builds the market key of a request from its first outbound
// candidate. A missing or failing lookup leaves the distance at zero.
func MarketOf(c *core.Candidate, miles lattice.MileageLookup, ticketing time.Time) Market {
	m := Market{TimeDiff: UTCOffsetDiff(c), AdvancePurchase: AdvancePurchase(c.Departure(), ticketing)}
	if miles != nil {
		if d, err := miles.Mileage(c.Origin(), c.Destination(), "", c.Departure()); err == nil {
			m.Miles = d
		}
	}
	m.Mileage = MileageBand(m.Miles)

	return m
}

// Beta returns the vector of market m and direction dir. An exact key wins;
// otherwise the entry with a zero time difference and mileage of the same
// direction and advance purchase flag is used.
func (c Config) Beta(m Market, dir string) ([]float64, bool) {
	var fallback []float64
	for _, b := range c.Betas {
		if b.Direction != dir || b.AdvancePurchase != m.AdvancePurchase || len(b.Beta) != utility.BetaLen {
			continue
		}
		if b.TimeDiff == m.TimeDiff && b.Mileage == m.Mileage {
			return b.Beta, true
		}
		if b.TimeDiff == 0 && b.Mileage == 0 && fallback == nil {
			fallback = b.Beta
		}
	}

	return fallback, fallback != nil
}

// Model returns the utility model of market m. A leg without a table entry
// keeps the coefficients of Config.Utility.
func (c Config) Model(m Market) (model utility.Model, found [core.NumLegs]bool) {
	model = c.Utility
	for leg, dir := range [core.NumLegs]string{DirectionOutbound, DirectionInbound} {
		beta, ok := c.Beta(m, dir)
		if !ok {
			continue
		}
		co, err := utility.FromBeta(beta)
		if err != nil {
			continue
		}
		if core.Leg(leg) == core.Inbound {
			model.Inbound = co
		} else {
			model.Outbound = co
		}
		found[leg] = true
	}

	return model, found
}
