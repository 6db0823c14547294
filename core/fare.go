package core

import "time"

// GlobalDirection is the ATPCO global indicator of a fare component
// (e.g. "AT", "PA", "WH"). It is passed through to mileage lookups.
type GlobalDirection string

// FareComponent is one externally priced fare component.
type FareComponent struct {
	Origin      string
	Destination string
	Carrier     string
	FareClass   string
	Amount      float64
	Direction   GlobalDirection
	TravelDate  time.Time
}

// Construction is one viable fare construction of a Candidate.
type Construction struct {
	Kind        FareKind
	Combination CombinationType
	Components  []FareComponent
}

// Amount is the sum of the component amounts.
func (c Construction) Amount() float64 {
	var sum float64
	for _, fc := range c.Components {
		sum += fc.Amount
	}

	return sum
}
