package core

import (
	"math"
	"strings"
	"time"
)

// Segment is one travel segment of a Candidate.
type Segment struct {
	Kind             SegmentKind
	Origin           string
	Destination      string
	MarketingCarrier string
	OperatingCarrier string
	FlightNumber     int
	BookingCode      string
	Departure        time.Time
	Arrival          time.Time
}

// Air reports whether the segment is flown.
func (s Segment) Air() bool { return s.Kind == SegmentAir }

// Candidate is one scheduling option (SOP) for one leg.
//
// ID must be unique within its leg; it is the "original option id" that
// CombinationID is derived from and the key diversity budgets are kept under.
type Candidate struct {
	ID               int
	Leg              Leg
	Segments         []Segment
	GoverningCarrier string
	Penalty          float64
	Constructions    []Construction
	Dominated        bool
}

// Origin returns the origin of the first segment.
func (c *Candidate) Origin() string {
	if len(c.Segments) == 0 {
		return ""
	}

	return c.Segments[0].Origin
}

// Destination returns the destination of the last segment.
func (c *Candidate) Destination() string {
	if len(c.Segments) == 0 {
		return ""
	}

	return c.Segments[len(c.Segments)-1].Destination
}

// Departure returns the departure time of the first segment.
func (c *Candidate) Departure() time.Time {
	if len(c.Segments) == 0 {
		return time.Time{}
	}

	return c.Segments[0].Departure
}

// Arrival returns the arrival time of the last segment.
func (c *Candidate) Arrival() time.Time {
	if len(c.Segments) == 0 {
		return time.Time{}
	}

	return c.Segments[len(c.Segments)-1].Arrival
}

// Elapsed is the total travel time from first departure to last arrival.
func (c *Candidate) Elapsed() time.Duration {
	return c.Arrival().Sub(c.Departure())
}

// ElapsedMinutes is Elapsed expressed in whole minutes.
func (c *Candidate) ElapsedMinutes() int {
	return int(c.Elapsed() / time.Minute)
}

// Stops is the number of intermediate points between flown segments.
func (c *Candidate) Stops() int {
	n := 0
	for _, s := range c.Segments {
		if s.Air() {
			n++
		}
	}
	if n == 0 {
		return 0
	}

	return n - 1
}

// Nonstop reports whether the candidate is a single flown segment.
func (c *Candidate) Nonstop() bool { return c.Stops() == 0 }

// OnlineCarrier returns the marketing carrier shared by every flown segment,
// or "" when the candidate is interline.
func (c *Candidate) OnlineCarrier() string {
	carrier := ""
	for _, s := range c.Segments {
		if !s.Air() {
			continue
		}
		if carrier == "" {
			carrier = s.MarketingCarrier
			continue
		}
		if s.MarketingCarrier != carrier {
			return ""
		}
	}

	return carrier
}

// Online reports whether every flown segment is marketed by one carrier.
func (c *Candidate) Online() bool { return c.OnlineCarrier() != "" }

// Carriers returns the distinct marketing carriers in travel order.
func (c *Candidate) Carriers() []string {
	out := make([]string, 0, len(c.Segments))
	seen := make(map[string]struct{}, len(c.Segments))
	for _, s := range c.Segments {
		if !s.Air() {
			continue
		}
		if _, ok := seen[s.MarketingCarrier]; ok {
			continue
		}
		seen[s.MarketingCarrier] = struct{}{}
		out = append(out, s.MarketingCarrier)
	}

	return out
}

// Signature is the carrier sequence of the flown segments, e.g. "AA-AA-BA".
// Two candidates with equal signatures are comparable for dominance.
func (c *Candidate) Signature() string {
	parts := make([]string, 0, len(c.Segments))
	for _, s := range c.Segments {
		if s.Air() {
			parts = append(parts, s.MarketingCarrier)
		}
	}

	return strings.Join(parts, "-")
}

// Cheapest returns the lowest total of the constructions of kind k, or
// +Inf when the candidate has none.
func (c *Candidate) Cheapest(k FareKind) float64 {
	best := math.Inf(1)
	for i := range c.Constructions {
		if c.Constructions[i].Kind != k {
			continue
		}
		if a := c.Constructions[i].Amount(); a < best {
			best = a
		}
	}

	return best
}
