// Package scenario reads search requests from YAML documents.
//
// A document lists the flights of each leg together with their priced fare
// constructions, plus what the engine needs around them:
//
//	id: JFK-LHR
//	requested: 20
//	airports:                     # great-circle mileage, optional
//	  JFK: {lat: 40.64, lon: -73.78}
//	outbound:
//	  - id: 1
//	    segments:
//	      - {from: JFK, to: LHR, carrier: AA, flight: 100, dep: "2026-06-01T08:00:00Z", arr: "2026-06-01T15:00:00Z"}
//	    fares:
//	      - kind: OW
//	        components: [{from: JFK, to: LHR, class: Y, amount: 420}]
//
// Explicit city-pair distances may be given under mileage instead of
// airports. Without either, combinations that need a mileage check are
// rejected by the search.
//
// Defaults:
//
//	– governing carrier: marketing carrier of the first flown segment.
//	– segment operating carrier: the marketing carrier.
//	– component carrier: the flight's governing carrier.
//	– component travel date: departure of the flight.
//
// Errors (sentinel):
//
//	– ErrNoOutbound    if the outbound list is empty.
//	– ErrDuplicateID   if two flights of one leg share an id.
//	– ErrNoSegments    if a flight has no segment.
//	– ErrBadTime       if a time does not parse as RFC 3339 or a segment
//	                   arrives before it departs.
//	– ErrBadAmount     if a fare component amount is negative.
//	– ErrMileage       if both airports and mileage are given.
//
// Unknown fare kinds, combination types and segment kinds wrap the core
// package's sentinels.
package scenario

import (
	"errors"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
)

// Sentinel errors.
var (
	// ErrNoOutbound indicates a document without outbound flights.
	ErrNoOutbound = errors.New("scenario: no outbound flights")

	// ErrDuplicateID indicates a flight id used twice on one leg.
	ErrDuplicateID = errors.New("scenario: duplicate flight id")

	// ErrNoSegments indicates a flight without segments.
	ErrNoSegments = errors.New("scenario: flight has no segments")

	// ErrBadTime indicates an unparsable or inverted segment time.
	ErrBadTime = errors.New("scenario: bad segment time")

	// ErrBadAmount indicates a negative fare amount.
	ErrBadAmount = errors.New("scenario: negative fare amount")

	// ErrMileage indicates conflicting mileage sources.
	ErrMileage = errors.New("scenario: airports and mileage are mutually exclusive")
)

// Document is the YAML form of a scenario.
type Document struct {
	ID        string             `yaml:"id"`
	Requested int                `yaml:"requested,omitempty"`
	Airports  map[string]Airport `yaml:"airports,omitempty"`
	Mileage   []CityPair         `yaml:"mileage,omitempty"`
	Outbound  []Flight           `yaml:"outbound"`
	Inbound   []Flight           `yaml:"inbound,omitempty"`
}

// Airport holds coordinates in decimal degrees.
type Airport struct {
	Lat float64 `yaml:"lat"`
	Lon float64 `yaml:"lon"`
}

// CityPair is one explicit distance.
type CityPair struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Miles int    `yaml:"miles"`
}

// Flight is one scheduling option of a leg.
type Flight struct {
	ID        int       `yaml:"id"`
	Governing string    `yaml:"governing,omitempty"`
	Penalty   float64   `yaml:"penalty,omitempty"`
	Segments  []Segment `yaml:"segments"`
	Fares     []Fare    `yaml:"fares"`
}

// Segment is one travel segment. Kind is "air" (default) or "surface".
type Segment struct {
	Kind      string `yaml:"kind,omitempty"`
	From      string `yaml:"from"`
	To        string `yaml:"to"`
	Carrier   string `yaml:"carrier,omitempty"`
	Operating string `yaml:"operating,omitempty"`
	Flight    int    `yaml:"flight,omitempty"`
	Class     string `yaml:"class,omitempty"`
	Dep       string `yaml:"dep"`
	Arr       string `yaml:"arr"`
}

// Fare is one priced construction of a flight.
type Fare struct {
	Kind        string      `yaml:"kind"`
	Combination string      `yaml:"combination,omitempty"`
	Components  []Component `yaml:"components"`
}

// Component is one fare component.
type Component struct {
	From      string  `yaml:"from"`
	To        string  `yaml:"to"`
	Carrier   string  `yaml:"carrier,omitempty"`
	Class     string  `yaml:"class,omitempty"`
	Amount    float64 `yaml:"amount"`
	Direction string  `yaml:"direction,omitempty"`
	Date      string  `yaml:"date,omitempty"`
}

// Scenario is a parsed document ready for an engine.
type Scenario struct {
	Request esv.Request
	// Mileage is nil when the document carries no distances.
	Mileage lattice.MileageLookup
}
