package diag

import (
	"fmt"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// Reason is the outcome of one diagnostic record.
type Reason int

const (
	// Accepted marks an item that was emitted.
	Accepted Reason = iota

	// RejectTripType: outbound/inbound fare kinds do not resolve to one trip type.
	RejectTripType

	// RejectDuplicate: the combination was already generated by this search.
	RejectDuplicate

	// RejectConnectionTime: inbound departs too soon after outbound arrival.
	RejectConnectionTime

	// RejectFareConstruction: round-trip/circle-trip/open-jaw legality failed.
	RejectFareConstruction

	// RejectMileageUnavailable: a ground-distance lookup failed.
	RejectMileageUnavailable

	// RejectInterline: interline ticketing eligibility failed.
	RejectInterline

	// RejectAlreadyPicked: an earlier pass already picked the combination.
	RejectAlreadyPicked

	// RejectStops: the number of stops does not fit the queue.
	RejectStops

	// RejectNotOnline: an interline item was offered to an online queue.
	RejectNotOnline

	// RejectNotInterline: an online item was offered to an interline queue.
	RejectNotInterline

	// RejectRestrictedCarrier: the fare carriers break a carrier restriction.
	RejectRestrictedCarrier

	// RejectDiversity: a diversity budget is exhausted.
	RejectDiversity

	// RejectUpperBound: the item is priced above the queue's upper bound.
	RejectUpperBound

	// Dominated marks a flight removed by the dominance filter.
	Dominated
)

var reasonCodes = map[Reason]string{
	Accepted:                 "DIVC",
	RejectTripType:           "TRIP",
	RejectDuplicate:          "DUPL",
	RejectConnectionTime:     "MCT",
	RejectFareConstruction:   "CAT10",
	RejectMileageUnavailable: "MILE",
	RejectInterline:          "ITIN",
	RejectAlreadyPicked:      "DIV1",
	RejectStops:              "DIV2",
	RejectNotOnline:          "DIV3",
	RejectNotInterline:       "DIV4",
	RejectRestrictedCarrier:  "DIV5",
	RejectDiversity:          "DIV6",
	RejectUpperBound:         "DIV7",
	Dominated:                "DOM",
}

var reasonTexts = map[Reason]string{
	Accepted:                 "accepted",
	RejectTripType:           "incompatible trip types",
	RejectDuplicate:          "already generated",
	RejectConnectionTime:     "minimum connection time",
	RejectFareConstruction:   "fare construction not legal",
	RejectMileageUnavailable: "mileage unavailable",
	RejectInterline:          "interline not valid",
	RejectAlreadyPicked:      "already picked",
	RejectStops:              "number of stops",
	RejectNotOnline:          "not online",
	RejectNotInterline:       "not interline",
	RejectRestrictedCarrier:  "restricted carrier",
	RejectDiversity:          "diversity limit",
	RejectUpperBound:         "upper bound",
	Dominated:                "dominated",
}

// Code returns the short diagnostic code of the reason.
func (r Reason) Code() string {
	if c, ok := reasonCodes[r]; ok {
		return c
	}

	return "????"
}

// String returns a short description of the reason.
func (r Reason) String() string {
	if s, ok := reasonTexts[r]; ok {
		return s
	}

	return fmt.Sprintf("Reason(%d)", int(r))
}

// Record is one diagnostic observation.
type Record struct {
	Queue  core.Queue
	ID     core.CombinationID
	Total  float64
	Reason Reason
}

// Accepted reports whether the record describes an emitted item.
func (r Record) Accepted() bool { return r.Reason == Accepted }

// String formats the record as one line, e.g.
// "Q01 12/7 AMT=250.00 DIVC accepted".
func (r Record) String() string {
	return fmt.Sprintf("Q%s %s AMT=%.2f %s %s", r.Queue.Code(), r.ID, r.Total, r.Reason.Code(), r.Reason)
}

// Sink receives diagnostic records.
type Sink interface {
	Record(r Record)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Record)

// Record calls f(r).
func (f SinkFunc) Record(r Record) { f(r) }

type nop struct{}

func (nop) Record(Record) {}

// Nop is a Sink that discards every record.
var Nop Sink = nop{}

type multi []Sink

func (m multi) Record(r Record) {
	for _, s := range m {
		s.Record(r)
	}
}

// Multi returns a Sink that forwards every record to each non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return Nop
	}

	return out
}

// OrNop returns s, or Nop when s is nil.
func OrNop(s Sink) Sink {
	if s == nil {
		return Nop
	}

	return s
}
