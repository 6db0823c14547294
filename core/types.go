package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the parsing helpers of this package.
var (
	// ErrUnknownFareKind indicates an unrecognised fare-construction code.
	ErrUnknownFareKind = errors.New("core: unknown fare kind")

	// ErrUnknownCombination indicates an unrecognised combination-type code.
	ErrUnknownCombination = errors.New("core: unknown combination type")

	// ErrUnknownSegmentKind indicates an unrecognised segment kind.
	ErrUnknownSegmentKind = errors.New("core: unknown segment kind")
)

// Leg identifies the direction of travel a Candidate belongs to.
type Leg int

const (
	// Outbound is the first leg of every search.
	Outbound Leg = iota

	// Inbound is the optional return leg.
	Inbound
)

// NumLegs is the maximum number of legs a search can combine.
const NumLegs = 2

// String returns "out" or "in".
func (l Leg) String() string {
	if l == Inbound {
		return "in"
	}

	return "out"
}

// SegmentKind tags a Segment as flown or surface travel.
type SegmentKind int

const (
	// SegmentAir is a flown segment operated by a carrier.
	SegmentAir SegmentKind = iota

	// SegmentSurface is an unflown (ARUNK) sector between two points.
	SegmentSurface
)

// String returns "air" or "surface".
func (k SegmentKind) String() string {
	switch k {
	case SegmentAir:
		return "air"
	case SegmentSurface:
		return "surface"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// ParseSegmentKind maps "air"/"surface" (case-insensitive, empty = air).
func ParseSegmentKind(s string) (SegmentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "air":
		return SegmentAir, nil
	case "surface", "arunk":
		return SegmentSurface, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSegmentKind, s)
	}
}

// FareKind is the fare-construction type of a priced option.
type FareKind int

const (
	// OneWay fares price each leg independently.
	OneWay FareKind = iota

	// RoundTrip fares are halves of a round-trip pricing unit.
	RoundTrip

	// OpenJaw fares are halves of an open-jaw pricing unit.
	OpenJaw

	// CircleTrip fares are parts of a circle-trip pricing unit.
	CircleTrip
)

// NumFareKinds is the number of FareKind values.
const NumFareKinds = 4

// FareKinds lists every FareKind in declaration order.
var FareKinds = [NumFareKinds]FareKind{OneWay, RoundTrip, OpenJaw, CircleTrip}

// String returns the two-letter code of the kind.
func (k FareKind) String() string {
	switch k {
	case OneWay:
		return "OW"
	case RoundTrip:
		return "RT"
	case OpenJaw:
		return "OJ"
	case CircleTrip:
		return "CT"
	default:
		return fmt.Sprintf("FareKind(%d)", int(k))
	}
}

// ParseFareKind accepts the two-letter codes and the long names.
func ParseFareKind(s string) (FareKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OW", "ONEWAY", "ONE-WAY":
		return OneWay, nil
	case "RT", "ROUNDTRIP", "ROUND-TRIP":
		return RoundTrip, nil
	case "OJ", "OPENJAW", "OPEN-JAW":
		return OpenJaw, nil
	case "CT", "CIRCLETRIP", "CIRCLE-TRIP":
		return CircleTrip, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFareKind, s)
	}
}

// CombinationType tags how the components of one leg take part in an
// open-jaw pricing unit.
type CombinationType int

const (
	// CombinationEndOnEnd: components are combined end-on-end; no open-jaw
	// pricing unit spans this leg.
	CombinationEndOnEnd CombinationType = iota

	// CombinationOpenJawFirst: the first component belongs to the open-jaw
	// pricing unit, the others are connecting fares.
	CombinationOpenJawFirst

	// CombinationOpenJawLast: the last component belongs to the open-jaw
	// pricing unit, the others are connecting fares.
	CombinationOpenJawLast

	// CombinationMirrored: every component of the leg is mirrored by a
	// component of the opposite leg.
	CombinationMirrored
)

// String returns the short code of the combination type.
func (c CombinationType) String() string {
	switch c {
	case CombinationEndOnEnd:
		return "EOE"
	case CombinationOpenJawFirst:
		return "OJF"
	case CombinationOpenJawLast:
		return "OJL"
	case CombinationMirrored:
		return "MIR"
	default:
		return fmt.Sprintf("CombinationType(%d)", int(c))
	}
}

// ParseCombinationType accepts the short codes returned by String.
// The empty string maps to CombinationEndOnEnd.
func ParseCombinationType(s string) (CombinationType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "EOE":
		return CombinationEndOnEnd, nil
	case "OJF":
		return CombinationOpenJawFirst, nil
	case "OJL":
		return CombinationOpenJawLast, nil
	case "MIR":
		return CombinationMirrored, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCombination, s)
	}
}
