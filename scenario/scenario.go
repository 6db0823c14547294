package scenario

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/mileage"
)

// Decode reads a document, rejecting unknown keys.
func Decode(data []byte) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("scenario: decode: %w", err)
	}

	return doc, nil
}

// Parse decodes and builds a scenario.
func Parse(data []byte) (*Scenario, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return doc.Build()
}

// ParseFile reads path and parses it. A document without id is named
// after the file.
func ParseFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.ID == "" {
		doc.ID = path
	}
	sc, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sc, nil
}

// Validate checks the document structure without building candidates.
func (d Document) Validate() error {
	if len(d.Outbound) == 0 {
		return ErrNoOutbound
	}
	if len(d.Airports) > 0 && len(d.Mileage) > 0 {
		return ErrMileage
	}
	for _, leg := range []struct {
		name    string
		flights []Flight
	}{{"outbound", d.Outbound}, {"inbound", d.Inbound}} {
		seen := make(map[int]struct{}, len(leg.flights))
		for i, f := range leg.flights {
			if _, ok := seen[f.ID]; ok {
				return fmt.Errorf("%w: %s[%d] id %d", ErrDuplicateID, leg.name, i, f.ID)
			}
			seen[f.ID] = struct{}{}
			if len(f.Segments) == 0 {
				return fmt.Errorf("%w: %s[%d] id %d", ErrNoSegments, leg.name, i, f.ID)
			}
			for j, fare := range f.Fares {
				for k, c := range fare.Components {
					if c.Amount < 0 {
						return fmt.Errorf("%w: %s[%d].fares[%d].components[%d]", ErrBadAmount, leg.name, i, j, k)
					}
				}
			}
		}
	}

	return nil
}

// Build validates the document and converts it into a Scenario.
func (d Document) Build() (*Scenario, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	sc := &Scenario{}
	sc.Request.ID = d.ID
	sc.Request.Requested = d.Requested

	var err error
	if sc.Request.Outbound, err = buildLeg(core.Outbound, d.Outbound); err != nil {
		return nil, err
	}
	if sc.Request.Inbound, err = buildLeg(core.Inbound, d.Inbound); err != nil {
		return nil, err
	}

	switch {
	case len(d.Airports) > 0:
		points := make(map[string]mileage.Point, len(d.Airports))
		for code, a := range d.Airports {
			points[strings.ToUpper(code)] = mileage.Point{Lat: a.Lat, Lon: a.Lon}
		}
		sc.Mileage = mileage.NewGreatCircle(points)
	case len(d.Mileage) > 0:
		t := mileage.NewTable()
		for _, p := range d.Mileage {
			t.Set(p.From, p.To, p.Miles)
		}
		sc.Mileage = t
	}

	return sc, nil
}

func buildLeg(leg core.Leg, flights []Flight) ([]*core.Candidate, error) {
	if len(flights) == 0 {
		return nil, nil
	}
	out := make([]*core.Candidate, 0, len(flights))
	for i, f := range flights {
		c, err := buildCandidate(leg, f)
		if err != nil {
			return nil, fmt.Errorf("%s[%d] id %d: %w", legName(leg), i, f.ID, err)
		}
		out = append(out, c)
	}

	return out, nil
}

func buildCandidate(leg core.Leg, f Flight) (*core.Candidate, error) {
	c := &core.Candidate{
		ID:               f.ID,
		Leg:              leg,
		GoverningCarrier: f.Governing,
		Penalty:          f.Penalty,
		Segments:         make([]core.Segment, 0, len(f.Segments)),
	}
	for i, s := range f.Segments {
		seg, err := buildSegment(s)
		if err != nil {
			return nil, fmt.Errorf("segments[%d]: %w", i, err)
		}
		c.Segments = append(c.Segments, seg)
	}
	if c.GoverningCarrier == "" {
		for _, s := range c.Segments {
			if s.Air() {
				c.GoverningCarrier = s.MarketingCarrier
				break
			}
		}
	}

	for i, fare := range f.Fares {
		con, err := buildConstruction(c, fare)
		if err != nil {
			return nil, fmt.Errorf("fares[%d]: %w", i, err)
		}
		c.Constructions = append(c.Constructions, con)
	}

	return c, nil
}

func buildSegment(s Segment) (core.Segment, error) {
	kind, err := core.ParseSegmentKind(s.Kind)
	if err != nil {
		return core.Segment{}, err
	}
	dep, err := parseTime(s.Dep)
	if err != nil {
		return core.Segment{}, err
	}
	arr, err := parseTime(s.Arr)
	if err != nil {
		return core.Segment{}, err
	}
	if arr.Before(dep) {
		return core.Segment{}, fmt.Errorf("%w: %s-%s arrives before departure", ErrBadTime, s.From, s.To)
	}
	op := s.Operating
	if op == "" {
		op = s.Carrier
	}

	return core.Segment{
		Kind:             kind,
		Origin:           s.From,
		Destination:      s.To,
		MarketingCarrier: s.Carrier,
		OperatingCarrier: op,
		FlightNumber:     s.Flight,
		BookingCode:      s.Class,
		Departure:        dep,
		Arrival:          arr,
	}, nil
}

func buildConstruction(c *core.Candidate, f Fare) (core.Construction, error) {
	kind, err := core.ParseFareKind(f.Kind)
	if err != nil {
		return core.Construction{}, err
	}
	comb, err := core.ParseCombinationType(f.Combination)
	if err != nil {
		return core.Construction{}, err
	}
	con := core.Construction{Kind: kind, Combination: comb, Components: make([]core.FareComponent, 0, len(f.Components))}
	for _, fc := range f.Components {
		date := c.Departure()
		if fc.Date != "" {
			if date, err = parseTime(fc.Date); err != nil {
				return core.Construction{}, err
			}
		}
		carrier := fc.Carrier
		if carrier == "" {
			carrier = c.GoverningCarrier
		}
		con.Components = append(con.Components, core.FareComponent{
			Origin:      fc.From,
			Destination: fc.To,
			Carrier:     carrier,
			FareClass:   fc.Class,
			Amount:      fc.Amount,
			Direction:   core.GlobalDirection(fc.Direction),
			TravelDate:  date,
		})
	}

	return con, nil
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, s)
}

func legName(l core.Leg) string {
	if l == core.Inbound {
		return "inbound"
	}

	return "outbound"
}
