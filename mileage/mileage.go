// Package mileage provides ground-distance lookups for fare-construction
// legality checks.
//
// Two implementations are provided:
//
//   - Table        – explicit, symmetric city-pair distances.
//   - GreatCircle  – distances computed from airport coordinates with the
//     haversine formula, in statute miles, rounded to the nearest mile.
//
// Both ignore the global direction and travel date; they are accepted so the
// types satisfy the lattice.MileageLookup contract unchanged.
package mileage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// ErrUnknownPoint indicates that a city or airport is not known to the lookup.
var ErrUnknownPoint = errors.New("mileage: unknown point")

// earthRadiusMiles is the mean Earth radius in statute miles.
const earthRadiusMiles = 3958.8

// Table is a symmetric city-pair distance table.
// The zero value is empty; use Set to populate it.
type Table struct {
	miles map[[2]string]int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{miles: make(map[[2]string]int)}
}

// Set records the distance between a and b in both directions.
func (t *Table) Set(a, b string, miles int) *Table {
	if t.miles == nil {
		t.miles = make(map[[2]string]int)
	}
	t.miles[[2]string{a, b}] = miles
	t.miles[[2]string{b, a}] = miles

	return t
}

// Mileage returns the recorded distance between origin and destination.
// A point's distance to itself is zero.
func (t *Table) Mileage(origin, destination string, _ core.GlobalDirection, _ time.Time) (int, error) {
	if origin == destination {
		return 0, nil
	}
	if m, ok := t.miles[[2]string{origin, destination}]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("%w: %s-%s", ErrUnknownPoint, origin, destination)
}

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// GreatCircle computes distances from airport coordinates.
type GreatCircle struct {
	points map[string]Point
}

// NewGreatCircle returns a lookup over the given coordinates.
// The map is copied.
func NewGreatCircle(points map[string]Point) *GreatCircle {
	g := &GreatCircle{points: make(map[string]Point, len(points))}
	for k, v := range points {
		g.points[k] = v
	}

	return g
}

// Mileage returns the great-circle distance between origin and destination.
func (g *GreatCircle) Mileage(origin, destination string, _ core.GlobalDirection, _ time.Time) (int, error) {
	a, ok := g.points[origin]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPoint, origin)
	}
	b, ok := g.points[destination]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPoint, destination)
	}

	return int(math.Round(Haversine(a, b))), nil
}

// Haversine returns the great-circle distance between a and b in statute miles.
func Haversine(a, b Point) float64 {
	const rad = math.Pi / 180
	dLat := (b.Lat - a.Lat) * rad
	dLon := (b.Lon - a.Lon) * rad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*rad)*math.Cos(b.Lat*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}
