package core_test

import (
	"fmt"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
)

// ExampleNewItem prices a round trip from one construction per leg.
func ExampleNewItem() {
	out := &core.Candidate{ID: 1, GoverningCarrier: "AA", Segments: []core.Segment{
		seg("JFK", "ORD", "AA", 8, 10),
		seg("ORD", "LHR", "AA", 11, 19),
	}}
	in := &core.Candidate{ID: 3, Leg: core.Inbound, GoverningCarrier: "AA", Segments: []core.Segment{
		seg("LHR", "JFK", "AA", 12, 20),
	}}

	var a core.Arena
	it := core.NewItem(a.Wrap(out, ow(320), false), a.Wrap(in, ow(290), false))
	fmt.Println(it.ID, it.Total, it.Online(), out.Signature(), out.Stops())
	// Output:
	// 1/3 610 true AA-AA 1
}
