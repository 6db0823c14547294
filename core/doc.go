// Package core defines the in-memory itinerary model shared by every stage of
// the ESV/VIS search engine.
//
// The model is small and read-mostly:
//
//   - Segment     – one travel segment, tagged as air or surface (SegmentKind).
//   - Candidate   – one scheduling option (SOP) for one leg: ordered segments,
//     governing carrier, itinerary penalty, priced fare constructions and the
//     dominance flag. Only the dominance filter mutates a Candidate.
//   - Construction – an externally priced fare construction (FareKind plus the
//     ordered FareComponents and the CombinationType tag used by the
//     open-jaw legality rules).
//   - WrappedOption – a Candidate joined with one Construction and its cached
//     total. Immutable after creation and shared by many combinations.
//   - Column      – the price-ordered WrappedOptions of one leg.
//   - Arena       – pass-scoped owner of WrappedOptions; handed-out pointers
//     stay valid for as long as the arena is reachable.
//   - Item        – a validated outbound(+inbound) combination with its
//     CombinationID, price, utility and selection bookkeeping.
//   - Queue       – the pass (queue) type a search runs for, with the
//     two-digit codes used in diagnostics.
//
// Leg indices are 0 (outbound) and 1 (inbound). Searches with more than two
// legs are not modelled.
//
// Example:
//
//	out := &core.Candidate{
//	    ID:  1,
//	    Leg: core.Outbound,
//	    Segments: []core.Segment{{
//	        Origin: "JFK", Destination: "LAX", MarketingCarrier: "AA",
//	        Departure: dep, Arrival: arr,
//	    }},
//	    GoverningCarrier: "AA",
//	}
//	fmt.Println(out.Online(), out.Stops(), out.Elapsed())
package core
