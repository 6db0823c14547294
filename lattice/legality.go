package lattice

import (
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
)

// legal applies the fare-construction rules of the trip type.
// Trip types already agree when this is called.
func (s *Search) legal(out, in *core.WrappedOption) diag.Reason {
	if in == nil {
		return diag.Accepted
	}

	switch out.Kind {
	case core.OneWay:
		return diag.Accepted
	case core.RoundTrip:
		return verdict(mirrored(out.Components, in.Components))
	case core.CircleTrip:
		return verdict(circleTrip(out.Components, in.Components))
	case core.OpenJaw:
		return s.openJaw(out, in)
	default:
		return diag.RejectTripType
	}
}

func verdict(ok bool) diag.Reason {
	if ok {
		return diag.Accepted
	}

	return diag.RejectFareConstruction
}

// mirrored reports whether every outbound break point is mirrored by the
// paired inbound component (outbound i pairs with inbound n-1-i).
func mirrored(out, in []core.FareComponent) bool {
	if len(out) != len(in) || len(out) == 0 {
		return false
	}
	n := len(out)
	for i := range out {
		p := in[n-1-i]
		if out[i].Destination != p.Origin || out[i].Origin != p.Destination {
			return false
		}
	}

	return true
}

// circleTrip needs at least three components; with exactly four the two
// legs must not share their first destination.
func circleTrip(out, in []core.FareComponent) bool {
	n := len(out) + len(in)
	if n < 3 || len(out) == 0 || len(in) == 0 {
		return false
	}
	if n == 4 && out[0].Destination == in[0].Destination {
		return false
	}

	return true
}

// openJaw checks open-jaw combinations of two, three and four components.
func (s *Search) openJaw(out, in *core.WrappedOption) diag.Reason {
	nOut, nIn := len(out.Components), len(in.Components)
	if nOut == 0 || nIn == 0 {
		return diag.RejectFareConstruction
	}

	switch nOut + nIn {
	case 2:
		return diag.Accepted
	case 3:
		return s.openJawThree(out, in)
	case 4:
		if nOut != 2 {
			return diag.RejectFareConstruction
		}
		return s.openJawFour(out, in)
	default:
		return diag.RejectFareConstruction
	}
}

// openJawThree: one leg carries two components, one of them the connecting
// fare. The ground distance between the connecting fare's endpoints (which
// are the open-jaw points) may not exceed the mileage of either open-jaw fare.
func (s *Search) openJawThree(out, in *core.WrappedOption) diag.Reason {
	double, single := out, in
	if len(in.Components) == 2 {
		double, single = in, out
	}

	var jaw, conn core.FareComponent
	switch double.Combination {
	case core.CombinationOpenJawFirst:
		jaw, conn = double.Components[0], double.Components[1]
	case core.CombinationOpenJawLast:
		jaw, conn = double.Components[1], double.Components[0]
	default:
		return diag.RejectFareConstruction
	}

	gap, err := s.distance(conn.Origin, conn.Destination, conn)
	if err != nil {
		return diag.RejectMileageUnavailable
	}
	for _, fc := range []core.FareComponent{jaw, single.Components[0]} {
		m, err := s.distance(fc.Origin, fc.Destination, fc)
		if err != nil {
			return diag.RejectMileageUnavailable
		}
		if gap > m {
			return diag.RejectFareConstruction
		}
	}

	return diag.Accepted
}

// openJawFour: both legs carry two components. The inner connection points
// must differ; for fully or partially mirrored pairs the distance between
// them may not exceed the mileage of the components meeting there.
func (s *Search) openJawFour(out, in *core.WrappedOption) diag.Reason {
	outInner := out.Components[0].Destination
	inInner := in.Components[0].Destination
	if outInner == inInner {
		return diag.RejectFareConstruction
	}

	if out.Combination != core.CombinationMirrored && in.Combination != core.CombinationMirrored {
		return diag.Accepted
	}

	ref := out.Components[0]
	gap, err := s.distance(outInner, inInner, ref)
	if err != nil {
		return diag.RejectMileageUnavailable
	}
	for _, fc := range []core.FareComponent{out.Components[0], in.Components[1]} {
		m, err := s.distance(fc.Origin, fc.Destination, fc)
		if err != nil {
			return diag.RejectMileageUnavailable
		}
		if gap > m {
			return diag.RejectFareConstruction
		}
	}

	return diag.Accepted
}

// distance asks the mileage collaborator, using ref for the global
// direction and travel date.
func (s *Search) distance(origin, destination string, ref core.FareComponent) (int, error) {
	if s.opts.Mileage == nil {
		return 0, errNoMileage
	}

	return s.opts.Mileage.Mileage(origin, destination, ref.Direction, ref.TravelDate)
}

// interlineValid applies interline ticketing eligibility unless the trip is
// online on one carrier.
func (s *Search) interlineValid(out, in *core.Candidate) bool {
	ic := s.opts.Interline
	if ic == nil {
		return true
	}

	if in == nil {
		return out.Online() || ic.ValidInterline(out)
	}

	if carrier := out.OnlineCarrier(); carrier != "" && carrier == in.OnlineCarrier() {
		return true
	}
	for _, c := range []*core.Candidate{out, in} {
		if !c.Online() && !ic.ValidInterline(c) {
			return false
		}
	}

	return ic.ValidInterlinePair(out, in)
}
