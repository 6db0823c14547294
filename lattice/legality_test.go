package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/diag"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/lattice"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/mileage"
)

// LegalitySuite checks the fare-construction rules of two-leg searches.
type LegalitySuite struct {
	suite.Suite
	miles *mileage.Table
}

func (s *LegalitySuite) SetupTest() {
	s.miles = mileage.NewTable().
		Set("A", "X", 1000).
		Set("C", "A", 900).
		Set("X", "B", 300).
		Set("Y", "A", 800).
		Set("X", "Y", 500)
}

// verdict runs a one-by-one lattice and returns the single diagnostic reason.
func (s *LegalitySuite) verdict(out, in *core.WrappedOption, opts ...lattice.Option) diag.Reason {
	var got []diag.Reason
	opts = append(opts, lattice.WithSink(diag.SinkFunc(func(r diag.Record) { got = append(got, r.Reason) })))
	search, err := lattice.New([]core.Column{column(core.Outbound, out), column(core.Inbound, in)}, opts...)
	s.Require().NoError(err)
	search.Drain(-1)
	s.Require().Len(got, 1)

	return got[0]
}

func (s *LegalitySuite) pair(kind core.FareKind, outComb, inComb core.CombinationType, outFC, inFC []core.FareComponent) (*core.WrappedOption, *core.WrappedOption) {
	out := wrap(cand(1, core.Outbound, outDay), kind, outComb, outFC...)
	in := wrap(cand(2, core.Inbound, inDay), kind, inComb, inFC...)

	return out, in
}

func (s *LegalitySuite) TestRoundTripMirrored() {
	eoe := core.CombinationEndOnEnd
	out, in := s.pair(core.RoundTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 100)},
		[]core.FareComponent{fc("B", "A", 100)})
	s.Equal(diag.Accepted, s.verdict(out, in))

	out, in = s.pair(core.RoundTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "X", 50), fc("X", "B", 50)},
		[]core.FareComponent{fc("B", "X", 50), fc("X", "A", 50)})
	s.Equal(diag.Accepted, s.verdict(out, in))

	out, in = s.pair(core.RoundTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 100)},
		[]core.FareComponent{fc("C", "A", 100)})
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in), "break points not mirrored")

	out, in = s.pair(core.RoundTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "X", 50), fc("X", "B", 50)},
		[]core.FareComponent{fc("B", "A", 100)})
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in), "component counts differ")
}

func (s *LegalitySuite) TestCircleTrip() {
	eoe := core.CombinationEndOnEnd
	out, in := s.pair(core.CircleTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 1), fc("B", "C", 1)},
		[]core.FareComponent{fc("C", "A", 1)})
	s.Equal(diag.Accepted, s.verdict(out, in))

	out, in = s.pair(core.CircleTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 1)},
		[]core.FareComponent{fc("B", "A", 1)})
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in), "two components")

	out, in = s.pair(core.CircleTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 1), fc("B", "C", 1)},
		[]core.FareComponent{fc("C", "B", 1), fc("B", "A", 1)})
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in), "there and back")

	out, in = s.pair(core.CircleTrip, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 1), fc("B", "C", 1)},
		[]core.FareComponent{fc("C", "D", 1), fc("D", "A", 1)})
	s.Equal(diag.Accepted, s.verdict(out, in))
}

func (s *LegalitySuite) TestOpenJawThreeComponents() {
	eoe := core.CombinationEndOnEnd
	outFC := []core.FareComponent{fc("A", "X", 1), fc("X", "B", 1)}
	inFC := []core.FareComponent{fc("C", "A", 1)}

	out, in := s.pair(core.OpenJaw, core.CombinationOpenJawFirst, eoe, outFC, inFC)
	s.Equal(diag.Accepted, s.verdict(out, in, lattice.WithMileage(s.miles)), "X-B 300 ≤ A-X 1000 and C-A 900")

	s.miles.Set("X", "B", 950)
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in, lattice.WithMileage(s.miles)), "X-B 950 > C-A 900")

	// the inbound leg may carry the connecting fare instead
	out, in = s.pair(core.OpenJaw, eoe, core.CombinationOpenJawLast,
		[]core.FareComponent{fc("A", "X", 1)},
		[]core.FareComponent{fc("C", "A", 1), fc("A", "X", 1)})
	s.Equal(diag.Accepted, s.verdict(out, in, lattice.WithMileage(s.miles)), "C-A 900 ≤ A-X 1000 on both jaws")

	s.miles.Set("C", "A", 1100)
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in, lattice.WithMileage(s.miles)), "C-A 1100 > A-X 1000")

	out, in = s.pair(core.OpenJaw, eoe, eoe, outFC, inFC)
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in, lattice.WithMileage(s.miles)), "end-on-end leg has no open-jaw fare")

	out, in = s.pair(core.OpenJaw, core.CombinationOpenJawFirst, eoe, outFC, inFC)
	s.Equal(diag.RejectMileageUnavailable, s.verdict(out, in), "no mileage collaborator")

	out, in = s.pair(core.OpenJaw, core.CombinationOpenJawFirst, eoe,
		[]core.FareComponent{fc("A", "Q", 1), fc("Q", "B", 1)}, inFC)
	s.Equal(diag.RejectMileageUnavailable, s.verdict(out, in, lattice.WithMileage(s.miles)), "unknown city pair")
}

func (s *LegalitySuite) TestOpenJawFourComponents() {
	eoe, mir := core.CombinationEndOnEnd, core.CombinationMirrored
	outFC := []core.FareComponent{fc("A", "X", 1), fc("X", "B", 1)}

	out, in := s.pair(core.OpenJaw, eoe, eoe, outFC,
		[]core.FareComponent{fc("C", "X", 1), fc("X", "A", 1)})
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in), "same inner connection point")

	inFC := []core.FareComponent{fc("C", "Y", 1), fc("Y", "A", 1)}
	out, in = s.pair(core.OpenJaw, eoe, eoe, outFC, inFC)
	s.Equal(diag.Accepted, s.verdict(out, in), "end-on-end pairs need no mileage")

	out, in = s.pair(core.OpenJaw, mir, mir, outFC, inFC)
	s.Equal(diag.Accepted, s.verdict(out, in, lattice.WithMileage(s.miles)), "X-Y 500 ≤ A-X 1000 and Y-A 800")

	s.miles.Set("X", "Y", 850)
	out, in = s.pair(core.OpenJaw, mir, eoe, outFC, inFC)
	s.Equal(diag.RejectFareConstruction, s.verdict(out, in, lattice.WithMileage(s.miles)), "partially mirrored, X-Y 850 > Y-A 800")
}

func (s *LegalitySuite) TestOneWayNeedsNoChecks() {
	eoe := core.CombinationEndOnEnd
	out, in := s.pair(core.OneWay, eoe, eoe,
		[]core.FareComponent{fc("A", "B", 1)},
		[]core.FareComponent{fc("Q", "Z", 1)})
	s.Equal(diag.Accepted, s.verdict(out, in))
}

func TestLegalitySuite(t *testing.T) {
	suite.Run(t, new(LegalitySuite))
}
