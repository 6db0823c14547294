package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/expand"
)

func construction(k core.FareKind, amounts ...float64) core.Construction {
	con := core.Construction{Kind: k}
	for _, a := range amounts {
		con.Components = append(con.Components, core.FareComponent{Origin: "A", Destination: "B", Amount: a})
	}

	return con
}

func candidates() []*core.Candidate {
	return []*core.Candidate{
		{ID: 1, Penalty: 50, Constructions: []core.Construction{
			construction(core.OneWay, 300),
			construction(core.RoundTrip, 120, 20),
		}},
		{ID: 2, Penalty: 0, Constructions: []core.Construction{
			construction(core.OneWay, 200),
			construction(core.OpenJaw),
		}},
		{ID: 3, Dominated: true, Constructions: []core.Construction{construction(core.OneWay, 1)}},
		nil,
	}
}

func totals(col core.Column) []float64 {
	out := make([]float64, col.Len())
	for i, o := range col.Options {
		out[i] = o.Total
	}

	return out
}

func TestExpand_SortedAndFiltered(t *testing.T) {
	col := expand.Expand(candidates())

	assert.Equal(t, core.Outbound, col.Leg)
	assert.Equal(t, []float64{140, 200, 300}, totals(col))
	assert.True(t, col.Sorted())
	assert.Equal(t, core.RoundTrip, col.Options[0].Kind)
	assert.Len(t, col.Options[0].Components, 2)
}

func TestExpand_Penalty(t *testing.T) {
	col := expand.Expand(candidates(), expand.WithPenalty(true), expand.ForLeg(core.Inbound))

	assert.Equal(t, core.Inbound, col.Leg)
	assert.Equal(t, []float64{190, 200, 350}, totals(col))
	assert.Equal(t, 50.0, col.Options[0].Penalty)
	assert.Equal(t, 140.0, col.Options[0].Fare())
}

func TestExpand_KindsAndFilter(t *testing.T) {
	arena := &core.Arena{}
	col := expand.Expand(candidates(),
		expand.WithKinds(core.OneWay),
		expand.WithArena(arena),
		expand.WithCandidateFilter(func(c *core.Candidate) bool { return c.ID != 2 }),
	)

	require.Equal(t, 1, col.Len())
	assert.Equal(t, 1, col.Options[0].Candidate.ID)
	assert.Equal(t, 1, arena.Len())
}

func TestExpand_Empty(t *testing.T) {
	col := expand.Expand(nil)
	assert.Zero(t, col.Len())
	assert.True(t, col.Sorted())
}

func TestWithKinds_Panics(t *testing.T) {
	assert.Panics(t, func() { expand.Expand(nil, expand.WithKinds()) })
}

func TestArena_PointersStable(t *testing.T) {
	arena := &core.Arena{}
	c := &core.Candidate{ID: 9}
	first := arena.Wrap(c, construction(core.OneWay, 10), false)
	for i := 0; i < 1000; i++ {
		arena.Wrap(c, construction(core.OneWay, float64(i)), false)
	}
	assert.Equal(t, 10.0, first.Total)
	assert.Equal(t, 1001, arena.Len())
}
