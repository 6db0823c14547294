package utility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/utility"
)

// sliceSource replays items in order.
type sliceSource struct {
	items []*core.Item
	pulls int
}

func (s *sliceSource) Next() (*core.Item, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	it := s.items[0]
	s.items = s.items[1:]
	s.pulls++

	return it, true
}

// shorterIsBetter ranks nonstop flights by elapsed time only.
func shorterIsBetter() utility.Model {
	c := utility.Coefficients{Stops: [3]float64{-1, -1, -1}}
	return utility.Model{Outbound: c, Inbound: c}
}

func TestReranker_BatchesByPrice(t *testing.T) {
	src := &sliceSource{items: []*core.Item{
		item(flight(1, core.Outbound, 8, 200, "AA"), nil, 100, 0),
		item(flight(2, core.Outbound, 9, 90, "AA"), nil, 100, 0),
		item(flight(3, core.Outbound, 10, 150, "AA"), nil, 100.005, 0),
		item(flight(4, core.Outbound, 11, 300, "AA"), nil, 150, 0),
		item(flight(5, core.Outbound, 12, 100, "AA"), nil, 150, 0),
	}}
	r := utility.NewReranker(src, shorterIsBetter())

	var ids []int
	var batchUtil []float64
	for {
		it, ok := r.Next()
		if !ok {
			break
		}
		ids = append(ids, it.ID.Out)
		batchUtil = append(batchUtil, it.AggregateUtility)
	}

	assert.Equal(t, []int{2, 3, 1, 5, 4}, ids)
	assert.Equal(t, 2, r.Batches())
	for i := 1; i < 3; i++ {
		assert.GreaterOrEqual(t, batchUtil[i-1], batchUtil[i], "first batch non-increasing")
	}
	assert.GreaterOrEqual(t, batchUtil[3], batchUtil[4])
}

func TestReranker_EpsilonAndTieBreak(t *testing.T) {
	items := func() []*core.Item {
		return []*core.Item{
			item(flight(7, core.Outbound, 8, 60, "AA"), nil, 100, 0),
			item(flight(3, core.Outbound, 9, 60, "AA"), nil, 100.5, 0),
		}
	}

	r := utility.NewReranker(&sliceSource{items: items()}, shorterIsBetter())
	first, ok := r.Next()
	require.True(t, ok)
	assert.Equal(t, 7, first.ID.Out, "0.5 apart is outside the default epsilon")

	r = utility.NewReranker(&sliceSource{items: items()}, shorterIsBetter(), utility.WithEpsilon(1))
	first, ok = r.Next()
	require.True(t, ok)
	assert.Equal(t, 3, first.ID.Out, "equal utility falls back to the lower id")
	assert.Equal(t, 1, r.Batches())
}

func TestReranker_EmptySource(t *testing.T) {
	src := &sliceSource{}
	r := utility.NewReranker(src, utility.DefaultModel())
	_, ok := r.Next()
	assert.False(t, ok)
	_, ok = r.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, r.Batches())
}

func TestWithEpsilon_Panics(t *testing.T) {
	assert.PanicsWithValue(t, utility.ErrBadEpsilon.Error(), func() {
		utility.WithEpsilon(-1)(&utility.Options{})
	})
}
