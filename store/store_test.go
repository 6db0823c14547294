package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/core"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/esv"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub037/store"
)

func open(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "esv.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func solution(out, in int, carrier string, total float64, order int) *core.Item {
	c := &core.Candidate{ID: out, GoverningCarrier: carrier}
	it := &core.Item{
		ID:               core.CombinationID{Out: out, In: in},
		Outbound:         &core.WrappedOption{Candidate: c},
		Total:            total,
		AggregateUtility: -1.5,
		SelectionSource:  "13",
		SelectionOrder:   order,
		CarrierGroup:     1,
		Primary:          order == 0,
	}

	return it
}

func TestSaveResult_RoundTrip(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	res := &esv.Result{
		RunID:     uuid.New(),
		RequestID: "JFK-LHR",
		Solutions: []*core.Item{
			solution(2, core.NoInbound, "DL", 150, 1),
			solution(1, core.NoInbound, "AA", 100, 0),
		},
		Dominated: [2]int{3, 0},
	}
	require.NoError(t, db.SaveResult(ctx, "jfk-lhr.yaml", res))

	runs, err := db.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	r := runs[0]
	assert.Equal(t, res.RunID, r.ID)
	assert.Equal(t, "JFK-LHR", r.RequestID)
	assert.Equal(t, "jfk-lhr.yaml", r.Scenario)
	assert.Equal(t, 2, r.Solutions)
	assert.Equal(t, [2]int{3, 0}, r.Dominated)
	assert.False(t, r.CreatedAt.IsZero())

	sols, err := db.Solutions(ctx, res.RunID)
	require.NoError(t, err)
	require.Len(t, sols, 2)
	assert.Equal(t, "AA", sols[0].Carrier, "selection order")
	assert.Equal(t, 100.0, sols[0].Total)
	assert.Equal(t, core.NoInbound, sols[0].In)
	assert.True(t, sols[0].Primary)
	assert.False(t, sols[1].Primary)
	assert.Equal(t, "13", sols[1].Source)
	assert.Equal(t, -1.5, sols[1].Utility)
}

func TestRuns_NewestFirst(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	first := &esv.Result{RunID: uuid.New(), RequestID: "a"}
	second := &esv.Result{RunID: uuid.New(), RequestID: "b"}
	require.NoError(t, db.SaveResult(ctx, "a.yaml", first))
	require.NoError(t, db.SaveResult(ctx, "b.yaml", second))

	runs, err := db.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.RunID, runs[0].ID)
	assert.Equal(t, first.RunID, runs[1].ID)
}

func TestSaveResult_DuplicateRunRollsBack(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	res := &esv.Result{RunID: uuid.New(), Solutions: []*core.Item{solution(1, 2, "AA", 100, 0)}}
	require.NoError(t, db.SaveResult(ctx, "x", res))
	assert.Error(t, db.SaveResult(ctx, "x", res))

	sols, err := db.Solutions(ctx, res.RunID)
	require.NoError(t, err)
	assert.Len(t, sols, 1)
}

func TestErrors(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	assert.ErrorIs(t, db.SaveResult(ctx, "x", nil), store.ErrNilResult)

	_, err := db.Run(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = db.Solutions(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)

	var closed *store.DB
	assert.NoError(t, closed.Close())
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "esv.sqlite")
	db, err := store.Open(path)
	require.NoError(t, err)
	id := uuid.New()
	require.NoError(t, db.SaveResult(context.Background(), "x", &esv.Result{RunID: id}))
	require.NoError(t, db.Close())

	db, err = store.Open(path)
	require.NoError(t, err)
	defer db.Close()
	r, err := db.Run(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
}
