package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/controller/testutil"
	"github.com/growfastwithus/growfast/internal/db/models"
)

func TestLifecycle(t *testing.T) {
	db := testutil.OpenDB(t)

	a := models.Review{Name: "Sarah", Company: "Acme", Rating: 5, Content: "Saved us 20 hours a week", IsActive: true}
	b := models.Review{Name: "Tom", Company: "Bolt", Rating: 3, Content: "Solid", IsActive: true}

	require.NoError(t, Create(db, &a))
	require.NoError(t, Create(db, &b))

	active, err := List(db, false)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	rating := 4
	content := "Solid work"

	updated, err := Update(db, b.ID, Changes{Rating: &rating, Content: &content})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Solid work", updated.Content)
	assert.Equal(t, "Tom", updated.Name)

	require.NoError(t, Deactivate(db, a.ID))

	active, err = List(db, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	// soft delete keeps the row
	total, err := Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	all, err := List(db, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	stats, err := GetStats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(2), stats.Total)
	assert.InDelta(t, 4.0, stats.AverageRating, 0.001)
}

func TestNotFound(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := Get(db, 42)
	require.ErrorIs(t, err, ErrReviewNotFound)

	require.ErrorIs(t, Deactivate(db, 42), ErrReviewNotFound)

	// empty changes still report a missing row
	_, err = Update(db, 42, Changes{})
	require.ErrorIs(t, err, ErrReviewNotFound)
}

func TestNilDB(t *testing.T) {
	_, err := List(nil, false)
	require.ErrorIs(t, err, controller.ErrDBNil)

	_, err = Get(nil, 1)
	require.ErrorIs(t, err, controller.ErrDBNil)

	require.ErrorIs(t, Create(nil, &models.Review{}), controller.ErrDBNil)
	require.ErrorIs(t, Deactivate(nil, 1), controller.ErrDBNil)

	_, err = GetStats(nil)
	require.ErrorIs(t, err, controller.ErrDBNil)
}

func TestStatsEmpty(t *testing.T) {
	stats, err := GetStats(testutil.OpenDB(t))
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}
