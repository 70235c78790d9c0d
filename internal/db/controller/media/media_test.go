package media

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

	m := models.Media{FileName: "abc.png", OriginalName: "logo.png", ContentType: "image/png", Size: 1024, URL: "/uploads/abc.png"}
	require.NoError(t, Create(db, &m))
	assert.NotZero(t, m.ID)

	list, err := List(db)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, err := Get(db, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", got.OriginalName)

	require.NoError(t, Delete(db, m.ID))
	require.ErrorIs(t, Delete(db, m.ID), ErrMediaNotFound)

	_, err = Get(db, m.ID)
	require.ErrorIs(t, err, ErrMediaNotFound)
}

func TestNilDB(t *testing.T) {
	_, err := List(nil)
	require.ErrorIs(t, err, controller.ErrDBNil)

	require.ErrorIs(t, Create(nil, &models.Media{}), controller.ErrDBNil)
	require.ErrorIs(t, Delete(nil, 1), controller.ErrDBNil)
}
