package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/testutil"
	"github.com/growfastwithus/growfast/internal/db/models"
)

func TestResolveClaims(t *testing.T) {
	db := testutil.OpenDB(t)
	local := NewLocalProvider(db, config.Admin{})

	user, err := local.CreateUser("jane", "jane@example.com", "", models.RoleEditor, nil)
	require.NoError(t, err)

	_, err = ResolveClaims(local, Claims{Sub: "abc", Email: "jane@example.com"})
	require.ErrorIs(t, err, ErrUnknownSubject, "unverified email must not link")

	got, err := ResolveClaims(local, Claims{Sub: "abc", Email: "jane@example.com", EmailVerified: true})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = ResolveClaims(local, Claims{})
	require.ErrorIs(t, err, ErrUnknownSubject)

	require.NoError(t, db.Model(&models.AdminUser{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = ResolveClaims(local, Claims{Sub: "abc"})
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestOIDCDisabled(t *testing.T) {
	_, err := NewOIDCProvider(t.Context(), config.OIDC{}, nil)
	require.ErrorIs(t, err, ErrOIDCDisabled)
}

func TestGenerateStateToken(t *testing.T) {
	a, err := GenerateStateToken()
	require.NoError(t, err)

	b, err := GenerateStateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 43)
}
