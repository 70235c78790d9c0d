package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/testutil"
	"github.com/growfastwithus/growfast/internal/db/models"
)

var bootstrap = config.Admin{Username: "admin", Email: "admin@example.com", Password: "changeme"} //nolint:gochecknoglobals

func TestAuthenticateBootstrap(t *testing.T) {
	p := NewLocalProvider(nil, bootstrap)

	user, err := p.Authenticate("admin", "changeme")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = p.Authenticate("admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("root", "changeme")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = NewLocalProvider(nil, config.Admin{Username: "admin"}).Authenticate("admin", "")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthenticateBootstrapHashed(t *testing.T) {
	hash, err := models.HashPassword("s3cret")
	require.NoError(t, err)

	p := NewLocalProvider(nil, config.Admin{Username: "admin", Password: hash})

	_, err = p.Authenticate("admin", "s3cret")
	require.NoError(t, err)

	_, err = p.Authenticate("admin", hash)
	require.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthenticateDatabase(t *testing.T) {
	db := testutil.OpenDB(t)
	p := NewLocalProvider(db, bootstrap)

	created, err := p.EnsureBootstrapAdmin()
	require.NoError(t, err)
	assert.True(t, created)

	created, err = p.EnsureBootstrapAdmin()
	require.NoError(t, err)
	assert.False(t, created)

	user, err := p.Authenticate("admin", "changeme")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "changeme", user.PasswordHash)

	_, err = p.Authenticate("admin", "nope")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("ghost", "changeme")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, db.Model(&models.AdminUser{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = p.Authenticate("admin", "changeme")
	require.ErrorIs(t, err, ErrUserAccountDisabled)
}

func TestCreateUser(t *testing.T) {
	db := testutil.OpenDB(t)
	p := NewLocalProvider(db, config.Admin{})

	user, err := p.CreateUser("editor", "ed@example.com", "pw", models.RoleEditor, []string{PermReviewsWrite})
	require.NoError(t, err)
	assert.Equal(t, []string{PermReviewsWrite}, user.Permissions)

	_, err = p.CreateUser("editor", "other@example.com", "pw", models.RoleEditor, nil)
	require.ErrorIs(t, err, ErrUserNameExists)

	_, err = p.CreateUser("x", "", "pw", "owner", nil)
	require.ErrorIs(t, err, ErrInvalidRole)

	_, err = p.CreateUser("y", "", "pw", models.RoleEditor, []string{"zone.create"})
	require.ErrorIs(t, err, ErrUnknownPermission)

	users, err := p.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = NewLocalProvider(nil, config.Admin{}).CreateUser("a", "", "pw", models.RoleAdmin, nil)
	require.ErrorIs(t, err, ErrNoDatabase)

	created, err := p.EnsureBootstrapAdmin()
	require.NoError(t, err)
	assert.False(t, created, "no bootstrap credentials configured")
}

func TestFindForSubject(t *testing.T) {
	db := testutil.OpenDB(t)
	p := NewLocalProvider(db, config.Admin{})

	user, err := p.CreateUser("jane", "Jane@Example.com", "", models.RoleEditor, nil)
	require.NoError(t, err)

	_, err = p.FindForSubject("sub-1", "")
	require.ErrorIs(t, err, ErrUnknownSubject)

	_, err = p.FindForSubject("sub-1", "nobody@example.com")
	require.ErrorIs(t, err, ErrUnknownSubject)

	linked, err := p.FindForSubject("sub-1", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, linked.ID)

	again, err := p.FindForSubject("sub-1", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	require.NotNil(t, again.ExternalID)
	assert.Equal(t, "sub-1", *again.ExternalID)

	// an account already linked to another subject is not re-linked by email
	_, err = p.FindForSubject("sub-2", "jane@example.com")
	require.ErrorIs(t, err, ErrUnknownSubject)
}

func TestUpdateUser(t *testing.T) {
	db := testutil.OpenDB(t)
	p := NewLocalProvider(db, config.Admin{})

	user, err := p.CreateUser("editor", "ed@example.com", "pw", models.RoleEditor, []string{PermReviewsWrite})
	require.NoError(t, err)

	inactive := false
	perms := []string{PermMediaWrite, PermStatsView}
	password := "new-password"

	updated, err := p.UpdateUser(user.ID, UserChanges{Permissions: &perms, IsActive: &inactive, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, perms, updated.Permissions)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.VerifyPassword("new-password"))
	assert.Equal(t, "ed@example.com", updated.Email, "absent fields are kept")

	owner := "owner"
	_, err = p.UpdateUser(user.ID, UserChanges{Role: &owner})
	require.ErrorIs(t, err, ErrInvalidRole)

	unknown := []string{"zone.create"}
	_, err = p.UpdateUser(user.ID, UserChanges{Permissions: &unknown})
	require.ErrorIs(t, err, ErrUnknownPermission)

	_, err = p.UpdateUser(user.ID+100, UserChanges{IsActive: &inactive})
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = NewLocalProvider(nil, config.Admin{}).UpdateUser(1, UserChanges{})
	require.ErrorIs(t, err, ErrNoDatabase)
}
