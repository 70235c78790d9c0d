package models

import (
	"slices"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// Admin roles.
const (
	// RoleAdmin holds every permission.
	RoleAdmin = "admin"
	// RoleEditor holds only the permissions listed on the user.
	RoleEditor = "editor"
)

// AdminUser is an account allowed into the admin api.
type AdminUser struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Username is the unique login name.
	Username string `gorm:"unique;size:100;not null" json:"username"`
	// Email is used to link identity-provider accounts on first sign in.
	Email string `gorm:"size:255;index" json:"email"`
	// PasswordHash is the argon2id hash, empty for identity-provider only accounts.
	PasswordHash string `gorm:"size:255" json:"-"`
	// ExternalID is the identity-provider subject, nil until linked.
	ExternalID *string `gorm:"size:255;uniqueIndex" json:"externalId,omitempty"`
	// Role is admin or editor.
	Role string `gorm:"size:20;not null;default:'editor'" json:"role"`
	// Permissions granted to an editor.
	Permissions []string `gorm:"type:text;serializer:json" json:"permissions"`
	IsActive    bool     `gorm:"not null" json:"isActive"`
	// TOTPSecret enables the second factor when set.
	TOTPSecret  string     `gorm:"column:totp_secret;size:64" json:"-"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName specifies the database table name for the AdminUser model.
func (AdminUser) TableName() string {
	return "admin_users"
}

// HashPassword hashes a plaintext password using argon2id with default parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword compares password against the stored hash in constant time.
func (u *AdminUser) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.PasswordHash)
	if err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("failed to verify password")

		return false
	}

	return match
}

// HasPermission reports whether the user may use permission.
func (u *AdminUser) HasPermission(permission string) bool {
	if u.Role == RoleAdmin {
		return true
	}

	return slices.Contains(u.Permissions, permission)
}

// HasTOTP reports whether a second factor is required.
func (u *AdminUser) HasTOTP() bool {
	return u.TOTPSecret != ""
}
