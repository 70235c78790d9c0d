package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/models"
)

// argon2idPrefix marks a configured password that is already hashed.
const argon2idPrefix = "$argon2id$"

const whereID = "id = ?"

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db        *gorm.DB
	bootstrap config.Admin
}

// NewLocalProvider creates a new local authentication provider.
// bootstrap is the only accepted account when db is nil.
func NewLocalProvider(db *gorm.DB, bootstrap config.Admin) *LocalProvider {
	return &LocalProvider{
		db:        db,
		bootstrap: bootstrap,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(username, password string) (*models.AdminUser, error) {
	if p.db == nil {
		return p.authenticateBootstrap(username, password)
	}

	var user models.AdminUser

	err := p.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// Check if user is active
	if !user.IsActive {
		return nil, ErrUserAccountDisabled
	}

	// Verify password
	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// BootstrapUser returns the configured admin as an unsaved user.
func (p *LocalProvider) BootstrapUser() *models.AdminUser {
	return &models.AdminUser{
		Username: p.bootstrap.Username,
		Email:    p.bootstrap.Email,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
}

func (p *LocalProvider) authenticateBootstrap(username, password string) (*models.AdminUser, error) {
	if p.bootstrap.Username == "" || p.bootstrap.Password == "" || username != p.bootstrap.Username {
		return nil, ErrUserNotFound
	}

	if !verifyConfigured(password, p.bootstrap.Password) {
		return nil, ErrInvalidPassword
	}

	return p.BootstrapUser(), nil
}

// verifyConfigured accepts an argon2id hash or a plaintext password from the configuration.
func verifyConfigured(password, configured string) bool {
	if strings.HasPrefix(configured, argon2idPrefix) {
		match, err := argon2id.ComparePasswordAndHash(password, configured)

		return err == nil && match
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(configured)) == 1
}

// CreateUser creates a new local user.
func (p *LocalProvider) CreateUser(username, email, password, role string, permissions []string) (*models.AdminUser, error) {
	if p.db == nil {
		return nil, ErrNoDatabase
	}

	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	for _, perm := range permissions {
		if !IsPermission(perm) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, perm)
		}
	}

	// Check if user already exists
	var existing models.AdminUser

	err := p.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrUserNameExists
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.AdminUser{
		Username:    username,
		Email:       email,
		Role:        role,
		Permissions: permissions,
		IsActive:    true,
	}

	if password != "" {
		if strings.HasPrefix(password, argon2idPrefix) {
			user.PasswordHash = password
		} else if user.PasswordHash, err = models.HashPassword(password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if user.Permissions == nil {
		user.Permissions = []string{}
	}

	if err = p.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// EnsureBootstrapAdmin seeds the configured admin into an empty admin_users table.
// It reports whether a user was created.
func (p *LocalProvider) EnsureBootstrapAdmin() (bool, error) {
	if p.db == nil {
		return false, ErrNoDatabase
	}

	if p.bootstrap.Username == "" || p.bootstrap.Password == "" {
		return false, nil
	}

	var count int64
	if err := p.db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count admin users: %w", err)
	}

	if count > 0 {
		return false, nil
	}

	if _, err := p.CreateUser(p.bootstrap.Username, p.bootstrap.Email, p.bootstrap.Password,
		models.RoleAdmin, nil); err != nil {
		return false, err
	}

	return true, nil
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(userID uint64) (*models.AdminUser, error) {
	if p.db == nil {
		return nil, ErrNoDatabase
	}

	var user models.AdminUser
	if err := p.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (p *LocalProvider) GetUserByUsername(username string) (*models.AdminUser, error) {
	if p.db == nil {
		return nil, ErrNoDatabase
	}

	var user models.AdminUser
	if err := p.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}

// FindForSubject resolves an identity-provider subject. An unlinked user with
// a matching email is linked to the subject.
func (p *LocalProvider) FindForSubject(subject, email string) (*models.AdminUser, error) {
	if p.db == nil {
		return nil, ErrNoDatabase
	}

	var user models.AdminUser

	err := p.db.Where("external_id = ?", subject).First(&user).Error
	if err == nil {
		return &user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if email == "" {
		return nil, ErrUnknownSubject
	}

	err = p.db.Where("LOWER(email) = ? AND external_id IS NULL", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnknownSubject
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err = p.db.Model(&models.AdminUser{}).Where(whereID, user.ID).
		Update("external_id", subject).Error; err != nil {
		return nil, fmt.Errorf("failed to link user: %w", err)
	}

	user.ExternalID = &subject

	return &user, nil
}

// SetTOTPSecret stores or clears the second factor secret.
func (p *LocalProvider) SetTOTPSecret(userID uint64, secret string) error {
	if p.db == nil {
		return ErrNoDatabase
	}

	return p.db.Model(&models.AdminUser{}).
		Where(whereID, userID).
		Update("totp_secret", secret).Error
}

// UserChanges is a partial update of an admin user, nil fields are kept.
type UserChanges struct {
	Email       *string
	Password    *string
	Role        *string
	Permissions *[]string
	IsActive    *bool
}

// UpdateUser applies changes to the user with userID and returns the stored row.
func (p *LocalProvider) UpdateUser(userID uint64, changes UserChanges) (*models.AdminUser, error) {
	if p.db == nil {
		return nil, ErrNoDatabase
	}

	user, err := p.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	columns := map[string]any{}

	if changes.Email != nil {
		columns["email"] = *changes.Email
	}

	if changes.Role != nil {
		if *changes.Role != models.RoleAdmin && *changes.Role != models.RoleEditor {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, *changes.Role)
		}

		columns["role"] = *changes.Role
	}

	if changes.Permissions != nil {
		for _, perm := range *changes.Permissions {
			if !IsPermission(perm) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownPermission, perm)
			}
		}

		// the serializer only runs on struct fields
		user.Permissions = append([]string{}, *changes.Permissions...)
	}

	if changes.IsActive != nil {
		columns["is_active"] = *changes.IsActive
	}

	if changes.Password != nil {
		hash, err := models.HashPassword(*changes.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		columns["password_hash"] = hash
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		if changes.Permissions != nil {
			if err := tx.Model(user).Select("permissions").Updates(user).Error; err != nil {
				return err
			}
		}

		if len(columns) > 0 {
			return tx.Model(&models.AdminUser{}).Where(whereID, userID).Updates(columns).Error
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return p.GetUserByID(userID)
}

// TouchLogin records the time of a successful sign in.
func (p *LocalProvider) TouchLogin(userID uint64) error {
	if p.db == nil || userID == 0 {
		return nil
	}

	return p.db.Model(&models.AdminUser{}).
		Where(whereID, userID).
		Update("last_login_at", time.Now().UTC()).Error
}

// ListUsers lists all users ordered by username.
func (p *LocalProvider) ListUsers() ([]models.AdminUser, error) {
	if p.db == nil {
		return nil, ErrNoDatabase
	}

	var users []models.AdminUser
	if err := p.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
