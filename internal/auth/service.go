package auth

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/web/session"
)

// Identity sources.
const (
	SourceLocal     = "local"
	SourceBootstrap = "bootstrap"
	SourceOIDC      = "oidc"
)

// Service provides authentication and authorization functionality.
type Service struct {
	db    *gorm.DB
	local *LocalProvider
}

// NewService creates a new auth service. db may be nil.
func NewService(db *gorm.DB, bootstrap config.Admin) *Service {
	return &Service{db: db, local: NewLocalProvider(db, bootstrap)}
}

// Local returns the local provider.
func (s *Service) Local() *LocalProvider {
	return s.local
}

// Login checks username, password and, when the account has one, the TOTP code.
func (s *Service) Login(username, password, code string) (*models.AdminUser, error) {
	user, err := s.local.Authenticate(username, password)
	if err != nil {
		return nil, err
	}

	if user.HasTOTP() {
		if code == "" {
			return nil, ErrTOTPRequired
		}

		if !ValidateTOTP(code, user.TOTPSecret) {
			return nil, ErrInvalidTOTP
		}
	}

	if err = s.local.TouchLogin(user.ID); err != nil {
		log.Warn().Err(err).Uint64("user_id", user.ID).Msg("failed to record login time")
	}

	return user, nil
}

// IdentityFor builds the session identity of user.
func (s *Service) IdentityFor(user *models.AdminUser, source string) session.Identity {
	if source == "" {
		source = SourceLocal
		if s.db == nil {
			source = SourceBootstrap
		}
	}

	perms := user.Permissions
	if user.Role == models.RoleAdmin {
		perms = AllPermissions()
	}

	if perms == nil {
		perms = []string{}
	}

	return session.Identity{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		Permissions: perms,
		Source:      source,
	}
}

// Refresh reloads the stored user behind identity so that deactivated
// accounts and changed permissions apply to running sessions.
func (s *Service) Refresh(identity session.Identity) (session.Identity, error) {
	if s.db == nil {
		return identity, nil
	}

	if identity.Source == SourceBootstrap {
		return session.Identity{}, ErrBootstrapSession
	}

	user, err := s.local.GetUserByID(identity.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return session.Identity{}, err
		}

		return session.Identity{}, fmt.Errorf("failed to reload user: %w", err)
	}

	if !user.IsActive {
		return session.Identity{}, ErrUserAccountDisabled
	}

	return s.IdentityFor(user, identity.Source), nil
}

// HasPermission reports whether identity holds permission.
func HasPermission(identity session.Identity, permission string) bool {
	if identity.Role == models.RoleAdmin {
		return true
	}

	for _, p := range identity.Permissions {
		if p == permission {
			return true
		}
	}

	return false
}
