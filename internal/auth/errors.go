package auth

import "errors"

var (
	// ErrNoIDToken is returned when the OAuth2 token response doesn't contain an ID token.
	// This typically indicates a misconfigured OIDC provider or an incomplete authentication flow.
	ErrNoIDToken = errors.New("no id_token in token response")

	// ErrUserNameExists is returned when attempting to create a user with a username that already exists.
	ErrUserNameExists = errors.New("user with username already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database or configuration.
	ErrUserNotFound = errors.New("user not found")

	// ErrTOTPRequired is returned when the account has a second factor and no code was sent.
	ErrTOTPRequired = errors.New("totp code required")

	// ErrInvalidTOTP is returned when the second factor code does not validate.
	ErrInvalidTOTP = errors.New("invalid totp code")

	// ErrUnknownSubject is returned when an identity-provider account maps to no admin user.
	ErrUnknownSubject = errors.New("identity provider account is not an admin")

	// ErrInvalidRole is returned for roles other than admin and editor.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUnknownPermission is returned when creating a user with an unknown permission.
	ErrUnknownPermission = errors.New("unknown permission")

	// ErrBootstrapSession is returned for a session of the bootstrap admin
	// once a database is configured.
	ErrBootstrapSession = errors.New("bootstrap session is not valid with a database")

	// ErrNoDatabase is returned by operations that need the admin_users table.
	ErrNoDatabase = errors.New("database not configured")
)
