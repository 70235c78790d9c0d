package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrOIDCIncomplete is returned when oidc is enabled without provider url or client id.
	ErrOIDCIncomplete = errors.New("config oidc needs providerurl and clientid when enabled")
)
