// Package oidc signs admins in through an OpenID Connect provider.
//
// The provider subject must resolve to an existing admin user, either by its
// linked external id or, on first sign in, by a verified email address.
// Successful sign in issues the same server session as the password login.
//
//	GET /auth/oidc/login    - redirect to the provider
//	GET /auth/oidc/callback - verify state and code, create the session
//	GET /auth/oidc/logout   - end the session, and the provider one when supported
package oidc
