// Package auth gates the admin api behind a valid server session.
//
// The gate is mounted once on the admin prefix. Login, logout and the
// session check stay reachable without a session, every other admin route
// answers 401 until the caller signs in.
package auth
