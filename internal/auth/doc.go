// Package auth authenticates admin users and guards the admin api.
//
// Two sign in paths issue the same server side session:
//   - LocalProvider checks a username and argon2id password against the
//     admin_users table. Without a database it accepts only the bootstrap
//     admin from the configuration.
//   - OIDCProvider runs the authorization code flow against an external
//     identity provider and maps the subject to an existing admin user,
//     linking it by email on first sign in.
//
// Accounts with a TOTP secret must also present a valid code.
//
// # Authorization
//
// Role admin holds every permission. Role editor holds only the permissions
// stored on the user. RequirePermission reads the request Identity placed in
// fiber.Ctx.Locals by the session middleware.
//
// Example usage:
//
//	authService := auth.NewService(db, cfg.Admin)
//
//	user, err := authService.Login(username, password, code)
//
//	app.Put("/api/admin/site-settings",
//	    auth.RequirePermission(auth.PermSettingsWrite),
//	    handler,
//	)
package auth
