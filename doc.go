// Package main provides the entry point of the GrowFastWithUs site.
// It serves the marketing pages and a JSON API for contact requests, the
// automation template catalog and the pricing calculator, plus an admin API
// behind a server session for templates, site settings, reviews, email
// settings and media. Content falls back to built-in defaults when no
// database is configured.
package main
