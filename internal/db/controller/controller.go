// Package controller holds what the entity controllers below it share.
package controller

import "errors"

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("record not found")
)

// Page limits a list query.
type Page struct {
	Limit  int
	Offset int
}

const (
	// DefaultLimit is used when Page.Limit is not positive.
	DefaultLimit = 50
	// MaxLimit caps Page.Limit.
	MaxLimit = 200
)

// Normalize clamps limit and offset into their valid range.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}
