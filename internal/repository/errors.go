// Package repository implements the catalog store on MySQL. It
// defines error values that are reused across repositories so that
// higher layers can distinguish failure scenarios without parsing
// driver messages.
package repository

import (
	"errors"
	"strings"
)

// ErrDuplicate is returned when an insert violates a unique index
// (duplicate employee email, second bill for an order, second
// reservation for a table). The services translate this into their
// Conflict error kind.
var ErrDuplicate = errors.New("duplicate key")

// isDuplicate reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
