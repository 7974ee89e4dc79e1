// Package storage defines the Storage interface — a contract that any
// record-store backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which backend holds the
// records. By depending only on this interface:
//
//   - Switching backends = implement the interface for the new store,
//     change one line in main.go. Zero handler changes. This repo ships
//     two: the in-memory store (the default) and a SQLite store.
//
//   - Writing tests = construct a fresh store per test case. No shared
//     global state between tests.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"errors"

	"github.com/aanand-mishra/users-api/internal/types"
)

// ErrUserNotFound is the sentinel returned by every operation that
// addresses a record by id when no such record exists. Handlers map it to
// a 404; anything else a backend returns maps to a 500.
var ErrUserNotFound = errors.New("user not found")

// Storage is the record-store contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// CreateUser stores a new record, assigning it a fresh unique id,
	// and returns the stored record. It assumes the caller has already
	// validated the fields and checked the email for uniqueness.
	CreateUser(name string, email string, age int) (types.User, error)

	// GetUsers returns every record in insertion order.
	// Returns an empty slice (not nil) when there are no records.
	GetUsers() ([]types.User, error)

	// GetUserByID fetches a single record by id.
	// Returns ErrUserNotFound when no record has that id.
	GetUserByID(id string) (types.User, error)

	// EmailInUse reports whether any record OTHER than the one matching
	// excludeID holds the given email. Pass an empty excludeID to check
	// against every record (the create path); pass the id being replaced
	// to let a record keep its own email (the replace path).
	EmailInUse(email string, excludeID string) (bool, error)

	// UpdateUserByID overwrites the name, email, and age of an existing
	// record, preserving its id, and returns the updated record.
	// Returns ErrUserNotFound when no record has that id.
	UpdateUserByID(id string, user types.User) (types.User, error)

	// DeleteUserByID removes a record permanently.
	// Returns ErrUserNotFound when no record has that id.
	DeleteUserByID(id string) error
}
