// Package memory provides the in-memory implementation of the
// storage.Storage interface — the backend the service runs on by default.
//
// Records live in a plain slice for the lifetime of the process. A slice
// (rather than a map) keeps them in insertion order, which is the order
// GET /users must return them in, and linear scans are perfectly adequate
// at the scale this service is built for. Nothing is written to disk: the
// collection starts empty at process start and vanishes at process exit.
//
// WHY A MUTEX?
// ────────────
// Go's net/http serves every request on its own goroutine, so two handlers
// can reach the store at the same moment. Locking around each operation
// makes the operation atomic: a reader can never observe a half-written
// record, and mutations become visible in the order they complete.
package memory

import (
	"sync"

	"github.com/aanand-mishra/users-api/internal/storage"
	"github.com/aanand-mishra/users-api/internal/types"

	"github.com/google/uuid"
)

// Store is the in-memory record store. Construct it with New — the zero
// value works too, but New keeps the construction site explicit so every
// test can own an independent store.
type Store struct {
	mu    sync.Mutex
	users []types.User
}

// New returns an empty store.
func New() *Store {
	return &Store{users: make([]types.User, 0)}
}

// CreateUser assigns a fresh UUID, appends the record, and returns it.
// UUIDs make id collisions and id reuse non-issues: deleting a record
// never frees an id for somebody else.
func (s *Store) CreateUser(name string, email string, age int) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := types.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Age:   age,
	}
	s.users = append(s.users, user)
	return user, nil
}

// GetUsers returns a copy of every record in insertion order. Returning a
// copy means callers can never alias the slice backing the store and
// observe later mutations through it.
func (s *Store) GetUsers() ([]types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]types.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

// GetUserByID scans for the record with the given id.
func (s *Store) GetUserByID(id string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, storage.ErrUserNotFound
}

// EmailInUse reports whether a record other than excludeID holds the
// email. Matching is exact (case-sensitive), mirroring the equality the
// store uses everywhere else.
func (s *Store) EmailInUse(email string, excludeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// UpdateUserByID overwrites name, email, and age in place, preserving the
// record's id and its position in insertion order.
func (s *Store) UpdateUserByID(id string, user types.User) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Name = user.Name
			s.users[i].Email = user.Email
			s.users[i].Age = user.Age
			return s.users[i], nil
		}
	}
	return types.User{}, storage.ErrUserNotFound
}

// DeleteUserByID removes the record, shifting later records down so the
// remaining order is untouched.
func (s *Store) DeleteUserByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return storage.ErrUserNotFound
}
