// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The in-memory store is the default backend; this one is selected with
// storage_type: sqlite. It runs entirely in-process (no server, no
// network hop — a single file on disk), so switching to it changes where
// records live without changing the concurrency story the handlers see.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/users-api/internal/config"
	"github.com/aanand-mishra/users-api/internal/storage"
	"github.com/aanand-mishra/users-api/internal/types"

	"github.com/google/uuid"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	// Without this the sql.Open("sqlite3", ...) call would fail with
	// "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the SQLite implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the users
// table if it does not already exist, and returns a ready-to-use *SQLite.
//
// The id column is TEXT, not an autoincrement integer: ids are UUIDs
// generated in CreateUser, the same generator the in-memory store uses,
// so the two backends hand out indistinguishable identifiers. The table
// keeps its implicit rowid, which increases monotonically with inserts —
// that is what GetUsers orders by to return records in insertion order.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	// The first actual connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id    TEXT    PRIMARY KEY,
			name  TEXT    NOT NULL,
			email TEXT    NOT NULL,
			age   INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// CreateUser inserts a new row with a freshly generated UUID and returns
// the stored record.
//
// Prepared statements (the ? placeholders) keep user input out of the SQL
// text itself — the driver sends query and values separately, so a value
// can never be parsed as SQL syntax.
func (s *SQLite) CreateUser(name string, email string, age int) (types.User, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO users (id, name, email, age) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return types.User{}, fmt.Errorf("CreateUser: prepare: %w", err)
	}
	// defer ensures the statement is closed when this function returns,
	// even if we return early due to an error.
	defer stmt.Close()

	user := types.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Age:   age,
	}

	if _, err := stmt.Exec(user.ID, user.Name, user.Email, user.Age); err != nil {
		return types.User{}, fmt.Errorf("CreateUser: exec: %w", err)
	}

	return user, nil
}

// GetUserByID fetches exactly one row matched by primary key.
// Returns storage.ErrUserNotFound (not a bare sql.ErrNoRows) so the
// handler layer can map "missing" to 404 without knowing which backend
// it is talking to.
func (s *SQLite) GetUserByID(id string) (types.User, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, age FROM users WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.User{}, fmt.Errorf("GetUserByID: prepare: %w", err)
	}
	defer stmt.Close()

	var user types.User

	// QueryRow returns exactly one row. If the query finds no match the
	// error surfaces only when you call Scan.
	err = stmt.QueryRow(id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Age,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.User{}, storage.ErrUserNotFound
		}
		return types.User{}, fmt.Errorf("GetUserByID: scan: %w", err)
	}

	return user, nil
}

// GetUsers returns all rows ordered by rowid — the order they were
// inserted in.
func (s *SQLite) GetUsers() ([]types.User, error) {
	stmt, err := s.Db.Prepare(
		// Explicitly list columns — if a column is added later,
		// SELECT * would break Scan's ordering.
		"SELECT id, name, email, age FROM users ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("GetUsers: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		return nil, fmt.Errorf("GetUsers: query: %w", err)
	}
	defer rows.Close() // must close rows to free the DB connection

	// Pre-allocate an empty (non-nil) slice.
	// Returning [] instead of null in JSON is better API behaviour.
	users := make([]types.User, 0)

	for rows.Next() { // advances cursor; returns false when exhausted
		var user types.User

		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Age,
		); err != nil {
			return nil, fmt.Errorf("GetUsers: scan row: %w", err)
		}

		users = append(users, user)
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetUsers: rows iteration: %w", err)
	}

	return users, nil
}

// EmailInUse reports whether any row other than excludeID holds the given
// email. The id <> ? comparison is harmless when excludeID is empty: no
// row has an empty id, so nothing gets excluded — exactly the semantics
// the create path wants.
func (s *SQLite) EmailInUse(email string, excludeID string) (bool, error) {
	stmt, err := s.Db.Prepare(
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = ? AND id <> ?)",
	)
	if err != nil {
		return false, fmt.Errorf("EmailInUse: prepare: %w", err)
	}
	defer stmt.Close()

	var inUse bool
	if err := stmt.QueryRow(email, excludeID).Scan(&inUse); err != nil {
		return false, fmt.Errorf("EmailInUse: scan: %w", err)
	}

	return inUse, nil
}

// UpdateUserByID replaces a row's name, email, and age, preserving the id
// and the row's position in insertion order (the rowid never changes).
// RowsAffected tells us whether the id matched anything at all.
func (s *SQLite) UpdateUserByID(id string, user types.User) (types.User, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE users SET name = ?, email = ?, age = ? WHERE id = ?",
	)
	if err != nil {
		return types.User{}, fmt.Errorf("UpdateUserByID: prepare: %w", err)
	}
	defer stmt.Close()

	// Note the argument order matches the ? order in the SQL:
	//   name, email, age, id
	result, err := stmt.Exec(user.Name, user.Email, user.Age, id)
	if err != nil {
		return types.User{}, fmt.Errorf("UpdateUserByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, fmt.Errorf("UpdateUserByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.User{}, storage.ErrUserNotFound
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.GetUserByID(id)
}

// DeleteUserByID removes a row by primary key, reporting
// storage.ErrUserNotFound when the id matched nothing.
func (s *SQLite) DeleteUserByID(id string) error {
	stmt, err := s.Db.Prepare("DELETE FROM users WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeleteUserByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("DeleteUserByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteUserByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
