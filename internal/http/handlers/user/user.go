// Package user contains all HTTP handlers related to the User resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like the record store.
// To inject dependencies we use a factory function that accepts them and
// returns a function with the exact signature the router needs. The inner
// function "closes over" the outer parameters:
//
//	router.HandleFunc("POST /users", user.New(store))
//	//                                ^^^^^^^^^^^^^^
//	//                 New(store) is called ONCE at startup. It returns
//	//                 a handler func which is called on EVERY request.
//
// FAILURE DISCIPLINE:
// Every failure path builds a *types.Error (or forwards a raw error) and
// hands it to response.WriteError — the single terminal formatter. No
// handler picks a status code or writes an error body itself.
package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/aanand-mishra/users-api/internal/storage"
	"github.com/aanand-mishra/users-api/internal/types"
	"github.com/aanand-mishra/users-api/internal/utils/response"
	"github.com/aanand-mishra/users-api/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /users
// Creates a new user from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Juan Perez", "email": "juan@example.com", "age": 30 }
//
// Success response (201 Created) — the stored record, id included:
//
//	{ "id": "4f9d...", "name": "Juan Perez", "email": "juan@example.com", "age": 30 }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	409 Conflict    — email already used by another record
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a user")

		payload, decodeErr := decodePayload(r)
		if decodeErr != nil {
			response.WriteError(w, decodeErr)
			return
		}

		// ParseUser checks every field rule in one pass; its failure
		// message enumerates all violated rules at once.
		user, validateErr := validation.ParseUser(payload)
		if validateErr != nil {
			response.WriteError(w, validateErr)
			return
		}

		// Uniqueness is a store-wide question, so it is asked after the
		// per-field rules pass. Empty excludeID: no record may hold the
		// email.
		inUse, err := store.EmailInUse(user.Email, "")
		if err != nil {
			response.WriteError(w, err)
			return
		}
		if inUse {
			response.WriteError(w, types.ConflictError(
				fmt.Sprintf("email %s is already in use", user.Email)))
			return
		}

		created, err := store.CreateUser(user.Name, user.Email, user.Age)
		if err != nil {
			response.WriteError(w, err)
			return
		}

		slog.Info("user created", slog.String("id", created.ID))

		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /users
// Returns a JSON array of all users in insertion order.
//
// Returns an empty array [] (not null) when there are no users. This
// endpoint never fails with a 4xx.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all users")

		users, err := store.GetUsers()
		if err != nil {
			response.WriteError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, users)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /users/{id}
// Fetches a single user by id.
//
// Ids are opaque strings assigned by the store — there is nothing to
// parse or range-check. A path segment that matches no record is simply
// a 404, the same as a deleted or never-issued id.
//
// Success response (200 OK): the record.
// Error responses: 404 Not Found — no record with that id.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.PathValue("id") extracts the {id} segment from the URL
		// (Go 1.22+ named path parameters in ServeMux patterns).
		id := r.PathValue("id")
		slog.Info("getting a user", slog.String("id", id))

		user, err := store.GetUserByID(id)
		if err != nil {
			response.WriteError(w, notFoundOrUnexpected(err, id))
			return
		}

		response.WriteJSON(w, http.StatusOK, user)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /users/{id}
// Replaces ALL fields of an existing user; the id is preserved.
//
// STEP ORDER MATTERS AND IS OBSERVABLE:
//
//	1. existence check   → 404  (before even reading the body: a request
//	                             for a nonexistent id with an invalid
//	                             body reports 404, not 400)
//	2. decode + validate → 400
//	3. email uniqueness  → 409  (excluding this record — replacing a
//	                             user with their own email succeeds)
//	4. replace           → 200  with the updated record
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a user", slog.String("id", id))

		if _, err := store.GetUserByID(id); err != nil {
			response.WriteError(w, notFoundOrUnexpected(err, id))
			return
		}

		payload, decodeErr := decodePayload(r)
		if decodeErr != nil {
			response.WriteError(w, decodeErr)
			return
		}

		user, validateErr := validation.ParseUser(payload)
		if validateErr != nil {
			response.WriteError(w, validateErr)
			return
		}

		// excludeID = id: every OTHER record must be free of this email.
		inUse, err := store.EmailInUse(user.Email, id)
		if err != nil {
			response.WriteError(w, err)
			return
		}
		if inUse {
			response.WriteError(w, types.ConflictError(
				fmt.Sprintf("email %s is already in use", user.Email)))
			return
		}

		updated, err := store.UpdateUserByID(id, user)
		if err != nil {
			response.WriteError(w, notFoundOrUnexpected(err, id))
			return
		}

		slog.Info("user updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /users/{id}
// Permanently removes a user record.
//
// Success response (204 No Content): empty body — there is nothing to say
// about a record that no longer exists.
// Error responses: 404 Not Found — no record with that id (including one
// that was already deleted).
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a user", slog.String("id", id))

		if err := store.DeleteUserByID(id); err != nil {
			response.WriteError(w, notFoundOrUnexpected(err, id))
			return
		}

		slog.Info("user deleted", slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// notFoundOrUnexpected turns the store's not-found sentinel into the 404
// failure; anything else a backend reports is forwarded untouched so the
// formatter treats it as unexpected (500).
func notFoundOrUnexpected(err error, id string) error {
	if errors.Is(err, storage.ErrUserNotFound) {
		return types.NotFoundError(fmt.Sprintf("no user found with id: %s", id))
	}
	return err
}

// decodePayload reads the JSON request body into a UserPayload, turning
// decode failures into the same kind of failure a rule violation
// produces — from the caller's point of view "age was a string" and
// "age was 300" are both 400s about the age field.
func decodePayload(r *http.Request) (types.UserPayload, *types.Error) {
	var payload types.UserPayload

	err := json.NewDecoder(r.Body).Decode(&payload)
	if err == nil {
		return payload, nil
	}

	// io.EOF means the body was completely empty — nothing to decode.
	if errors.Is(err, io.EOF) {
		return payload, types.ValidationError("request body is empty")
	}

	// A type mismatch names the offending field. When Field is empty
	// the top-level value itself was not an object; that reads better
	// as the generic message below.
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return payload, types.ValidationError(fmt.Sprintf(
			"field %s must be of type %s", typeErr.Field, jsonTypeName(typeErr.Type)))
	}

	return payload, types.ValidationError("malformed request body")
}

// jsonTypeName names a Go type the way an API consumer thinks of it
// ("integer", not "int" — they are writing JSON, not Go).
func jsonTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return t.String()
	}
}
