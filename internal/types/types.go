// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, validation, and utils can all import types without
// depending on each other.
package types

// User represents one user record held by the store.
//
// The ID is an opaque string assigned by the store when the record is
// created (a UUID). It never changes and is never reused, even after the
// record is deleted.
//
// The json:"..." tags control how the record appears on the wire:
//
//	{ "id": "4f9d...", "name": "Juan Perez", "email": "juan@example.com", "age": 30 }
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

// UserPayload is the shape of an inbound create/replace request body.
//
// Every field is a POINTER so an absent field can be told apart from a
// zero value: {"age": 0} must pass validation (0 is inside the allowed
// range) while a body with no "age" key at all must fail the "required"
// rule. With plain values both would decode to 0 and be indistinguishable.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — field names exactly as the API consumer sends them.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package. "required" on a pointer means "key was present"; the
//     remaining rules apply to the pointed-to value. The custom
//     alpha_space rule is registered in internal/validation.
type UserPayload struct {
	Name  *string `json:"name"  validate:"required,min=3,alpha_space"`
	Email *string `json:"email" validate:"required,email"`
	Age   *int    `json:"age"   validate:"required,gte=0,lte=120"`
}
