package user

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/users-api/internal/storage/memory"
	"github.com/aanand-mishra/users-api/internal/types"
	"github.com/aanand-mishra/users-api/internal/utils/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the five user routes onto a fresh in-memory store,
// the same way main does. Requests must travel through the mux so the
// {id} path value gets bound.
func newTestRouter() *http.ServeMux {
	store := memory.New()

	router := http.NewServeMux()
	router.HandleFunc("POST /users", New(store))
	router.HandleFunc("GET /users", GetList(store))
	router.HandleFunc("GET /users/{id}", GetByID(store))
	router.HandleFunc("PUT /users/{id}", Update(store))
	router.HandleFunc("DELETE /users/{id}", Delete(store))
	return router
}

func do(t *testing.T, router *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, router *http.ServeMux, name, email string, age int) types.User {
	t.Helper()
	body := fmt.Sprintf(`{"name": %q, "email": %q, "age": %d}`, name, email, age)
	rec := do(t, router, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusCreated, rec.Code, "create failed: %s", rec.Body.String())

	var user types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func errMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

// ─────────────────────────────────────────────────────────────────────────────
// Create
// ─────────────────────────────────────────────────────────────────────────────

func TestCreate_ReturnsCreatedRecord(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/users",
		`{"name": "Juan Perez", "email": "juan@example.com", "age": 30}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var user types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Juan Perez", user.Name)
	assert.Equal(t, "juan@example.com", user.Email)
	assert.Equal(t, 30, user.Age)
}

func TestCreate_AssignsDistinctIDs(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	first := createUser(t, router, "Juan Perez", "juan@example.com", 30)
	second := createUser(t, router, "Ana Gomez", "ana@example.com", 25)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_ValidationListsEveryProblem(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/users", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		"field name is required, field email is required, field age is required",
		errMessage(t, rec))
}

func TestCreate_EmptyBody(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/users", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is empty", errMessage(t, rec))
}

func TestCreate_WrongFieldType(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/users",
		`{"name": "Juan Perez", "email": "juan@example.com", "age": "thirty"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "field age must be of type integer", errMessage(t, rec))
}

func TestCreate_MalformedJSON(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodPost, "/users", `{"name": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "malformed request body", errMessage(t, rec))
}

func TestCreate_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	// The record is normalized to exactly name/email/age; extra keys
	// are dropped, not rejected.
	rec := do(t, router, http.MethodPost, "/users",
		`{"name": "Juan Perez", "email": "juan@example.com", "age": 30, "role": "admin"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "role")
}

func TestCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	createUser(t, router, "Juan Perez", "juan@example.com", 30)

	rec := do(t, router, http.MethodPost, "/users",
		`{"name": "Otro Juan", "email": "juan@example.com", "age": 40}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email juan@example.com is already in use", errMessage(t, rec))
}

// ─────────────────────────────────────────────────────────────────────────────
// List
// ─────────────────────────────────────────────────────────────────────────────

func TestList_EmptyArray(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodGet, "/users", "")

	require.Equal(t, http.StatusOK, rec.Code)
	// [] — not null: an empty collection is still a collection.
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestList_InsertionOrder(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	first := createUser(t, router, "Aaa Aaa", "a@example.com", 20)
	second := createUser(t, router, "Bbb Bbb", "b@example.com", 21)
	third := createUser(t, router, "Ccc Ccc", "c@example.com", 22)

	rec := do(t, router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var users []types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{users[0].ID, users[1].ID, users[2].ID})
}

// ─────────────────────────────────────────────────────────────────────────────
// Get one
// ─────────────────────────────────────────────────────────────────────────────

func TestGetByID_ReturnsStoredRecord(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	created := createUser(t, router, "Juan Perez", "juan@example.com", 30)

	rec := do(t, router, http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, created, user)
}

func TestGetByID_UnknownID(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodGet, "/users/never-issued", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no user found with id: never-issued", errMessage(t, rec))
}

// ─────────────────────────────────────────────────────────────────────────────
// Replace
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReplacesEveryField(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	created := createUser(t, router, "Juan Perez", "juan@example.com", 30)

	rec := do(t, router, http.MethodPut, "/users/"+created.ID,
		`{"name": "Juan Perez Modificado", "email": "juanmod@example.com", "age": 35}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Juan Perez Modificado", updated.Name)
	assert.Equal(t, "juanmod@example.com", updated.Email)
	assert.Equal(t, 35, updated.Age)

	// A subsequent read reflects every replaced field.
	rec = do(t, router, http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, updated, got)
}

func TestUpdate_MissingIDBeatsInvalidBody(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	// The existence check runs before validation: a nonexistent id with
	// an invalid body reports 404, never 400.
	rec := do(t, router, http.MethodPut, "/users/never-issued", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no user found with id: never-issued", errMessage(t, rec))

	// Even an empty body does not change the answer.
	rec = do(t, router, http.MethodPut, "/users/never-issued", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdate_ValidationFailure(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	created := createUser(t, router, "Juan Perez", "juan@example.com", 30)

	rec := do(t, router, http.MethodPut, "/users/"+created.ID,
		`{"name": "Jo", "email": "not-an-email", "age": 300}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg := errMessage(t, rec)
	assert.Contains(t, msg, "field name must be at least 3 characters long")
	assert.Contains(t, msg, "field email must be a valid email address")
	assert.Contains(t, msg, "field age must be at most 120")
}

func TestUpdate_EmailConflict(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	createUser(t, router, "Juan Perez", "juan@example.com", 30)
	other := createUser(t, router, "Ana Gomez", "ana@example.com", 25)

	// Taking another record's email conflicts.
	rec := do(t, router, http.MethodPut, "/users/"+other.ID,
		`{"name": "Ana Gomez", "email": "juan@example.com", "age": 25}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email juan@example.com is already in use", errMessage(t, rec))

	// Keeping your own unchanged email does not.
	rec = do(t, router, http.MethodPut, "/users/"+other.ID,
		`{"name": "Ana Gomez Actualizada", "email": "ana@example.com", "age": 26}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────────────────────────────────────

func TestDelete_RemovesRecord(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	created := createUser(t, router, "Juan Perez", "juan@example.com", 30)

	rec := do(t, router, http.MethodDelete, "/users/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len(), "204 must carry an empty body")

	rec = do(t, router, http.MethodGet, "/users/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Deleting again: the id no longer addresses anything.
	rec = do(t, router, http.MethodDelete, "/users/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_UnknownID(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	rec := do(t, router, http.MethodDelete, "/users/never-issued", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no user found with id: never-issued", errMessage(t, rec))
}

// ─────────────────────────────────────────────────────────────────────────────
// End to end
// ─────────────────────────────────────────────────────────────────────────────

func TestScenario_CreateListGetReplaceDelete(t *testing.T) {
	t.Parallel()
	router := newTestRouter()

	// Create.
	created := createUser(t, router, "Juan Perez", "juan@example.com", 30)

	// List contains exactly that record.
	rec := do(t, router, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, created, users[0])

	// Get it back.
	rec = do(t, router, http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Replace it.
	rec = do(t, router, http.MethodPut, "/users/"+created.ID,
		`{"name": "Juan Perez Modificado", "email": "juanmod@example.com", "age": 35}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Juan Perez Modificado", updated.Name)

	// Delete it.
	rec = do(t, router, http.MethodDelete, "/users/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// And it is gone.
	rec = do(t, router, http.MethodGet, "/users/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
