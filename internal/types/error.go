// Error is the structured failure value every handler produces instead of
// writing an error response itself. A failure carries a KIND (what went
// wrong) and a MESSAGE (what to tell the caller); the mapping from kind to
// HTTP status code lives in exactly one place, internal/utils/response.
//
// Keeping the kinds enumerable means the full failure surface of the API
// is visible right here — there is no unchecked propagation path that can
// smuggle a new status code into a response.
package types

// ErrorKind enumerates every failure the handlers can signal.
type ErrorKind int

const (
	// KindValidation — one or more field rules violated (maps to 400).
	// The message lists every violated rule, comma-separated, so the
	// caller sees all problems at once rather than one at a time.
	KindValidation ErrorKind = iota

	// KindConflict — the email is already used by a different record
	// (maps to 409).
	KindConflict

	// KindNotFound — no record with the given id (maps to 404).
	KindNotFound

	// KindUnexpected — catch-all for anything else (maps to 500).
	KindUnexpected
)

// GenericUnexpectedMessage is the notice used when an unexpected failure
// carries no message of its own. Internal details (driver errors and the
// like) stay in the logs, not in the response body.
const GenericUnexpectedMessage = "unexpected error"

// Error is a failure with an enumerable kind. It implements the error
// interface so it can travel through ordinary error returns.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ValidationError builds a KindValidation failure.
func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ConflictError builds a KindConflict failure.
func ConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFoundError builds a KindNotFound failure.
func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// UnexpectedError builds a KindUnexpected failure. An empty message is
// replaced with GenericUnexpectedMessage.
func UnexpectedError(message string) *Error {
	if message == "" {
		message = GenericUnexpectedMessage
	}
	return &Error{Kind: KindUnexpected, Message: message}
}
