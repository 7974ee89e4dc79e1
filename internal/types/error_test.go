package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_SetKindAndMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		kind ErrorKind
	}{
		{name: "validation", err: ValidationError("field name is required"), kind: KindValidation},
		{name: "conflict", err: ConflictError("email taken"), kind: KindConflict},
		{name: "not found", err: NotFoundError("no such record"), kind: KindNotFound},
		{name: "unexpected", err: UnexpectedError("disk on fire"), kind: KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestUnexpectedError_EmptyMessageFallsBack(t *testing.T) {
	t.Parallel()

	err := UnexpectedError("")
	assert.Equal(t, GenericUnexpectedMessage, err.Message)
}

func TestError_TravelsThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("replacing record: %w", NotFoundError("no user found with id: abc"))

	var appErr *Error
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, KindNotFound, appErr.Kind)
	assert.Equal(t, "no user found with id: abc", appErr.Message)
}
