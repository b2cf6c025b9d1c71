package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed", ErrPasswordIncorrect, KindUnauthorized},
		{"wrapped typed", fmt.Errorf("update schedule: %w", ErrIDNotFound), KindNotFound},
		{"untyped", errors.New("connection refused"), KindInternal},
		{"conflict", ErrUserIDExist, KindConflict},
		{"bad request helper", BadRequest("title is required"), KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	cause := errors.New("duplicate key")
	wrapped := ErrUserIDExist.Wrap(cause)

	assert.True(t, errors.Is(wrapped, ErrUserIDExist))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, errors.Is(wrapped, ErrIDExist))

	custom := ErrInvalidRequest.WithMessage("page must be a number")
	assert.True(t, errors.Is(custom, ErrInvalidRequest))
	assert.Equal(t, "page must be a number", custom.Message)
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrIDNotFound.Status())
	assert.Equal(t, http.StatusConflict, ErrUserIDExist.Status())
	assert.Equal(t, http.StatusUnauthorized, ErrIDIncorrect.Status())
	assert.Equal(t, http.StatusBadRequest, ErrInvalidDateField.Status())
	assert.Equal(t, http.StatusInternalServerError, From(errors.New("boom")).Status())
}
