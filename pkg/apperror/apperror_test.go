package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMapping(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
		code   string
	}{
		{KindValidation, http.StatusBadRequest, "ERR_VALIDATION"},
		{KindUnauthorized, http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{KindNotFound, http.StatusNotFound, "ERR_NOT_FOUND"},
		{KindConflict, http.StatusConflict, "ERR_CONFLICT"},
		{KindStoreUnavailable, http.StatusServiceUnavailable, "ERR_STORE_UNAVAILABLE"},
		{KindInternal, http.StatusInternalServerError, "ERR_INTERNAL"},
		{Kind(99), http.StatusInternalServerError, "ERR_INTERNAL"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
			assert.Equal(t, tt.code, tt.kind.Code())
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("insert cage: %w", Wrap(KindConflict, cause, "cage already exists"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "not here", NotFound("not here").Error())
	assert.Equal(t, "failed: io", Wrap(KindInternal, errors.New("io"), "failed").Error())

	v := Validation("invalid", FieldError{Field: "name", Message: "name is required"})
	assert.Len(t, v.Details, 1)
	assert.Equal(t, KindValidation, v.Kind)
}
