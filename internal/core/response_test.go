// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) *AppError {
	t.Helper()

	var body struct {
		Success bool      `json:"success"`
		Error   *AppError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.NotNil(t, body.Error)
	return body.Error
}

func TestRespondError(t *testing.T) {
	t.Run("insufficient credits keeps real amounts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("apply debit: %w", InsufficientCreditsError(5, 2))

		RespondError(rec, err)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		appErr := decodeErrorBody(t, rec)
		assert.Equal(t, "INSUFFICIENT_CREDITS", appErr.Code)
		assert.Equal(t, float64(5), appErr.Details["required"])
		assert.Equal(t, float64(2), appErr.Details["balance"])
	})

	t.Run("invalid transition keeps states and allowed set", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf(
			"change status: %w",
			InvalidTransitionError("draft", "closed", []string{"active"}),
		)

		RespondError(rec, err)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		appErr := decodeErrorBody(t, rec)
		assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
		assert.Equal(t, "draft", appErr.Details["from"])
		assert.Equal(t, "closed", appErr.Details["target"])
		assert.Equal(t, []any{"active"}, appErr.Details["allowed"])
	})

	t.Run("bare sentinels map to their status", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
		}{
			{fmt.Errorf("load: %w", ErrNotFound), http.StatusNotFound},
			{fmt.Errorf("auth: %w", ErrForbidden), http.StatusForbidden},
			{fmt.Errorf("insert: %w", ErrDuplicateKey), http.StatusConflict},
			{fmt.Errorf("parse: %w", ErrInvalidInput), http.StatusBadRequest},
		}
		for _, tc := range cases {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		}
	})

	t.Run("constructors still match their sentinels", func(t *testing.T) {
		assert.ErrorIs(t, InsufficientCreditsError(5, 2), ErrInsufficientCredits)
		assert.ErrorIs(t, InvalidTransitionError("a", "b", nil), ErrInvalidTransition)
		assert.ErrorIs(t, ConflictError("taken", nil), ErrConflict)
		assert.ErrorIs(t, NotFoundError("job"), ErrNotFound)
	})
}
