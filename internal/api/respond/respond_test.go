package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvalente/bloglist-be/internal/apperr"
)

// decodeErrorBody asserts the body is a JSON object with exactly the one
// "error" key and returns its value.
func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	msg, ok := body["error"].(string)
	require.True(t, ok, "error value must be a string")
	return msg
}

func TestErrorMapsEveryKind(t *testing.T) {
	cases := []struct {
		name   string
		err    *apperr.Error
		status int
	}{
		{"validation", apperr.Validation("title is required"), http.StatusBadRequest},
		{"malformed id", apperr.MalformedID("malformed blog id"), http.StatusBadRequest},
		{"duplicate", apperr.Duplicate("username must be unique"), http.StatusBadRequest},
		{"authentication", apperr.Authentication("invalid token"), http.StatusUnauthorized},
		{"authorization", apperr.Authorization("unauthorized user"), http.StatusForbidden},
		{"not found", apperr.NotFound("blog not found"), http.StatusNotFound},
		{"unknown route", apperr.UnknownRoute(), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.err.Message, decodeErrorBody(t, rec))
		})
	}
}

func TestErrorHidesUnknownFailures(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeErrorBody(t, rec))
}

func TestErrorUnwrapsCause(t *testing.T) {
	wrapped := &apperr.Error{
		Kind:    apperr.KindAuthentication,
		Message: "token expired",
		Err:     errors.New("exp claim in the past"),
	}
	rec := httptest.NewRecorder()
	Error(rec, wrapped)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// The cause never reaches the client.
	assert.Equal(t, "token expired", decodeErrorBody(t, rec))
}
