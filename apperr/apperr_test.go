package apperr

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := Wrap(Unavailable, sql.ErrConnDone, "load user")
	wrapped := fmt.Errorf("record completion: %w", err)

	assert.Equal(t, Unavailable, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, sql.ErrConnDone))
	assert.True(t, IsKind(wrapped, Unavailable))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := New(NotFound, "lesson %s not found", "l1")

	assert.True(t, errors.Is(err, &Error{Kind: NotFound}))
	assert.False(t, errors.Is(err, &Error{Kind: Conflict}))
	assert.Equal(t, "lesson l1 not found", Message(err))
	assert.Equal(t, "unexpected error", Message(errors.New("boom")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		NotFound:        http.StatusNotFound,
		InvalidArgument: http.StatusBadRequest,
		Conflict:        http.StatusConflict,
		Unauthorized:    http.StatusUnauthorized,
		Forbidden:       http.StatusForbidden,
		Unavailable:     http.StatusServiceUnavailable,
		Internal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, HTTPStatus(kind), string(kind))
	}
}

func TestWriteRendersKindAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, New(Conflict, "email or username already in use"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "conflict", body["error"])
	assert.Equal(t, "email or username already in use", body["message"])
}

func TestWriteHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
