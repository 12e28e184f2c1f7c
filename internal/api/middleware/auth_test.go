package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotOrgID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrgID, gotOK = OrgIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	serve := func(header string) *httptest.ResponseRecorder {
		gotOrgID, gotOK = 0, false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(OrgIDHeader, header)
		}
		rec := httptest.NewRecorder()
		Auth(next).ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid org id passes through", func(t *testing.T) {
		rec := serve("42")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotOK)
		assert.Equal(t, int64(42), gotOrgID)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, gotOK)
	})

	t.Run("non-numeric header", func(t *testing.T) {
		rec := serve("acme")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-positive org id", func(t *testing.T) {
		rec := serve("0")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestID(t *testing.T) {
	var gotRID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRID = RequestIDFromContext(r.Context())
	})

	t.Run("caller id is reused and echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "rid-123")
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		assert.Equal(t, "rid-123", gotRID)
		assert.Equal(t, "rid-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("id is generated when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		RequestID(next).ServeHTTP(rec, req)

		require.NotEmpty(t, gotRID)
		assert.Equal(t, gotRID, rec.Header().Get(RequestIDHeader))
	})
}
