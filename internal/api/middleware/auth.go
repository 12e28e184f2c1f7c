package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/MSH-ConflictService/internal/api/handlers"
)

// OrgIDHeader carries the caller's organisation scope
const OrgIDHeader = "X-Org-ID"

type contextKey string

const orgIDKey contextKey = "orgID"

// Auth requires a positive integer X-Org-ID header and stores it in the
// request context. Requests without a valid org scope are rejected.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OrgIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing "+OrgIDHeader+" header")
			return
		}

		orgID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || orgID <= 0 {
			handlers.RespondUnauthorized(w, "invalid "+OrgIDHeader+" header")
			return
		}

		ctx := context.WithValue(r.Context(), orgIDKey, orgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrgIDFromContext extracts the org scope stored by Auth.
func OrgIDFromContext(ctx context.Context) (int64, bool) {
	orgID, ok := ctx.Value(orgIDKey).(int64)
	return orgID, ok
}
