package testutil

import (
	"net/http"
	"time"

	id "bahay/pkg/domain"
	"bahay/pkg/requestcontext"
)

// WithUser stamps an authenticated user onto the request context, simulating
// what the auth middleware does for real requests. Invalid user IDs are
// silently ignored so tests can probe unauthenticated paths.
func WithUser(req *http.Request, userID, role string) *http.Request {
	ctx := req.Context()
	if parsed, err := id.ParseUserID(userID); err == nil {
		ctx = requestcontext.WithUserID(ctx, parsed)
		ctx = requestcontext.WithUserRole(ctx, role)
	}
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock, which drives permit
// evaluation dates.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID injects a request ID for log and audit correlation checks.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
