package middleware

import (
	"net/http"

	"github.com/mssola/useragent"

	"bahay/pkg/requestcontext"
)

// Device condenses the User-Agent header into a short "Browser on OS" summary
// for audit events. Unparseable agents pass through as empty.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("User-Agent")
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ua := useragent.New(raw)
		name, _ := ua.Browser()
		summary := name
		if os := ua.OS(); os != "" {
			summary = name + " on " + os
		}

		ctx := requestcontext.WithDevice(r.Context(), summary)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
