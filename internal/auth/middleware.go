package auth

import (
	"context"
	"net/http"
	"strings"
)

// contextKey is an unexported type used for context keys in this package.
//
// context.WithValue takes any key, but a plain string key like "identity"
// could be read or shadowed by any package that knows the string. A
// package-private type means only this package can put identities into, or
// take them out of, a request context.
type contextKey string

const identityKey contextKey = "identity"

// RequireAuth is a middleware that enforces authentication on the mutating
// post routes.
//
// It reads the JWT from the "Authorization: Bearer <token>" header, validates
// it, and stores the identity in the request context. The three failure modes
// get distinct messages — the admin UI shows them verbatim when a session
// expires mid-edit:
//
//	no Authorization header          → 401 "Missing Authorization"
//	header without a token after it  → 401 "Missing token"
//	bad signature / expired / junk   → 401 "Invalid token"
//
// The token travels in a header rather than a cookie because the frontend is
// hosted separately from this API — a SameSite cookie wouldn't be sent on
// cross-origin fetches, and the admin UI already holds the token in memory.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeUnauthorized(w, "Missing Authorization")
				return
			}

			// "Bearer <token>" — everything after the first space.
			_, tokenStr, found := strings.Cut(header, " ")
			if !found || tokenStr == "" {
				writeUnauthorized(w, "Missing token")
				return
			}

			id, err := tokens.Validate(tokenStr)
			if err != nil {
				writeUnauthorized(w, "Invalid token")
				return
			}

			// Store the identity in context so handlers can read it
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the authenticated identity from the request
// context. Returns (nil, false) if the request did not pass through
// RequireAuth.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// writeUnauthorized sends a 401 with the same {"message": ...} JSON shape the
// handlers use. The messages are fixed strings, so building the body by hand
// is safe and keeps this package free of a dependency on handler.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}
