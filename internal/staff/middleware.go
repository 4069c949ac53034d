package staff

import (
	"context"
	"net/http"

	"github.com/appetiteclub/apt"
)

// Identity headers are injected by the identity proxy fronting this service.
// Session mechanics live there; this service only consumes the result.
const (
	IdentityUserHeader  = "X-Staff-User"
	IdentityAdminHeader = "X-Staff-Admin"
)

type identityKey struct{}

// Identity is the authenticated staff member attached to a request.
type Identity struct {
	Username string
	IsAdmin  bool
}

// IdentityFromContext returns the identity stored by RequireIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// RequireIdentity rejects requests without an authenticated staff identity.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromRequest(r)
		if !ok {
			apt.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose identity lacks the admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromRequest(r)
		if !ok {
			apt.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if !identity.IsAdmin {
			apt.RespondError(w, http.StatusForbidden, "Admin access required")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromRequest(r *http.Request) (Identity, bool) {
	username := NormalizeUsername(r.Header.Get(IdentityUserHeader))
	if username == "" {
		return Identity{}, false
	}
	return Identity{
		Username: username,
		IsAdmin:  r.Header.Get(IdentityAdminHeader) == "true",
	}, true
}
