package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

type contextKey string

const principalKey contextKey = "principal"

// errMalformedAuthorization marks a header that is present but not a Bearer credential.
var errMalformedAuthorization = errors.New("malformed authorization header")

// SetPrincipal returns a context carrying the admitted principal.
func SetPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the admitted principal, if any.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok && p != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// An absent header or empty token yields "" and no error.
func bearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", nil
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", errMalformedAuthorization
	}
	return strings.TrimSpace(auth[len(prefix):]), nil
}

// RequireAdmission returns a wrapper that runs the admission gate for requirement
// before next. Denials respond 401 (missing or invalid credential) or 403
// (insufficient role) and next is not called.
func RequireAdmission(gate domain.AdmissionGate, requirement domain.Requirement, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil && requirement != domain.Public {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}

			principal, err := gate.Authorize(token, requirement)
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrInsufficientRole):
				logger.WarnContext(r.Context(), "admission denied", "path", r.URL.Path, "reason", err.Error())
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, err.Error())
				return
			case errors.Is(err, domain.ErrMissingCredential):
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			default:
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, domain.ErrInvalidCredential.Error())
				return
			}

			if principal != nil {
				r = r.WithContext(SetPrincipal(r.Context(), principal))
			}
			next(w, r)
		}
	}
}
