package middleware

import (
	"errors"
	"net/http"
	"strings"

	"todo-guard/backend/app/dto"
	jwtutil "todo-guard/backend/app/jwt"
	"todo-guard/backend/app/policy"
	"todo-guard/backend/global"
)

// CredentialsDetail is the body detail of every rejected bearer token.
const CredentialsDetail = "Could not validate user"

var ErrMissingBearer = errors.New("missing bearer token")

type Auth struct{ Signer *jwtutil.Signer }

// Authenticate turns an Authorization header value into the caller identity.
func (a *Auth) Authenticate(authz string) (*policy.Identity, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authz), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return nil, ErrMissingBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingBearer
	}
	claims, err := a.Signer.Verify(token)
	if err != nil {
		return nil, err
	}
	return &policy.Identity{Username: claims.Subject, UserID: *claims.UserID, Role: claims.Role}, nil
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := a.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			global.Logger.Debug().Err(err).Str("path", r.URL.Path).Msg("bearer rejected")
			Unauthorized(w, CredentialsDetail)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// Unauthorized writes a 401 with the bearer challenge header.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	dto.WriteDetail(w, http.StatusUnauthorized, detail)
}
