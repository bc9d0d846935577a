package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/auth"
	"github.com/shifttracker/shifttracker-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token. Refresh tokens
// are only accepted by the auth endpoints, never here; the type claim check
// keeps a leaked refresh token from opening the rest of the API.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil || claims["type"] != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
