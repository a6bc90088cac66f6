package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/nguyenthuong372100/WSP-internal/internal/domain/auth"
	"github.com/nguyenthuong372100/WSP-internal/internal/handler/http/response"
)

// RequireAccountant gates payroll administration: payment transfers,
// completion, reverts and rate maintenance.
func RequireAccountant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		if auth.Role(role) != auth.RoleAccountant {
			response.HandleError(w, auth.ErrForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
