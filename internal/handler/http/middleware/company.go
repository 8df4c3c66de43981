package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireCompany rejects tokens that do not carry both a user and a company.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, organization.ErrInvalidToken)
			return
		}

		if userID, ok := claims["user_id"].(string); !ok || userID == "" {
			response.HandleError(w, organization.ErrInvalidToken)
			return
		}

		if companyID, ok := claims["company_id"].(string); !ok || companyID == "" {
			response.HandleError(w, organization.ErrCompanyIDRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
