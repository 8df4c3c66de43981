package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/go-chi/jwtauth/v5"
)

// caller is the identity carried by a verified access token.
type caller struct {
	UserID    string
	CompanyID string
	Role      organization.Role
}

func callerFromRequest(r *http.Request) (caller, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return caller{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return caller{}, false
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return caller{}, false
	}
	role, _ := claims["role"].(string)

	return caller{UserID: userID, CompanyID: companyID, Role: organization.Role(role)}, true
}

// Actor maps the caller onto the clock engine's notion of who is acting.
func (c caller) Actor() clock.Actor {
	return clock.Actor{
		CompanyID: c.CompanyID,
		UserID:    c.UserID,
		CanManage: organization.HasPermission(c.Role, organization.PermissionClockViewAll),
	}
}

// decodeOptionalJSON decodes the body into dst. An empty body leaves dst untouched.
func decodeOptionalJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}
