package jwt

import (
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const streamTokenTTL = 5 * time.Minute

// StreamClaims identify the caller of an event stream.
type StreamClaims struct {
	UserID    string
	CompanyID string
	Role      organization.Role
}

type Service interface {
	GenerateAccessToken(userID string, companyID string, role organization.Role) (token string, expiresAt int64, err error)
	GenerateStreamToken(claims StreamClaims) (token string, expiresIn int, err error)
	ValidateStreamToken(tokenString string) (StreamClaims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

// GenerateAccessToken issues the bearer token the API expects. Tokens are normally minted
// by the identity service sharing the secret; this is used by tooling and tests.
func (j *JWTService) GenerateAccessToken(userID string, companyID string, role organization.Role) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"role":       string(role),
		"type":       "access",
		"exp":        expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateStreamToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateStreamToken(claims StreamClaims) (token string, expiresIn int, err error) {
	expiresAt := time.Now().Add(streamTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    claims.UserID,
		"company_id": claims.CompanyID,
		"role":       string(claims.Role),
		"type":       "stream",
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(streamTokenTTL.Seconds()), nil
}

// ValidateStreamToken verifies signature, expiry and type of a stream token
func (j *JWTService) ValidateStreamToken(tokenString string) (StreamClaims, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return StreamClaims{}, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "stream" {
		return StreamClaims{}, jwt.ErrInvalidJWT()
	}

	var claims StreamClaims
	for key, dst := range map[string]*string{"user_id": &claims.UserID, "company_id": &claims.CompanyID} {
		val, ok := token.Get(key)
		if !ok {
			return StreamClaims{}, jwt.ErrInvalidJWT()
		}
		s, ok := val.(string)
		if !ok || s == "" {
			return StreamClaims{}, jwt.ErrInvalidJWT()
		}
		*dst = s
	}

	if role, ok := token.Get("role"); ok {
		if s, ok := role.(string); ok {
			claims.Role = organization.Role(s)
		}
	}

	return claims, nil
}
