package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"railway/internal/domain"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
	authErrKey  = "authError"
)

// Claims is the bearer token payload. Tokens are issued elsewhere; this
// service only verifies them.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for id, valid for ttl.
func SignToken(secret []byte, id domain.Identity, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: id.UserID,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies the signature and expiry of raw.
func ParseToken(secret []byte, raw string) (domain.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.Identity{}, err
	}
	if claims.UserID <= 0 {
		return domain.Identity{}, errors.New("token has no user_id")
	}
	return domain.Identity{UserID: claims.UserID, Role: strings.ToLower(strings.TrimSpace(claims.Role))}, nil
}

// Authenticate reads "Authorization: Bearer <jwt>". Requests without a
// usable token continue anonymously; the rejection reason is kept for
// RequireAccess, so public endpoints ignore bad tokens and gated ones
// answer 401 with it.
func Authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			c.Set(authErrKey, "authorization header must be 'Bearer <token>'")
			c.Next()
			return
		}
		id, err := ParseToken(secret, strings.TrimSpace(raw))
		if err != nil {
			c.Set(authErrKey, "invalid token: "+err.Error())
			c.Next()
			return
		}
		c.Set(userIDKey, id.UserID)
		c.Set(userRoleKey, id.Role)
		c.Next()
	}
}

// GetIdentity returns the authenticated caller, or nil for anonymous.
func GetIdentity(c *gin.Context) *domain.Identity {
	uid := c.GetInt64(userIDKey)
	if uid <= 0 {
		return nil
	}
	return &domain.Identity{UserID: uid, Role: c.GetString(userRoleKey)}
}

func abortJSON(c *gin.Context, status int, msg string) {
	body := gin.H{"error": msg}
	if rid := GetRequestID(c); rid != "" {
		body["request_id"] = rid
	}
	c.AbortWithStatusJSON(status, body)
}
