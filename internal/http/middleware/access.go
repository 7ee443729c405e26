package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"railway/internal/authz"
	"railway/internal/domain"
)

// Authorizer decides whether a request may reach its handler.
type Authorizer interface {
	Allow(ctx context.Context, req authz.Request) (bool, error)
}

// RequireAccess gates every route of resource behind the policy.
// Anonymous callers get 401 before the policy is consulted.
func RequireAccess(policy Authorizer, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if id == nil {
			abortJSON(c, http.StatusUnauthorized, domain.UnauthorizedError{Msg: c.GetString(authErrKey)}.Error())
			return
		}
		ok, err := policy.Allow(c.Request.Context(), authz.Request{
			Method:   c.Request.Method,
			Resource: resource,
			Identity: id,
		})
		if err != nil {
			log.Printf("[AUTHZ] request_id=%s resource=%s err=%v", GetRequestID(c), resource, err)
			abortJSON(c, http.StatusInternalServerError, "internal error")
			return
		}
		if !ok {
			abortJSON(c, http.StatusForbidden, domain.ForbiddenError{}.Error())
			return
		}
		c.Next()
	}
}
