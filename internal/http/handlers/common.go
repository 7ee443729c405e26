package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"railway/internal/domain"
	"railway/internal/http/middleware"
	"railway/internal/repositories"
	"railway/internal/services"
	"railway/internal/utils"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "bad_request", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", "invalid payload", err.Error())
		return false
	}
	return true
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusNotFound, "not_found", "not found", nil)
		return 0, false
	}
	return id, true
}

// queryIDs parses a comma separated id list filter such as ?station=2,3.
func queryIDs(c *gin.Context, key string) ([]int64, bool) {
	ids, err := utils.ParseIDList(c.Query(key))
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: key, Msg: err.Error()})
		return nil, false
	}
	return ids, true
}

func isPartial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}

func catalog(c *gin.Context) services.CatalogService {
	return services.NewCatalogService(repositories.Store{}, middleware.GetRequestID(c))
}

func orders(c *gin.Context) services.OrderService {
	return services.OrderService{RequestID: middleware.GetRequestID(c)}
}

func deleteResource(c *gin.Context, resource string) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := catalog(c).Delete(c.Request.Context(), resource, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
