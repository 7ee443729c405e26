package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"

	"github.com/gin-gonic/gin"
)

// ListRoutes: GET /route/?source=ids&destination=ids&distance=n. Stations
// are rendered by name.
func ListRoutes(c *gin.Context) {
	sources, ok := queryIDs(c, "source")
	if !ok {
		return
	}
	destinations, ok := queryIDs(c, "destination")
	if !ok {
		return
	}
	f := repositories.RouteFilter{SourceIDs: sources, DestinationIDs: destinations}
	if raw := strings.TrimSpace(c.Query("distance")); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "distance", Msg: "enter a positive whole number"})
			return
		}
		f.Distance = d
	}
	out, err := catalog(c).Routes.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetRoute renders both stations with their coordinates.
func GetRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	rt, err := catalog(c).Routes.GetDetail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

func CreateRoute(c *gin.Context) {
	var in models.Route
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := catalog(c).CreateRoute(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func UpdateRoute(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := catalog(c)
	var in models.Route
	if isPartial(c) {
		existing, err := svc.Routes.Get(c.Request.Context(), id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		in = existing
	}
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	out, err := svc.UpdateRoute(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func DeleteRoute(c *gin.Context) {
	deleteResource(c, "route")
}
