package handlers

import (
	"net/http"

	"railway/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ListStations: GET /station/?station=2,3
func ListStations(c *gin.Context) {
	ids, ok := queryIDs(c, "station")
	if !ok {
		return
	}
	out, err := catalog(c).Stations.List(c.Request.Context(), ids)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	st, err := catalog(c).Stations.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func CreateStation(c *gin.Context) {
	var in models.Station
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := catalog(c).CreateStation(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func UpdateStation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := catalog(c)
	var in models.Station
	if isPartial(c) {
		existing, err := svc.Stations.Get(c.Request.Context(), id)
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
	out, err := svc.UpdateStation(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func DeleteStation(c *gin.Context) {
	deleteResource(c, "station")
}
