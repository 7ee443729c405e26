package handlers

import (
	"net/http"

	"railway/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ListCrew: GET /crew/?crew=2,3
func ListCrew(c *gin.Context) {
	ids, ok := queryIDs(c, "crew")
	if !ok {
		return
	}
	out, err := catalog(c).Crew.List(c.Request.Context(), ids)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetCrew(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cr, err := catalog(c).Crew.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cr)
}

func CreateCrew(c *gin.Context) {
	var in models.Crew
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := catalog(c).CreateCrew(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func UpdateCrew(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := catalog(c)
	var in models.Crew
	if isPartial(c) {
		existing, err := svc.Crew.Get(c.Request.Context(), id)
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
	out, err := svc.UpdateCrew(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func DeleteCrew(c *gin.Context) {
	deleteResource(c, "crew")
}
