package handlers

import (
	"net/http"

	"railway/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// ListTrainTypes: GET /train-type/?name=2,3 (the filter takes type ids).
func ListTrainTypes(c *gin.Context) {
	ids, ok := queryIDs(c, "name")
	if !ok {
		return
	}
	out, err := catalog(c).TrainTypes.List(c.Request.Context(), ids)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func GetTrainType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	tt, err := catalog(c).TrainTypes.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tt)
}

func CreateTrainType(c *gin.Context) {
	var in models.TrainType
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := catalog(c).CreateTrainType(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateTrainType serves PUT and PATCH.
func UpdateTrainType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := catalog(c)
	var in models.TrainType
	if isPartial(c) {
		existing, err := svc.TrainTypes.Get(c.Request.Context(), id)
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
	out, err := svc.UpdateTrainType(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func DeleteTrainType(c *gin.Context) {
	deleteResource(c, "train-type")
}
