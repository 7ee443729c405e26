package handlers

import (
	"net/http"

	"railway/internal/domain/models"
	"railway/internal/repositories"

	"github.com/gin-gonic/gin"
)

// ListTrains: GET /train/?name=ids&train_type=ids. The list renders the
// train type by name.
func ListTrains(c *gin.Context) {
	ids, ok := queryIDs(c, "name")
	if !ok {
		return
	}
	types, ok := queryIDs(c, "train_type")
	if !ok {
		return
	}
	out, err := catalog(c).Trains.List(c.Request.Context(), repositories.TrainFilter{IDs: ids, TrainTypeIDs: types})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetTrain nests the full train type.
func GetTrain(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	t, err := catalog(c).Trains.GetDetail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func CreateTrain(c *gin.Context) {
	var in models.Train
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := catalog(c).CreateTrain(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// UpdateTrain serves PUT and PATCH. Trains cannot be deleted.
func UpdateTrain(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := catalog(c)
	var in models.Train
	if isPartial(c) {
		existing, err := svc.Trains.Get(c.Request.Context(), id)
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
	out, err := svc.UpdateTrain(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
