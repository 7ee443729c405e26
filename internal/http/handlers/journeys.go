package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
	"railway/internal/utils"

	"github.com/gin-gonic/gin"
)

// journeyPayload accepts RFC 3339 or naive UTC timestamps; absent fields
// keep their current value on PATCH.
type journeyPayload struct {
	Route         *int64   `json:"route"`
	Train         *int64   `json:"train"`
	DepartureTime *string  `json:"departure_time"`
	ArrivalTime   *string  `json:"arrival_time"`
	Crew          *[]int64 `json:"crew"`
}

func (p journeyPayload) apply(j *models.Journey) error {
	fe := domain.FieldErrors{}
	if p.Route != nil {
		j.RouteID = *p.Route
	}
	if p.Train != nil {
		j.TrainID = *p.Train
	}
	parse := func(field string, raw *string, dst *time.Time) {
		if raw == nil {
			return
		}
		t, err := utils.ParseDateTime(*raw)
		if err != nil {
			fe[field] = "datetime has wrong format, use YYYY-MM-DDThh:mm[:ss][+HH:MM|Z]"
			return
		}
		*dst = t
	}
	parse("departure_time", p.DepartureTime, &j.DepartureTime)
	parse("arrival_time", p.ArrivalTime, &j.ArrivalTime)
	if p.Crew != nil {
		j.CrewIDs = append([]int64{}, (*p.Crew)...)
	}
	return fe.OrNil()
}

// ListJourneys: GET /journey/?start=YYYY-MM-DD&route=id&departure_time__gte=ts
func ListJourneys(c *gin.Context) {
	var f repositories.JourneyFilter
	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		day, err := utils.ParseDate(raw)
		if err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "start", Msg: "date has wrong format, use YYYY-MM-DD"})
			return
		}
		f.Start = &day
	}
	if raw := strings.TrimSpace(c.Query("route")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			RespondDomainError(c, domain.ValidationError{Field: "route", Msg: "enter a valid route id"})
			return
		}
		f.RouteID = id
	}
	// An unparseable departure_time__gte is ignored rather than rejected.
	if raw := strings.TrimSpace(c.Query("departure_time__gte")); raw != "" {
		if t, err := utils.ParseDateTime(raw); err == nil {
			f.DepartureGTE = &t
		}
	}

	out, err := catalog(c).Journeys.List(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetJourney nests route and train and lists crew by full name.
func GetJourney(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	j, err := catalog(c).Journeys.GetDetail(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func CreateJourney(c *gin.Context) {
	var p journeyPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	var j models.Journey
	if err := p.apply(&j); err != nil {
		RespondDomainError(c, err)
		return
	}
	out, err := catalog(c).CreateJourney(c.Request.Context(), j)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func UpdateJourney(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	svc := catalog(c)
	var j models.Journey
	if isPartial(c) {
		existing, err := svc.Journeys.Get(c.Request.Context(), id)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		j = existing
	}
	var p journeyPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	if err := p.apply(&j); err != nil {
		RespondDomainError(c, err)
		return
	}
	j.ID = id
	out, err := svc.UpdateJourney(c.Request.Context(), j)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func DeleteJourney(c *gin.Context) {
	deleteResource(c, "journey")
}
