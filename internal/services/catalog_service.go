package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
	"railway/internal/utils"
)

// CatalogService guards writes to the reference data (train types, trains,
// stations, routes, crew, journeys). Reads pass straight to the repositories.
type CatalogService struct {
	TrainTypes repositories.TrainTypeRepository
	Trains     repositories.TrainRepository
	Stations   repositories.StationRepository
	Routes     repositories.RouteRepository
	Crew       repositories.CrewRepository
	Journeys   repositories.JourneyRepository
	RequestID  string
}

// NewCatalogService wires every repository to the same store.
func NewCatalogService(store repositories.Store, requestID string) CatalogService {
	return CatalogService{
		TrainTypes: repositories.TrainTypeRepository{Store: store},
		Trains:     repositories.TrainRepository{Store: store},
		Stations:   repositories.StationRepository{Store: store},
		Routes:     repositories.RouteRepository{Store: store},
		Crew:       repositories.CrewRepository{Store: store},
		Journeys:   repositories.JourneyRepository{Store: store},
		RequestID:  requestID,
	}
}

func requireName(fe domain.FieldErrors, field, value string, max int) string {
	value = utils.NormalizeSpace(value)
	switch {
	case value == "":
		fe[field] = "this field may not be blank"
	case utf8.RuneCountInString(value) > max:
		fe[field] = fmt.Sprintf("ensure this field has no more than %d characters", max)
	}
	return value
}

// exists turns a missing referenced row into a field error.
func exists(fe domain.FieldErrors, field string, id int64, get func() error) error {
	if id <= 0 {
		fe[field] = "this field is required"
		return nil
	}
	if _, bad := fe[field]; bad {
		return nil
	}
	err := get()
	if domain.IsNotFound(err) {
		fe[field] = fmt.Sprintf("invalid pk %q - object does not exist", fmt.Sprint(id))
		return nil
	}
	return err
}

func (s CatalogService) logWrite(resource, action string, id int64) {
	utils.LogEventf(s.RequestID, "catalog", action+"_"+resource, "id=%d", id)
}

// --- train types

func validateTrainType(tt *models.TrainType) error {
	fe := domain.FieldErrors{}
	tt.Name = requireName(fe, "name", tt.Name, 100)
	return fe.OrNil()
}

func (s CatalogService) CreateTrainType(ctx context.Context, tt models.TrainType) (models.TrainType, error) {
	if err := validateTrainType(&tt); err != nil {
		return models.TrainType{}, err
	}
	out, err := s.TrainTypes.Create(ctx, tt)
	if err == nil {
		s.logWrite("train_type", "create", out.ID)
	}
	return out, err
}

func (s CatalogService) UpdateTrainType(ctx context.Context, tt models.TrainType) (models.TrainType, error) {
	if _, err := s.TrainTypes.Get(ctx, tt.ID); err != nil {
		return models.TrainType{}, err
	}
	if err := validateTrainType(&tt); err != nil {
		return models.TrainType{}, err
	}
	if err := s.TrainTypes.Update(ctx, tt); err != nil {
		return models.TrainType{}, err
	}
	s.logWrite("train_type", "update", tt.ID)
	return tt, nil
}

// --- trains

func (s CatalogService) validateTrain(ctx context.Context, t *models.Train) error {
	fe := domain.FieldErrors{}
	t.Name = requireName(fe, "name", t.Name, 100)
	if t.CargoNum <= 0 {
		fe["cargo_num"] = "ensure this value is greater than 0"
	}
	if t.PlaceInCargo <= 0 {
		fe["place_in_cargo"] = "ensure this value is greater than 0"
	}
	if err := exists(fe, "train_type", t.TrainTypeID, func() error {
		_, err := s.TrainTypes.Get(ctx, t.TrainTypeID)
		return err
	}); err != nil {
		return err
	}
	return fe.OrNil()
}

func (s CatalogService) CreateTrain(ctx context.Context, t models.Train) (models.Train, error) {
	if err := s.validateTrain(ctx, &t); err != nil {
		return models.Train{}, err
	}
	out, err := s.Trains.Create(ctx, t)
	if err == nil {
		s.logWrite("train", "create", out.ID)
	}
	return out, err
}

func (s CatalogService) UpdateTrain(ctx context.Context, t models.Train) (models.Train, error) {
	if _, err := s.Trains.Get(ctx, t.ID); err != nil {
		return models.Train{}, err
	}
	if err := s.validateTrain(ctx, &t); err != nil {
		return models.Train{}, err
	}
	if err := s.Trains.Update(ctx, t); err != nil {
		return models.Train{}, err
	}
	s.logWrite("train", "update", t.ID)
	return t, nil
}

// --- stations

func validateStation(st *models.Station) error {
	fe := domain.FieldErrors{}
	st.Name = requireName(fe, "name", st.Name, 255)
	if st.Latitude < -90 || st.Latitude > 90 {
		fe["latitude"] = "ensure this value is between -90 and 90"
	}
	if st.Longitude < -180 || st.Longitude > 180 {
		fe["longitude"] = "ensure this value is between -180 and 180"
	}
	return fe.OrNil()
}

func (s CatalogService) CreateStation(ctx context.Context, st models.Station) (models.Station, error) {
	if err := validateStation(&st); err != nil {
		return models.Station{}, err
	}
	out, err := s.Stations.Create(ctx, st)
	if err == nil {
		s.logWrite("station", "create", out.ID)
	}
	return out, err
}

func (s CatalogService) UpdateStation(ctx context.Context, st models.Station) (models.Station, error) {
	if _, err := s.Stations.Get(ctx, st.ID); err != nil {
		return models.Station{}, err
	}
	if err := validateStation(&st); err != nil {
		return models.Station{}, err
	}
	if err := s.Stations.Update(ctx, st); err != nil {
		return models.Station{}, err
	}
	s.logWrite("station", "update", st.ID)
	return st, nil
}

// --- routes

func (s CatalogService) validateRoute(ctx context.Context, rt models.Route) error {
	fe := domain.FieldErrors{}
	if rt.Distance <= 0 {
		fe["distance"] = "ensure this value is greater than 0"
	}
	for _, ref := range []struct {
		field string
		id    int64
	}{{"source", rt.SourceID}, {"destination", rt.DestinationID}} {
		id := ref.id
		if err := exists(fe, ref.field, id, func() error {
			_, err := s.Stations.Get(ctx, id)
			return err
		}); err != nil {
			return err
		}
	}
	if rt.SourceID > 0 && rt.SourceID == rt.DestinationID {
		fe["destination"] = "source and destination must be different stations"
	}
	return fe.OrNil()
}

func (s CatalogService) CreateRoute(ctx context.Context, rt models.Route) (models.Route, error) {
	if err := s.validateRoute(ctx, rt); err != nil {
		return models.Route{}, err
	}
	out, err := s.Routes.Create(ctx, rt)
	if err == nil {
		s.logWrite("route", "create", out.ID)
	}
	return out, err
}

func (s CatalogService) UpdateRoute(ctx context.Context, rt models.Route) (models.Route, error) {
	if _, err := s.Routes.Get(ctx, rt.ID); err != nil {
		return models.Route{}, err
	}
	if err := s.validateRoute(ctx, rt); err != nil {
		return models.Route{}, err
	}
	if err := s.Routes.Update(ctx, rt); err != nil {
		return models.Route{}, err
	}
	s.logWrite("route", "update", rt.ID)
	return rt, nil
}

// --- crew

func validateCrew(c *models.Crew) error {
	fe := domain.FieldErrors{}
	c.FirstName = requireName(fe, "first_name", c.FirstName, 255)
	c.LastName = requireName(fe, "last_name", c.LastName, 255)
	return fe.OrNil()
}

func (s CatalogService) CreateCrew(ctx context.Context, c models.Crew) (models.Crew, error) {
	if err := validateCrew(&c); err != nil {
		return models.Crew{}, err
	}
	out, err := s.Crew.Create(ctx, c)
	if err == nil {
		s.logWrite("crew", "create", out.ID)
	}
	return out, err
}

func (s CatalogService) UpdateCrew(ctx context.Context, c models.Crew) (models.Crew, error) {
	if _, err := s.Crew.Get(ctx, c.ID); err != nil {
		return models.Crew{}, err
	}
	if err := validateCrew(&c); err != nil {
		return models.Crew{}, err
	}
	if err := s.Crew.Update(ctx, c); err != nil {
		return models.Crew{}, err
	}
	s.logWrite("crew", "update", c.ID)
	return c, nil
}

// --- journeys

// checkSchedule requires both timestamps and arrival strictly after departure.
func checkSchedule(fe domain.FieldErrors, j models.Journey) {
	if j.DepartureTime.IsZero() {
		fe["departure_time"] = "this field is required"
	}
	if j.ArrivalTime.IsZero() {
		fe["arrival_time"] = "this field is required"
	}
	if len(fe) == 0 && !j.ArrivalTime.After(j.DepartureTime) {
		fe["arrival_time"] = "arrival time must be after departure time"
	}
}

func (s CatalogService) validateJourney(ctx context.Context, j models.Journey) error {
	fe := domain.FieldErrors{}
	checkSchedule(fe, j)
	if err := exists(fe, "route", j.RouteID, func() error {
		_, err := s.Routes.Get(ctx, j.RouteID)
		return err
	}); err != nil {
		return err
	}
	if err := exists(fe, "train", j.TrainID, func() error {
		_, err := s.Trains.Get(ctx, j.TrainID)
		return err
	}); err != nil {
		return err
	}
	for _, id := range j.CrewIDs {
		if id <= 0 {
			fe["crew"] = fmt.Sprintf("invalid pk %q - object does not exist", fmt.Sprint(id))
			break
		}
	}
	return fe.OrNil()
}

func (s CatalogService) CreateJourney(ctx context.Context, j models.Journey) (models.Journey, error) {
	if err := s.validateJourney(ctx, j); err != nil {
		return models.Journey{}, err
	}
	out, err := s.Journeys.Create(ctx, j)
	if err == nil {
		s.logWrite("journey", "create", out.ID)
	}
	return out, err
}

func (s CatalogService) UpdateJourney(ctx context.Context, j models.Journey) (models.Journey, error) {
	if _, err := s.Journeys.Get(ctx, j.ID); err != nil {
		return models.Journey{}, err
	}
	if err := s.validateJourney(ctx, j); err != nil {
		return models.Journey{}, err
	}
	if err := s.Journeys.Update(ctx, j); err != nil {
		return models.Journey{}, err
	}
	if j.CrewIDs == nil {
		j.CrewIDs = []int64{}
	}
	s.logWrite("journey", "update", j.ID)
	return j, nil
}

// Delete removes one catalog row by resource name as used in the URL.
func (s CatalogService) Delete(ctx context.Context, resource string, id int64) error {
	var err error
	switch resource {
	case "train-type":
		err = s.TrainTypes.Delete(ctx, id)
	case "station":
		err = s.Stations.Delete(ctx, id)
	case "route":
		err = s.Routes.Delete(ctx, id)
	case "crew":
		err = s.Crew.Delete(ctx, id)
	case "journey":
		err = s.Journeys.Delete(ctx, id)
	default:
		return domain.ValidationError{Field: "resource", Msg: fmt.Sprintf("%s cannot be deleted", resource)}
	}
	if err != nil {
		return err
	}
	s.logWrite(strings.ReplaceAll(resource, "-", "_"), "delete", id)
	return nil
}
