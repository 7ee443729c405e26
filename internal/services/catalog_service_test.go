package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intdb "railway/internal/db"
	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
)

func newCatalog(t *testing.T) (CatalogService, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewCatalogService(repositories.Store{DB: conn, Dialect: intdb.MySQL}, "req-1"), mock
}

func fieldErrors(t *testing.T, err error) domain.FieldErrors {
	t.Helper()
	var fe domain.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	return fe
}

func TestCreateTrain_RejectsEmptyCapacity(t *testing.T) {
	svc, mock := newCatalog(t)
	mock.ExpectQuery("FROM train_types WHERE id").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Intercity+"))

	_, err := svc.CreateTrain(context.Background(), models.Train{Name: "Hyundai", CargoNum: 0, PlaceInCargo: 50, TrainTypeID: 1})

	fe := fieldErrors(t, err)
	assert.Contains(t, fe, "cargo_num")
	assert.NotContains(t, fe, "place_in_cargo")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTrain_UnknownTrainType(t *testing.T) {
	svc, mock := newCatalog(t)
	mock.ExpectQuery("FROM train_types WHERE id").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := svc.CreateTrain(context.Background(), models.Train{Name: "Hyundai", CargoNum: 9, PlaceInCargo: 50, TrainTypeID: 9})

	fe := fieldErrors(t, err)
	assert.Equal(t, `invalid pk "9" - object does not exist`, fe["train_type"])
}

func TestCreateTrain_Persists(t *testing.T) {
	svc, mock := newCatalog(t)
	mock.ExpectQuery("FROM train_types WHERE id").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Intercity+"))
	mock.ExpectExec("INSERT INTO trains").
		WithArgs("Hyundai", 9, 50, 1).
		WillReturnResult(sqlmock.NewResult(4, 1))

	train, err := svc.CreateTrain(context.Background(), models.Train{Name: "  Hyundai ", CargoNum: 9, PlaceInCargo: 50, TrainTypeID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(4), train.ID)
	assert.Equal(t, "Hyundai", train.Name)
	assert.Equal(t, 450, train.Capacity())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRoute_SameEndpoints(t *testing.T) {
	svc, mock := newCatalog(t)
	station := sqlmock.NewRows([]string{"id", "name", "latitude", "longitude"}).AddRow(3, "Kyiv", 50.45, 30.52)
	mock.ExpectQuery("FROM stations WHERE id").WithArgs(3).WillReturnRows(station)
	mock.ExpectQuery("FROM stations WHERE id").WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "latitude", "longitude"}).AddRow(3, "Kyiv", 50.45, 30.52))

	_, err := svc.CreateRoute(context.Background(), models.Route{SourceID: 3, DestinationID: 3, Distance: 0})

	fe := fieldErrors(t, err)
	assert.Contains(t, fe, "destination")
	assert.Contains(t, fe, "distance")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateJourney_ArrivalMustFollowDeparture(t *testing.T) {
	svc, mock := newCatalog(t)
	mock.ExpectQuery("FROM routes WHERE id").WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_id", "destination_id", "distance"}).AddRow(2, 1, 3, 540))
	mock.ExpectQuery("FROM trains WHERE id").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "cargo_num", "place_in_cargo", "train_type_id"}).AddRow(1, "Hyundai", 9, 50, 1))

	dep := time.Date(2025, 5, 8, 8, 0, 0, 0, time.UTC)
	_, err := svc.CreateJourney(context.Background(), models.Journey{
		RouteID: 2, TrainID: 1, DepartureTime: dep, ArrivalTime: dep,
	})

	fe := fieldErrors(t, err)
	assert.Equal(t, "arrival time must be after departure time", fe["arrival_time"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCrew_Missing(t *testing.T) {
	svc, mock := newCatalog(t)
	mock.ExpectQuery("FROM crew WHERE id").WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}))

	_, err := svc.UpdateCrew(context.Background(), models.Crew{ID: 5, FirstName: "Ann", LastName: "Lee"})
	assert.True(t, domain.IsNotFound(err))
}

func TestDelete_TrainsAreNotDeletable(t *testing.T) {
	svc, _ := newCatalog(t)
	err := svc.Delete(context.Background(), "train", 1)
	assert.True(t, domain.IsValidation(err))
}
