package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intdb "railway/internal/db"
	"railway/internal/domain"
	"railway/internal/domain/models"
)

// JourneyFilter mirrors the list query parameters of /journey/.
type JourneyFilter struct {
	// Start keeps journeys departing on that UTC calendar day.
	Start        *time.Time
	RouteID      int64
	DepartureGTE *time.Time
}

type JourneyRepository struct {
	Store
}

func (r JourneyRepository) List(ctx context.Context, f JourneyFilter) ([]models.JourneySummary, error) {
	var (
		where []string
		args  []any
	)
	if f.Start != nil {
		day := f.Start.UTC().Truncate(24 * time.Hour)
		where = append(where, "j.departure_time >= ?", "j.departure_time < ?")
		args = append(args, day, day.Add(24*time.Hour))
	}
	if f.RouteID > 0 {
		where = append(where, "j.route_id = ?")
		args = append(args, f.RouteID)
	}
	if f.DepartureGTE != nil {
		where = append(where, "j.departure_time >= ?")
		args = append(args, f.DepartureGTE.UTC())
	}

	query := `
		SELECT j.id, s.name, d.name, t.name, j.departure_time, j.arrival_time,
		       (SELECT COUNT(*) FROM journey_crew jc WHERE jc.journey_id = j.id)
		FROM journeys j
		JOIN routes r ON r.id = j.route_id
		JOIN stations s ON s.id = r.source_id
		JOIN stations d ON d.id = r.destination_id
		JOIN trains t ON t.id = j.train_id` + whereClause(where) + `
		ORDER BY j.departure_time, j.id`
	rows, err := r.db().QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	defer rows.Close()

	out := []models.JourneySummary{}
	for rows.Next() {
		var j models.JourneySummary
		if err := rows.Scan(&j.ID, &j.RouteSource, &j.RouteDestination, &j.Train,
			&j.DepartureTime, &j.ArrivalTime, &j.CrewCount); err != nil {
			return nil, err
		}
		j.DepartureTime, j.ArrivalTime = j.DepartureTime.UTC(), j.ArrivalTime.UTC()
		out = append(out, j)
	}
	return out, rows.Err()
}

// Get returns the journey with its crew ids.
func (r JourneyRepository) Get(ctx context.Context, id int64) (models.Journey, error) {
	var j models.Journey
	err := r.db().QueryRowContext(ctx, r.q(`
		SELECT id, route_id, train_id, departure_time, arrival_time
		FROM journeys WHERE id=?`), id).
		Scan(&j.ID, &j.RouteID, &j.TrainID, &j.DepartureTime, &j.ArrivalTime)
	if err != nil {
		return models.Journey{}, notFound("journey", err)
	}
	j.DepartureTime, j.ArrivalTime = j.DepartureTime.UTC(), j.ArrivalTime.UTC()

	rows, err := r.db().QueryContext(ctx, r.q(`SELECT crew_id FROM journey_crew WHERE journey_id=? ORDER BY crew_id`), id)
	if err != nil {
		return models.Journey{}, fmt.Errorf("journey crew: %w", err)
	}
	defer rows.Close()
	j.CrewIDs = []int64{}
	for rows.Next() {
		var cid int64
		if err := rows.Scan(&cid); err != nil {
			return models.Journey{}, err
		}
		j.CrewIDs = append(j.CrewIDs, cid)
	}
	return j, rows.Err()
}

// GetDetail nests the route and train and renders crew by full name.
func (r JourneyRepository) GetDetail(ctx context.Context, id int64) (models.JourneyDetail, error) {
	j, err := r.Get(ctx, id)
	if err != nil {
		return models.JourneyDetail{}, err
	}
	route, err := RouteRepository{r.Store}.GetDetail(ctx, j.RouteID)
	if err != nil {
		return models.JourneyDetail{}, err
	}
	train, err := TrainRepository{r.Store}.GetDetail(ctx, j.TrainID)
	if err != nil {
		return models.JourneyDetail{}, err
	}

	rows, err := r.db().QueryContext(ctx, r.q(`
		SELECT c.first_name, c.last_name
		FROM journey_crew jc
		JOIN crew c ON c.id = jc.crew_id
		WHERE jc.journey_id=?
		ORDER BY c.id`), id)
	if err != nil {
		return models.JourneyDetail{}, fmt.Errorf("journey crew: %w", err)
	}
	defer rows.Close()
	names := []string{}
	for rows.Next() {
		var c models.Crew
		if err := rows.Scan(&c.FirstName, &c.LastName); err != nil {
			return models.JourneyDetail{}, err
		}
		names = append(names, c.FullName())
	}
	if err := rows.Err(); err != nil {
		return models.JourneyDetail{}, err
	}

	return models.JourneyDetail{
		ID:            j.ID,
		Route:         route,
		Train:         train,
		DepartureTime: j.DepartureTime,
		ArrivalTime:   j.ArrivalTime,
		Crew:          names,
	}, nil
}

// Create inserts the journey and its crew assignment in one transaction.
func (r JourneyRepository) Create(ctx context.Context, j models.Journey) (models.Journey, error) {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return models.Journey{}, fmt.Errorf("begin journey tx: %w", err)
	}
	defer tx.Rollback()

	id, err := intdb.InsertID(ctx, tx, r.dialect(), `
		INSERT INTO journeys (route_id, train_id, departure_time, arrival_time)
		VALUES (?,?,?,?)`, j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC())
	if err != nil {
		return models.Journey{}, writeErr("journey", "route", err)
	}
	if err := r.replaceCrew(ctx, tx, id, j.CrewIDs); err != nil {
		return models.Journey{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Journey{}, fmt.Errorf("commit journey tx: %w", err)
	}
	j.ID = id
	if j.CrewIDs == nil {
		j.CrewIDs = []int64{}
	}
	return j, nil
}

// Update rewrites the journey row and replaces its crew assignment.
func (r JourneyRepository) Update(ctx context.Context, j models.Journey) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journey tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, r.q(`
		UPDATE journeys SET route_id=?, train_id=?, departure_time=?, arrival_time=?
		WHERE id=?`), j.RouteID, j.TrainID, j.DepartureTime.UTC(), j.ArrivalTime.UTC(), j.ID)
	if err != nil {
		return writeErr("journey", "route", err)
	}
	if err := r.replaceCrew(ctx, tx, j.ID, j.CrewIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journey tx: %w", err)
	}
	return nil
}

func (r JourneyRepository) replaceCrew(ctx context.Context, tx *sql.Tx, journeyID int64, crewIDs []int64) error {
	if _, err := tx.ExecContext(ctx, r.q(`DELETE FROM journey_crew WHERE journey_id=?`), journeyID); err != nil {
		return fmt.Errorf("clear journey crew: %w", err)
	}
	seen := make(map[int64]bool, len(crewIDs))
	for _, cid := range crewIDs {
		if seen[cid] {
			continue
		}
		seen[cid] = true
		_, err := tx.ExecContext(ctx, r.q(`INSERT INTO journey_crew (journey_id, crew_id) VALUES (?,?)`), journeyID, cid)
		if err != nil {
			if intdb.IsForeignKeyViolation(err) {
				return domain.ValidationError{Field: "crew", Msg: fmt.Sprintf("crew %d does not exist", cid), Err: err}
			}
			return fmt.Errorf("assign crew: %w", err)
		}
	}
	return nil
}

func (r JourneyRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "journeys", "journey", id)
}
