package repositories

import (
	"context"
	"fmt"

	"railway/internal/domain/models"
)

type StationRepository struct {
	Store
}

func (r StationRepository) List(ctx context.Context, ids []int64) ([]models.Station, error) {
	where, args := idFilter(nil, nil, "id", ids)
	rows, err := r.db().QueryContext(ctx,
		r.q(`SELECT id, name, latitude, longitude FROM stations`+whereClause(where)+` ORDER BY id`), args...)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}
	defer rows.Close()

	out := []models.Station{}
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r StationRepository) Get(ctx context.Context, id int64) (models.Station, error) {
	var s models.Station
	err := r.db().QueryRowContext(ctx, r.q(`SELECT id, name, latitude, longitude FROM stations WHERE id=?`), id).
		Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
	if err != nil {
		return models.Station{}, notFound("station", err)
	}
	return s, nil
}

func (r StationRepository) Create(ctx context.Context, s models.Station) (models.Station, error) {
	id, err := r.insert(ctx, `INSERT INTO stations (name, latitude, longitude) VALUES (?,?,?)`,
		s.Name, s.Latitude, s.Longitude)
	if err != nil {
		return models.Station{}, writeErr("station", "name", err)
	}
	s.ID = id
	return s, nil
}

func (r StationRepository) Update(ctx context.Context, s models.Station) error {
	_, err := r.db().ExecContext(ctx, r.q(`UPDATE stations SET name=?, latitude=?, longitude=? WHERE id=?`),
		s.Name, s.Latitude, s.Longitude, s.ID)
	if err != nil {
		return writeErr("station", "name", err)
	}
	return nil
}

func (r StationRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "stations", "station", id)
}

// RouteFilter mirrors the list query parameters of /route/. Distance 0
// means unfiltered.
type RouteFilter struct {
	SourceIDs      []int64
	DestinationIDs []int64
	Distance       int
}

type RouteRepository struct {
	Store
}

func (r RouteRepository) List(ctx context.Context, f RouteFilter) ([]models.RouteSummary, error) {
	where, args := idFilter(nil, nil, "r.source_id", f.SourceIDs)
	where, args = idFilter(where, args, "r.destination_id", f.DestinationIDs)
	if f.Distance > 0 {
		where = append(where, "r.distance = ?")
		args = append(args, f.Distance)
	}

	query := `
		SELECT r.id, s.name, d.name, r.distance
		FROM routes r
		JOIN stations s ON s.id = r.source_id
		JOIN stations d ON d.id = r.destination_id` + whereClause(where) + `
		ORDER BY r.id`
	rows, err := r.db().QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	out := []models.RouteSummary{}
	for rows.Next() {
		var rt models.RouteSummary
		if err := rows.Scan(&rt.ID, &rt.Source, &rt.Destination, &rt.Distance); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) Get(ctx context.Context, id int64) (models.Route, error) {
	var rt models.Route
	err := r.db().QueryRowContext(ctx, r.q(`SELECT id, source_id, destination_id, distance FROM routes WHERE id=?`), id).
		Scan(&rt.ID, &rt.SourceID, &rt.DestinationID, &rt.Distance)
	if err != nil {
		return models.Route{}, notFound("route", err)
	}
	return rt, nil
}

func (r RouteRepository) GetDetail(ctx context.Context, id int64) (models.RouteDetail, error) {
	var (
		rt       models.RouteDetail
		src, dst models.Station
	)
	err := r.db().QueryRowContext(ctx, r.q(`
		SELECT r.id, s.name, s.latitude, s.longitude, d.name, d.latitude, d.longitude, r.distance
		FROM routes r
		JOIN stations s ON s.id = r.source_id
		JOIN stations d ON d.id = r.destination_id
		WHERE r.id=?`), id).
		Scan(&rt.ID, &src.Name, &src.Latitude, &src.Longitude, &dst.Name, &dst.Latitude, &dst.Longitude, &rt.Distance)
	if err != nil {
		return models.RouteDetail{}, notFound("route", err)
	}
	rt.SourceName, rt.SourceCoordinates = src.Name, src.Coordinates()
	rt.DestinationName, rt.DestinationCoordinates = dst.Name, dst.Coordinates()
	return rt, nil
}

func (r RouteRepository) Create(ctx context.Context, rt models.Route) (models.Route, error) {
	id, err := r.insert(ctx, `INSERT INTO routes (source_id, destination_id, distance) VALUES (?,?,?)`,
		rt.SourceID, rt.DestinationID, rt.Distance)
	if err != nil {
		return models.Route{}, writeErr("route", "source", err)
	}
	rt.ID = id
	return rt, nil
}

func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	_, err := r.db().ExecContext(ctx, r.q(`UPDATE routes SET source_id=?, destination_id=?, distance=? WHERE id=?`),
		rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		return writeErr("route", "source", err)
	}
	return nil
}

func (r RouteRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "routes", "route", id)
}
