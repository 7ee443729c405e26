package repositories

import (
	"context"
	"fmt"

	"railway/internal/domain/models"
)

type TrainTypeRepository struct {
	Store
}

// List returns train types, optionally restricted to ids.
func (r TrainTypeRepository) List(ctx context.Context, ids []int64) ([]models.TrainType, error) {
	where, args := idFilter(nil, nil, "id", ids)
	rows, err := r.db().QueryContext(ctx, r.q(`SELECT id, name FROM train_types`+whereClause(where)+` ORDER BY id`), args...)
	if err != nil {
		return nil, fmt.Errorf("list train types: %w", err)
	}
	defer rows.Close()

	out := []models.TrainType{}
	for rows.Next() {
		var tt models.TrainType
		if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, rows.Err()
}

func (r TrainTypeRepository) Get(ctx context.Context, id int64) (models.TrainType, error) {
	var tt models.TrainType
	err := r.db().QueryRowContext(ctx, r.q(`SELECT id, name FROM train_types WHERE id=?`), id).Scan(&tt.ID, &tt.Name)
	if err != nil {
		return models.TrainType{}, notFound("train type", err)
	}
	return tt, nil
}

func (r TrainTypeRepository) Create(ctx context.Context, tt models.TrainType) (models.TrainType, error) {
	id, err := r.insert(ctx, `INSERT INTO train_types (name) VALUES (?)`, tt.Name)
	if err != nil {
		return models.TrainType{}, writeErr("train type", "name", err)
	}
	tt.ID = id
	return tt, nil
}

func (r TrainTypeRepository) Update(ctx context.Context, tt models.TrainType) error {
	if _, err := r.db().ExecContext(ctx, r.q(`UPDATE train_types SET name=? WHERE id=?`), tt.Name, tt.ID); err != nil {
		return writeErr("train type", "name", err)
	}
	return nil
}

func (r TrainTypeRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "train_types", "train type", id)
}

// TrainFilter mirrors the list query parameters of /train/.
type TrainFilter struct {
	IDs          []int64
	TrainTypeIDs []int64
}

type TrainRepository struct {
	Store
}

func (r TrainRepository) List(ctx context.Context, f TrainFilter) ([]models.TrainSummary, error) {
	where, args := idFilter(nil, nil, "t.id", f.IDs)
	where, args = idFilter(where, args, "t.train_type_id", f.TrainTypeIDs)

	query := `
		SELECT t.id, t.name, t.cargo_num, t.place_in_cargo, tt.name
		FROM trains t
		JOIN train_types tt ON tt.id = t.train_type_id` + whereClause(where) + `
		ORDER BY t.id`
	rows, err := r.db().QueryContext(ctx, r.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	defer rows.Close()

	out := []models.TrainSummary{}
	for rows.Next() {
		var t models.TrainSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.CargoNum, &t.PlaceInCargo, &t.TrainType); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TrainRepository) Get(ctx context.Context, id int64) (models.Train, error) {
	var t models.Train
	err := r.db().QueryRowContext(ctx, r.q(`
		SELECT id, name, cargo_num, place_in_cargo, train_type_id
		FROM trains WHERE id=?`), id).
		Scan(&t.ID, &t.Name, &t.CargoNum, &t.PlaceInCargo, &t.TrainTypeID)
	if err != nil {
		return models.Train{}, notFound("train", err)
	}
	return t, nil
}

func (r TrainRepository) GetDetail(ctx context.Context, id int64) (models.TrainDetail, error) {
	var t models.TrainDetail
	err := r.db().QueryRowContext(ctx, r.q(`
		SELECT t.id, t.name, t.cargo_num, t.place_in_cargo, t.train_type_id, tt.name
		FROM trains t
		JOIN train_types tt ON tt.id = t.train_type_id
		WHERE t.id=?`), id).
		Scan(&t.ID, &t.Name, &t.CargoNum, &t.PlaceInCargo, &t.TrainTypeID, &t.TrainType.Name)
	if err != nil {
		return models.TrainDetail{}, notFound("train", err)
	}
	t.TrainType.ID = t.TrainTypeID
	return t, nil
}

func (r TrainRepository) Create(ctx context.Context, t models.Train) (models.Train, error) {
	id, err := r.insert(ctx, `
		INSERT INTO trains (name, cargo_num, place_in_cargo, train_type_id)
		VALUES (?,?,?,?)`, t.Name, t.CargoNum, t.PlaceInCargo, t.TrainTypeID)
	if err != nil {
		return models.Train{}, writeErr("train", "train_type", err)
	}
	t.ID = id
	return t, nil
}

func (r TrainRepository) Update(ctx context.Context, t models.Train) error {
	_, err := r.db().ExecContext(ctx, r.q(`
		UPDATE trains SET name=?, cargo_num=?, place_in_cargo=?, train_type_id=?
		WHERE id=?`), t.Name, t.CargoNum, t.PlaceInCargo, t.TrainTypeID, t.ID)
	if err != nil {
		return writeErr("train", "train_type", err)
	}
	return nil
}
