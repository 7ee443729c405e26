package repositories

import (
	"context"
	"fmt"

	"railway/internal/domain/models"
)

type CrewRepository struct {
	Store
}

func (r CrewRepository) List(ctx context.Context, ids []int64) ([]models.Crew, error) {
	where, args := idFilter(nil, nil, "id", ids)
	rows, err := r.db().QueryContext(ctx,
		r.q(`SELECT id, first_name, last_name FROM crew`+whereClause(where)+` ORDER BY id`), args...)
	if err != nil {
		return nil, fmt.Errorf("list crew: %w", err)
	}
	defer rows.Close()

	out := []models.Crew{}
	for rows.Next() {
		var c models.Crew
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CrewRepository) Get(ctx context.Context, id int64) (models.Crew, error) {
	var c models.Crew
	err := r.db().QueryRowContext(ctx, r.q(`SELECT id, first_name, last_name FROM crew WHERE id=?`), id).
		Scan(&c.ID, &c.FirstName, &c.LastName)
	if err != nil {
		return models.Crew{}, notFound("crew", err)
	}
	return c, nil
}

func (r CrewRepository) Create(ctx context.Context, c models.Crew) (models.Crew, error) {
	id, err := r.insert(ctx, `INSERT INTO crew (first_name, last_name) VALUES (?,?)`, c.FirstName, c.LastName)
	if err != nil {
		return models.Crew{}, writeErr("crew", "first_name", err)
	}
	c.ID = id
	return c, nil
}

func (r CrewRepository) Update(ctx context.Context, c models.Crew) error {
	_, err := r.db().ExecContext(ctx, r.q(`UPDATE crew SET first_name=?, last_name=? WHERE id=?`),
		c.FirstName, c.LastName, c.ID)
	if err != nil {
		return writeErr("crew", "first_name", err)
	}
	return nil
}

func (r CrewRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "crew", "crew", id)
}
