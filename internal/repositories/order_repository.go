package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intdb "railway/internal/db"
	"railway/internal/domain"
	"railway/internal/domain/models"
)

// OrderRepository is the SQL implementation of OrderStore.
type OrderRepository struct {
	Store
}

var _ OrderStore = OrderRepository{}

func (r OrderRepository) WithinTx(ctx context.Context, fn func(OrderTx) error) error {
	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(orderTx{tx: tx, dialect: r.dialect()}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

func (r OrderRepository) ListOrders(ctx context.Context, userID int64, day *time.Time) ([]models.Order, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}
	if day != nil {
		start := day.UTC().Truncate(24 * time.Hour)
		where = append(where, "created_at >= ?", "created_at < ?")
		args = append(args, start, start.Add(24*time.Hour))
	}

	rows, err := r.db().QueryContext(ctx, r.q(`
		SELECT id, created_at, user_id FROM orders`+whereClause(where)+`
		ORDER BY created_at DESC, id DESC`), args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CreatedAt, &o.UserID); err != nil {
			return nil, err
		}
		o.CreatedAt = o.CreatedAt.UTC()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTickets(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns the order only when userID owns it.
func (r OrderRepository) GetOrder(ctx context.Context, userID, orderID int64) (models.Order, error) {
	var o models.Order
	err := r.db().QueryRowContext(ctx, r.q(`
		SELECT id, created_at, user_id FROM orders WHERE id=? AND user_id=?`), orderID, userID).
		Scan(&o.ID, &o.CreatedAt, &o.UserID)
	if err != nil {
		return models.Order{}, notFound("order", err)
	}
	o.CreatedAt = o.CreatedAt.UTC()
	orders := []models.Order{o}
	if err := r.attachTickets(ctx, orders); err != nil {
		return models.Order{}, err
	}
	return orders[0], nil
}

// DeleteOrder removes the order; its tickets go with it (ON DELETE CASCADE).
func (r OrderRepository) DeleteOrder(ctx context.Context, userID, orderID int64) error {
	res, err := r.db().ExecContext(ctx, r.q(`DELETE FROM orders WHERE id=? AND user_id=?`), orderID, userID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: "order"}
	}
	return nil
}

// attachTickets loads the tickets of all orders with one query.
func (r OrderRepository) attachTickets(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(orders))
	index := make(map[int64]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.ID)
		index[o.ID] = i
		orders[i].Tickets = []models.Ticket{}
	}

	rows, err := r.db().QueryContext(ctx, r.q(`
		SELECT id, cargo, seat, journey_id, order_id FROM tickets
		WHERE order_id IN (`+intdb.Placeholders(len(ids))+`)
		ORDER BY id`), intdb.Int64Args(ids)...)
	if err != nil {
		return fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.Cargo, &t.Seat, &t.JourneyID, &t.OrderID); err != nil {
			return err
		}
		if i, ok := index[t.OrderID]; ok {
			orders[i].Tickets = append(orders[i].Tickets, t)
		}
	}
	return rows.Err()
}

type orderTx struct {
	tx      *sql.Tx
	dialect intdb.Dialect
}

func (o orderTx) CreateOrder(ctx context.Context, userID int64, createdAt time.Time) (models.Order, error) {
	createdAt = createdAt.UTC()
	id, err := intdb.InsertID(ctx, o.tx, o.dialect,
		`INSERT INTO orders (created_at, user_id) VALUES (?,?)`, createdAt, userID)
	if err != nil {
		return models.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return models.Order{ID: id, CreatedAt: createdAt, UserID: userID, Tickets: []models.Ticket{}}, nil
}

func (o orderTx) TrainForJourney(ctx context.Context, journeyID int64) (models.Train, error) {
	var t models.Train
	err := o.tx.QueryRowContext(ctx, intdb.Rebind(o.dialect, `
		SELECT t.id, t.name, t.cargo_num, t.place_in_cargo, t.train_type_id
		FROM journeys j
		JOIN trains t ON t.id = j.train_id
		WHERE j.id=?`), journeyID).
		Scan(&t.ID, &t.Name, &t.CargoNum, &t.PlaceInCargo, &t.TrainTypeID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Train{}, domain.NotFoundError{Resource: "journey", Err: err}
	}
	if err != nil {
		return models.Train{}, fmt.Errorf("load journey train: %w", err)
	}
	return t, nil
}

func (o orderTx) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	id, err := intdb.InsertID(ctx, o.tx, o.dialect,
		`INSERT INTO tickets (cargo, seat, journey_id, order_id) VALUES (?,?,?,?)`,
		t.Cargo, t.Seat, t.JourneyID, t.OrderID)
	switch {
	case err == nil:
		t.ID = id
		return t, nil
	case intdb.IsUniqueViolation(err):
		return models.Ticket{}, domain.ConflictError{
			Resource: "ticket",
			Field:    "seat",
			Msg:      fmt.Sprintf("seat %d is already taken on journey %d", t.Seat, t.JourneyID),
			Err:      err,
		}
	case intdb.IsForeignKeyViolation(err):
		return models.Ticket{}, domain.NotFoundError{Resource: "journey", Err: err}
	default:
		return models.Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
}
