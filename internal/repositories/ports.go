package repositories

import (
	"context"
	"time"

	"railway/internal/domain/models"
)

// OrderTx is the unit of work the order transaction runs in. Everything
// done through it commits or rolls back together.
type OrderTx interface {
	CreateOrder(ctx context.Context, userID int64, createdAt time.Time) (models.Order, error)
	// TrainForJourney returns the train assigned to the journey, or
	// domain.NotFoundError{Resource: "journey"}.
	TrainForJourney(ctx context.Context, journeyID int64) (models.Train, error)
	// CreateTicket returns domain.ConflictError when (seat, journey) is taken.
	CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error)
}

// OrderStore is the persistence port of the order service.
type OrderStore interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(OrderTx) error) error
	// ListOrders returns the user's orders, newest first; day restricts to
	// one UTC calendar date when non-nil.
	ListOrders(ctx context.Context, userID int64, day *time.Time) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (models.Order, error)
	DeleteOrder(ctx context.Context, userID, orderID int64) error
}
