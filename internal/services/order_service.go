package services

import (
	"context"
	"fmt"
	"time"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
	"railway/internal/utils"
)

// OrderService books tickets. An order and all of its tickets are created
// in one transaction; the first failing ticket aborts the whole order.
type OrderService struct {
	Store     repositories.OrderStore
	RequestID string
	Now       func() time.Time
}

func (s OrderService) store() repositories.OrderStore {
	if s.Store != nil {
		return s.Store
	}
	return repositories.OrderRepository{}
}

func (s OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

type seatKey struct {
	journey int64
	seat    int
}

// CreateOrder validates and persists the requested tickets for userID.
// Placement and seat conflicts come back as domain.TicketError carrying
// the index of the offending entry; an unknown journey is a NotFoundError.
func (s OrderService) CreateOrder(ctx context.Context, userID int64, reqs []models.TicketRequest) (models.Order, error) {
	if len(reqs) == 0 {
		return models.Order{}, domain.ValidationError{Field: "tickets", Msg: "at least one ticket is required"}
	}

	var created models.Order
	err := s.store().WithinTx(ctx, func(tx repositories.OrderTx) error {
		order, err := tx.CreateOrder(ctx, userID, s.now())
		if err != nil {
			return err
		}

		taken := make(map[seatKey]bool, len(reqs))
		for i, req := range reqs {
			if req.Journey <= 0 {
				return domain.TicketError{Index: i, Err: domain.ValidationError{Field: "journey", Msg: "this field is required"}}
			}
			train, err := tx.TrainForJourney(ctx, req.Journey)
			if err != nil {
				return err
			}
			if err := domain.ValidatePlacement(req.Cargo, req.Seat, train); err != nil {
				return domain.TicketError{Index: i, Err: err}
			}
			key := seatKey{journey: req.Journey, seat: req.Seat}
			if taken[key] {
				return domain.TicketError{Index: i, Err: seatTaken(req)}
			}
			taken[key] = true

			ticket, err := tx.CreateTicket(ctx, models.Ticket{
				Cargo:     req.Cargo,
				Seat:      req.Seat,
				JourneyID: req.Journey,
				OrderID:   order.ID,
			})
			if err != nil {
				if domain.IsNotFound(err) {
					return err
				}
				return domain.TicketError{Index: i, Err: err}
			}
			order.Tickets = append(order.Tickets, ticket)
		}
		created = order
		return nil
	})
	if err != nil {
		utils.LogEventf(s.RequestID, "order", "create_rejected", "user_id=%d tickets=%d err=%v", userID, len(reqs), err)
		return models.Order{}, err
	}

	utils.LogEventf(s.RequestID, "order", "create", "user_id=%d order_id=%d tickets=%d", userID, created.ID, len(created.Tickets))
	return created, nil
}

func seatTaken(req models.TicketRequest) error {
	return domain.ConflictError{
		Resource: "ticket",
		Field:    "seat",
		Msg:      fmt.Sprintf("seat %d is already taken on journey %d", req.Seat, req.Journey),
	}
}

// ListOrders returns the caller's orders; day limits them to one UTC date.
func (s OrderService) ListOrders(ctx context.Context, userID int64, day *time.Time) ([]models.Order, error) {
	return s.store().ListOrders(ctx, userID, day)
}

func (s OrderService) GetOrder(ctx context.Context, userID, orderID int64) (models.Order, error) {
	return s.store().GetOrder(ctx, userID, orderID)
}

func (s OrderService) DeleteOrder(ctx context.Context, userID, orderID int64) error {
	if err := s.store().DeleteOrder(ctx, userID, orderID); err != nil {
		return err
	}
	utils.LogEventf(s.RequestID, "order", "delete", "user_id=%d order_id=%d", userID, orderID)
	return nil
}
