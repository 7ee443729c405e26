package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railway/internal/domain"
	"railway/internal/domain/models"
	"railway/internal/repositories"
)

// memStore is an in-memory OrderStore. Transactions work on a copy that
// replaces the committed state only when fn succeeds.
type memStore struct {
	trains  map[int64]models.Train // by journey id
	orders  []models.Order
	tickets []models.Ticket
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{trains: map[int64]models.Train{
		1: {ID: 1, Name: "Intercity", CargoNum: 9, PlaceInCargo: 50},
		2: {ID: 2, Name: "Regional", CargoNum: 3, PlaceInCargo: 20},
	}}
}

type memTx struct {
	s       *memStore
	orders  []models.Order
	tickets []models.Ticket
}

func (m *memStore) WithinTx(ctx context.Context, fn func(repositories.OrderTx) error) error {
	tx := &memTx{
		s:       m,
		orders:  append([]models.Order(nil), m.orders...),
		tickets: append([]models.Ticket(nil), m.tickets...),
	}
	if err := fn(tx); err != nil {
		return err
	}
	m.orders, m.tickets = tx.orders, tx.tickets
	return nil
}

func (m *memStore) ListOrders(ctx context.Context, userID int64, day *time.Time) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		if day != nil && o.CreatedAt.Format("2006-01-02") != day.Format("2006-01-02") {
			continue
		}
		out = append(out, m.withTickets(o))
	}
	return out, nil
}

func (m *memStore) GetOrder(ctx context.Context, userID, orderID int64) (models.Order, error) {
	for _, o := range m.orders {
		if o.ID == orderID && o.UserID == userID {
			return m.withTickets(o), nil
		}
	}
	return models.Order{}, domain.NotFoundError{Resource: "order"}
}

func (m *memStore) DeleteOrder(ctx context.Context, userID, orderID int64) error {
	for i, o := range m.orders {
		if o.ID == orderID && o.UserID == userID {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			kept := m.tickets[:0]
			for _, t := range m.tickets {
				if t.OrderID != orderID {
					kept = append(kept, t)
				}
			}
			m.tickets = kept
			return nil
		}
	}
	return domain.NotFoundError{Resource: "order"}
}

func (m *memStore) withTickets(o models.Order) models.Order {
	o.Tickets = []models.Ticket{}
	for _, t := range m.tickets {
		if t.OrderID == o.ID {
			o.Tickets = append(o.Tickets, t)
		}
	}
	return o
}

func (tx *memTx) CreateOrder(ctx context.Context, userID int64, createdAt time.Time) (models.Order, error) {
	tx.s.nextID++
	o := models.Order{ID: tx.s.nextID, UserID: userID, CreatedAt: createdAt, Tickets: []models.Ticket{}}
	tx.orders = append(tx.orders, o)
	return o, nil
}

func (tx *memTx) TrainForJourney(ctx context.Context, journeyID int64) (models.Train, error) {
	t, ok := tx.s.trains[journeyID]
	if !ok {
		return models.Train{}, domain.NotFoundError{Resource: "journey"}
	}
	return t, nil
}

func (tx *memTx) CreateTicket(ctx context.Context, t models.Ticket) (models.Ticket, error) {
	for _, existing := range tx.tickets {
		if existing.Seat == t.Seat && existing.JourneyID == t.JourneyID {
			return models.Ticket{}, domain.ConflictError{
				Resource: "ticket",
				Field:    "seat",
				Msg:      fmt.Sprintf("seat %d is already taken on journey %d", t.Seat, t.JourneyID),
			}
		}
	}
	tx.s.nextID++
	t.ID = tx.s.nextID
	tx.tickets = append(tx.tickets, t)
	return t, nil
}

var fixedNow = time.Date(2025, 5, 13, 10, 0, 0, 0, time.UTC)

func newOrderService(store *memStore) OrderService {
	return OrderService{Store: store, Now: func() time.Time { return fixedNow }}
}

func ticketFields(t *testing.T, err error) (int, map[string]string) {
	t.Helper()
	var te domain.TicketError
	require.True(t, errors.As(err, &te), "expected TicketError, got %v", err)
	return te.Index, te.Fields()
}

func TestCreateOrder_BooksTicket(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store)

	order, err := svc.CreateOrder(context.Background(), 7, []models.TicketRequest{{Cargo: 2, Seat: 2, Journey: 1}})
	require.NoError(t, err)

	assert.Equal(t, fixedNow, order.CreatedAt)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, 2, order.Tickets[0].Seat)
	assert.Equal(t, order.ID, order.Tickets[0].OrderID)
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.tickets, 1)
}

func TestCreateOrder_PlacementOutOfRange(t *testing.T) {
	cases := []struct {
		name  string
		req   models.TicketRequest
		field string
		msg   string
	}{
		{"seat too high", models.TicketRequest{Cargo: 1, Seat: 99, Journey: 1}, "seat", "seat must be in the range [1, 50], not 99"},
		{"seat zero", models.TicketRequest{Cargo: 1, Seat: 0, Journey: 1}, "seat", "seat must be in the range [1, 50], not 0"},
		{"cargo too high", models.TicketRequest{Cargo: 99, Seat: 4, Journey: 1}, "cargo", "cargo must be in the range [1, 9], not 99"},
		{"cargo zero", models.TicketRequest{Cargo: 0, Seat: 4, Journey: 1}, "cargo", "cargo must be in the range [1, 9], not 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			_, err := newOrderService(store).CreateOrder(context.Background(), 7, []models.TicketRequest{tc.req})

			idx, fields := ticketFields(t, err)
			assert.Equal(t, 0, idx)
			assert.Equal(t, tc.msg, fields[tc.field])
			assert.True(t, domain.IsValidation(err))
			assert.Empty(t, store.orders)
			assert.Empty(t, store.tickets)
		})
	}
}

func TestCreateOrder_ReportsSeatAndCargoTogether(t *testing.T) {
	_, err := newOrderService(newMemStore()).CreateOrder(context.Background(), 7,
		[]models.TicketRequest{{Cargo: 10, Seat: 51, Journey: 1}})

	_, fields := ticketFields(t, err)
	assert.Contains(t, fields, "seat")
	assert.Contains(t, fields, "cargo")
}

func TestCreateOrder_IsAtomic(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store)

	_, err := svc.CreateOrder(context.Background(), 7, []models.TicketRequest{
		{Cargo: 1, Seat: 1, Journey: 1},
		{Cargo: 1, Seat: 21, Journey: 2},
	})
	idx, fields := ticketFields(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, fields, "seat")
	assert.Empty(t, store.orders)
	assert.Empty(t, store.tickets)
}

func TestCreateOrder_DuplicateSeatInOneRequest(t *testing.T) {
	store := newMemStore()
	_, err := newOrderService(store).CreateOrder(context.Background(), 7, []models.TicketRequest{
		{Cargo: 1, Seat: 5, Journey: 1},
		{Cargo: 2, Seat: 5, Journey: 1},
	})

	idx, fields := ticketFields(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "seat 5 is already taken on journey 1", fields["seat"])
	assert.True(t, domain.IsConflict(err))
	assert.Empty(t, store.tickets)
}

func TestCreateOrder_SameSeatOnOtherJourneyIsFine(t *testing.T) {
	store := newMemStore()
	order, err := newOrderService(store).CreateOrder(context.Background(), 7, []models.TicketRequest{
		{Cargo: 1, Seat: 5, Journey: 1},
		{Cargo: 1, Seat: 5, Journey: 2},
	})
	require.NoError(t, err)
	assert.Len(t, order.Tickets, 2)
}

func TestCreateOrder_SeatTakenByEarlierOrder(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store)

	_, err := svc.CreateOrder(context.Background(), 7, []models.TicketRequest{{Cargo: 1, Seat: 8, Journey: 1}})
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), 8, []models.TicketRequest{{Cargo: 3, Seat: 8, Journey: 1}})
	_, fields := ticketFields(t, err)
	assert.Contains(t, fields, "seat")
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.tickets, 1)
}

func TestCreateOrder_UnknownJourney(t *testing.T) {
	store := newMemStore()
	_, err := newOrderService(store).CreateOrder(context.Background(), 7,
		[]models.TicketRequest{{Cargo: 1, Seat: 1, Journey: 404}})

	assert.True(t, domain.IsNotFound(err))
	assert.Empty(t, store.orders)
}

func TestCreateOrder_RequiresTickets(t *testing.T) {
	_, err := newOrderService(newMemStore()).CreateOrder(context.Background(), 7, nil)

	var ve domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "tickets", ve.Field)
}

func TestListOrders_OnlyOwner(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 7, []models.TicketRequest{{Cargo: 1, Seat: 1, Journey: 1}})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, 8, []models.TicketRequest{{Cargo: 1, Seat: 2, Journey: 1}})
	require.NoError(t, err)

	mine, err := svc.ListOrders(ctx, 7, nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(7), mine[0].UserID)

	other := fixedNow.AddDate(0, 0, -1)
	none, err := svc.ListOrders(ctx, 7, &other)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteOrder_RemovesTickets(t *testing.T) {
	store := newMemStore()
	svc := newOrderService(store)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, 7, []models.TicketRequest{{Cargo: 1, Seat: 1, Journey: 1}, {Cargo: 1, Seat: 2, Journey: 1}})
	require.NoError(t, err)

	assert.True(t, domain.IsNotFound(svc.DeleteOrder(ctx, 8, order.ID)))
	require.NoError(t, svc.DeleteOrder(ctx, 7, order.ID))
	assert.Empty(t, store.orders)
	assert.Empty(t, store.tickets)
}
