package models

import "time"

// Order is a user's batch of tickets, created atomically.
type Order struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    int64     `json:"-"`
	Tickets   []Ticket  `json:"tickets"`
}

// Ticket claims one (cargo, seat) position on a journey.
type Ticket struct {
	ID        int64 `json:"id"`
	Cargo     int   `json:"cargo"`
	Seat      int   `json:"seat"`
	JourneyID int64 `json:"journey"`
	OrderID   int64 `json:"-"`
}

// TicketRequest is one entry of an order submission.
type TicketRequest struct {
	Cargo   int   `json:"cargo"`
	Seat    int   `json:"seat"`
	Journey int64 `json:"journey"`
}
