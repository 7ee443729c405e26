package models

import "time"

// Journey is a scheduled run of a train over a route.
type Journey struct {
	ID            int64     `json:"id"`
	RouteID       int64     `json:"route"`
	TrainID       int64     `json:"train"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CrewIDs       []int64   `json:"crew"`
}

// JourneySummary is the list shape.
type JourneySummary struct {
	ID               int64     `json:"id"`
	RouteSource      string    `json:"route_source"`
	RouteDestination string    `json:"route_destination"`
	Train            string    `json:"train"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	CrewCount        int       `json:"crew_count"`
}

// JourneyDetail nests train and route and lists crew by full name.
type JourneyDetail struct {
	ID            int64       `json:"id"`
	Route         RouteDetail `json:"route"`
	Train         TrainDetail `json:"train"`
	DepartureTime time.Time   `json:"departure_time"`
	ArrivalTime   time.Time   `json:"arrival_time"`
	Crew          []string    `json:"crew"`
}
