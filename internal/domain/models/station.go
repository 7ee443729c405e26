package models

type Station struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinates returns [latitude, longitude].
func (s Station) Coordinates() [2]float64 {
	return [2]float64{s.Latitude, s.Longitude}
}

// Route connects two distinct stations.
type Route struct {
	ID            int64 `json:"id"`
	SourceID      int64 `json:"source"`
	DestinationID int64 `json:"destination"`
	Distance      int   `json:"distance"`
}

// RouteSummary renders the endpoints by station name.
type RouteSummary struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

type RouteDetail struct {
	ID                     int64      `json:"id"`
	SourceName             string     `json:"source_name"`
	SourceCoordinates      [2]float64 `json:"source_coordinates"`
	DestinationName        string     `json:"destination_name"`
	DestinationCoordinates [2]float64 `json:"destination_coordinates"`
	Distance               int        `json:"distance"`
}
