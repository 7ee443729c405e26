package models

// TrainType groups trains (express, regional, ...).
type TrainType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Train is the capacity descriptor every journey inherits.
type Train struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CargoNum     int    `json:"cargo_num"`
	PlaceInCargo int    `json:"place_in_cargo"`
	TrainTypeID  int64  `json:"train_type"`
}

// Capacity is the number of distinct (cargo, seat) positions.
func (t Train) Capacity() int {
	return t.CargoNum * t.PlaceInCargo
}

// TrainSummary is the list shape: the type is rendered by name.
type TrainSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CargoNum     int    `json:"cargo_num"`
	PlaceInCargo int    `json:"place_in_cargo"`
	TrainType    string `json:"train_type"`
}

// TrainDetail nests the full train type in place of its id.
type TrainDetail struct {
	Train
	TrainType TrainType `json:"train_type"`
}
