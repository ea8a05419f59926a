package models

import "time"

// LatLng is a coordinate as clients send it. The store keeps the
// longitude-latitude order; translation happens at the write boundary.
type LatLng struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Bounds is the rectangle used for geo search, given by its corners.
type Bounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

type Place struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Longitude float64   `json:"longitude"`
	Latitude  float64   `json:"latitude"`
	Safe      bool      `json:"safe"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`

	// Derived on every read, never stored.
	Capacity   int `json:"capacity"`
	Occupation int `json:"occupation"`
}

type Section struct {
	ID       string `json:"id"`
	PlaceID  string `json:"place"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`

	// Derived: count of reservations referencing the section.
	Occupation int `json:"occupation"`
}

type Reservation struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user"`
	SectionID string    `json:"section"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
