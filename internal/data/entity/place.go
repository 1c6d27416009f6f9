package entity

import (
	"github.com/google/uuid"
)

// Place carries the fields the booking engine needs from the place
// catalogue: ownership for authorization and the nightly rate for price
// computation. Place CRUD itself lives outside this service.
type Place struct {
	Base
	OwnerID       uuid.UUID `db:"owner_id"`
	Title         string    `db:"title"`
	PricePerNight float64   `db:"price_per_night"`
}
