package domain

import (
	"time"

	"github.com/google/uuid"
)

type OfferingStatus string

const (
	OfferingStatusOpen   OfferingStatus = "OPEN"
	OfferingStatusClosed OfferingStatus = "CLOSED"
)

// MaxPropertyShares caps the shares a single property may issue, both within
// one offering and summed over all of its closed offerings.
const MaxPropertyShares = 1000

// Offering is a capital raise selling a fixed number of shares in one property.
type Offering struct {
	ID         uuid.UUID      `json:"id"`
	PropertyID uuid.UUID      `json:"property_id"`
	CreatedBy  uuid.UUID      `json:"created_by"`
	PriceCents int64          `json:"price_cents"` // unit price per share
	Quantity   int32          `json:"quantity"`    // total shares offered, immutable
	Filled     int32          `json:"filled"`      // shares committed so far, only increases
	Remaining  int32          `json:"remaining"`   // derived: Quantity - Filled
	Status     OfferingStatus `json:"status"`
	DateOpened time.Time      `json:"date_opened"`
	DateClosed *time.Time     `json:"date_closed,omitempty"`
	Backers    []Backer       `json:"backers"`
}

// Backer is one user's commitment within one offering. A user appears at most
// once per offering; repeat commitments are rejected, not merged.
type Backer struct {
	UserID     uuid.UUID `json:"user_id"`
	Shares     int32     `json:"shares"`
	DateBacked time.Time `json:"date_backed"`
}

// OfferingFilter narrows ListOfferings. Zero values mean no filtering.
type OfferingFilter struct {
	Status     OfferingStatus
	PropertyID uuid.UUID
}
