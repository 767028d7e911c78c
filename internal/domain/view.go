package domain

import (
	"time"

	"brickvest-backend/internal/utils"

	"github.com/google/uuid"
)

// OfferingView is the serialized form of an offering exposed over the API.
type OfferingView struct {
	ID         uuid.UUID      `json:"id"`
	Property   uuid.UUID      `json:"property"`
	AddedBy    uuid.UUID      `json:"added_by"`
	Price      string         `json:"price"`
	Quantity   int32          `json:"quantity"`
	Status     OfferingStatus `json:"status"`
	Filled     int32          `json:"filled"`
	Remaining  int32          `json:"remaining"`
	DateOpened time.Time      `json:"date_opened"`
	DateClosed *time.Time     `json:"date_closed,omitempty"`
	Backers    []BackerView   `json:"backers"`
}

type BackerView struct {
	Backer     uuid.UUID `json:"backer"`
	Shares     int32     `json:"shares"`
	DateBacked time.Time `json:"date_backed"`
}

// ToPublicView converts a stored offering into its API representation.
func ToPublicView(o *Offering) OfferingView {
	backers := make([]BackerView, 0, len(o.Backers))
	for _, b := range o.Backers {
		backers = append(backers, BackerView{
			Backer:     b.UserID,
			Shares:     b.Shares,
			DateBacked: b.DateBacked,
		})
	}
	return OfferingView{
		ID:         o.ID,
		Property:   o.PropertyID,
		AddedBy:    o.CreatedBy,
		Price:      utils.FormatPriceCents(o.PriceCents),
		Quantity:   o.Quantity,
		Status:     o.Status,
		Filled:     o.Filled,
		Remaining:  o.Remaining,
		DateOpened: o.DateOpened,
		DateClosed: o.DateClosed,
		Backers:    backers,
	}
}
