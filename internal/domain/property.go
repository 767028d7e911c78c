package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property is the minimal canonical record the offering engine reads.
// Valuation, documents and listing details live outside this backend.
type Property struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}
