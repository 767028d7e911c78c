package repository

import (
	"context"

	"brickvest-backend/internal/domain"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]domain.Property, error)
}

// OfferingRepository is the offering store. Open and AddBacker are
// conditional writes: each one checks its business preconditions and applies
// the mutation inside a single transaction, so concurrent calls for the same
// property or offering cannot race past the checks.
type OfferingRepository interface {
	// Open persists a new offering after verifying, under a per-property
	// lock, that the property exists, has no OPEN offering, and that the
	// aggregate shares issued across its CLOSED offerings plus the new
	// quantity stay within domain.MaxPropertyShares.
	Open(ctx context.Context, offering *domain.Offering) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offering, error)
	List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error)

	// AddBacker appends a backer and advances the fill counter atomically.
	// Fails if the user already backs the offering or the commitment would
	// overshoot the offering's quantity.
	AddBacker(ctx context.Context, offeringID uuid.UUID, backer domain.Backer) (*domain.Offering, error)

	// Close transitions an OPEN offering to CLOSED and stamps date_closed.
	Close(ctx context.Context, offeringID uuid.UUID) (*domain.Offering, error)

	// Delete removes an offering and its backers. Test support only; no
	// API path reaches it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error
}
