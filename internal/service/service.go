package service

import (
	"context"

	"brickvest-backend/internal/domain"

	"github.com/google/uuid"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                      // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

// OfferingService is the share-allocation engine: the only writer of offering
// state, and the component that enforces the per-offering and per-property
// issuance invariants.
type OfferingService interface {
	OpenOffering(ctx context.Context, callerID uuid.UUID, propertyID, price string, quantity int32) (*domain.Offering, error)
	GetOffering(ctx context.Context, offeringID string) (*domain.Offering, error)
	ListOfferings(ctx context.Context, status, propertyID string) ([]domain.Offering, error)
	AddBacker(ctx context.Context, offeringID, backerID string, shares int32) (*domain.Offering, error)
	UpdateBacker(ctx context.Context, offeringID, backerID string, shares int32) (*domain.Offering, error)
	RemoveBacker(ctx context.Context, offeringID, backerID string) error
	CloseOffering(ctx context.Context, callerID uuid.UUID, offeringID string) (*domain.Offering, error)
}

type PropertyService interface {
	CreateProperty(ctx context.Context, callerID uuid.UUID, name, address string) (*domain.Property, error)
	GetProperty(ctx context.Context, propertyID string) (*domain.Property, error)
	ListProperties(ctx context.Context) ([]domain.Property, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error
}

type EmailService interface {
	SendBackerConfirmation(ctx context.Context, email, name string, shares int32, price string, propertyName string) error
	SendOfferingClosedNotice(ctx context.Context, email, name string, filled, quantity int32) error
	SendOpenOfferingDigest(ctx context.Context, email string, lines []string) error
}
