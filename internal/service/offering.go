package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/logger"
	"brickvest-backend/internal/repository"
	"brickvest-backend/internal/utils"

	"github.com/google/uuid"
)

type offeringService struct {
	offeringRepo repository.OfferingRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	noteRepo     repository.NotificationRepository
	emailSvc     EmailService
}

func NewOfferingService(
	offeringRepo repository.OfferingRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) OfferingService {
	return &offeringService{
		offeringRepo: offeringRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		emailSvc:     emailSvc,
	}
}

// requireAdmin verifies the caller holds the admin capability. The HTTP
// middleware already enforces this on the happy path; the engine refuses to
// act on an unauthenticated or unprivileged context regardless.
func (s *offeringService) requireAdmin(ctx context.Context, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return domain.ErrUnauthorized
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *offeringService) OpenOffering(ctx context.Context, callerID uuid.UUID, propertyID, price string, quantity int32) (*domain.Offering, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	propID, err := uuid.Parse(propertyID)
	if err != nil || propID == uuid.Nil {
		return nil, domain.ErrInvalidProperty
	}

	priceCents, err := utils.ParsePriceCents(price)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}

	if quantity < 1 || quantity > domain.MaxPropertyShares {
		return nil, domain.ErrInvalidQuantity
	}

	exists, err := s.propertyRepo.Exists(ctx, propID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve property: %w", err)
	}
	if !exists {
		return nil, domain.ErrPropertyNotFound
	}

	offering := &domain.Offering{
		ID:         uuid.New(),
		PropertyID: propID,
		CreatedBy:  callerID,
		PriceCents: priceCents,
		Quantity:   quantity,
		Filled:     0,
		Remaining:  quantity,
		Status:     domain.OfferingStatusOpen,
		DateOpened: time.Now(),
		Backers:    []domain.Backer{},
	}

	// The store re-verifies the single-open-offering and aggregate-ceiling
	// rules under a per-property lock before persisting.
	if err := s.offeringRepo.Open(ctx, offering); err != nil {
		return nil, err
	}

	logger.Info("Offering opened", "offering_id", offering.ID, "property_id", propID, "quantity", quantity)
	return offering, nil
}

func (s *offeringService) GetOffering(ctx context.Context, offeringID string) (*domain.Offering, error) {
	id, err := uuid.Parse(offeringID)
	if err != nil {
		return nil, domain.ErrOfferingNotFound
	}
	return s.offeringRepo.GetByID(ctx, id)
}

func (s *offeringService) ListOfferings(ctx context.Context, status, propertyID string) ([]domain.Offering, error) {
	filter := domain.OfferingFilter{}

	if status != "" {
		switch domain.OfferingStatus(strings.ToUpper(status)) {
		case domain.OfferingStatusOpen:
			filter.Status = domain.OfferingStatusOpen
		case domain.OfferingStatusClosed:
			filter.Status = domain.OfferingStatusClosed
		default:
			return nil, domain.ErrInvalidStatus
		}
	}

	if propertyID != "" {
		propID, err := uuid.Parse(propertyID)
		if err != nil {
			return nil, domain.ErrInvalidProperty
		}
		filter.PropertyID = propID
	}

	return s.offeringRepo.List(ctx, filter)
}

func (s *offeringService) AddBacker(ctx context.Context, offeringID, backerID string, shares int32) (*domain.Offering, error) {
	offID, err := uuid.Parse(offeringID)
	if err != nil {
		return nil, domain.ErrOfferingNotFound
	}

	if backerID == "" {
		return nil, domain.ErrInvalidBacker
	}
	userID, err := uuid.Parse(backerID)
	if err != nil || userID == uuid.Nil {
		return nil, domain.ErrInvalidBacker
	}

	if shares < 1 || shares > domain.MaxPropertyShares {
		return nil, domain.ErrInvalidShares
	}

	backer := domain.Backer{
		UserID:     userID,
		Shares:     shares,
		DateBacked: time.Now(),
	}

	offering, err := s.offeringRepo.AddBacker(ctx, offID, backer)
	if err != nil {
		return nil, err
	}

	// Notify the backer. Best effort: a failed confirmation never fails the
	// commitment itself.
	user, _ := s.userRepo.GetByID(ctx, userID)
	if user != nil {
		propertyName := offering.PropertyID.String()
		if property, _ := s.propertyRepo.GetByID(ctx, offering.PropertyID); property != nil {
			propertyName = property.Name
		}
		_ = s.emailSvc.SendBackerConfirmation(ctx, user.Email, user.Name, shares, utils.FormatPriceCents(offering.PriceCents), propertyName)

		notif := &domain.Notification{
			UserID:  user.ID,
			Title:   "Shares Committed",
			Message: fmt.Sprintf("You committed %d shares in %s", shares, propertyName),
			Attributes: map[string]string{
				"type":        "BACKER_ADDED",
				"offering_id": offering.ID.String(),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return offering, nil
}

// Backer update and removal have no defined business rule yet. They stay
// unimplemented rather than guessing semantics.
func (s *offeringService) UpdateBacker(ctx context.Context, offeringID, backerID string, shares int32) (*domain.Offering, error) {
	return nil, domain.ErrNotImplemented
}

func (s *offeringService) RemoveBacker(ctx context.Context, offeringID, backerID string) error {
	return domain.ErrNotImplemented
}

func (s *offeringService) CloseOffering(ctx context.Context, callerID uuid.UUID, offeringID string) (*domain.Offering, error) {
	if err := s.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(offeringID)
	if err != nil {
		return nil, domain.ErrOfferingNotFound
	}

	offering, err := s.offeringRepo.Close(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info("Offering closed", "offering_id", offering.ID, "filled", offering.Filled, "quantity", offering.Quantity)

	// Notify the admin who opened the raise.
	creator, _ := s.userRepo.GetByID(ctx, offering.CreatedBy)
	if creator != nil {
		_ = s.emailSvc.SendOfferingClosedNotice(ctx, creator.Email, creator.Name, offering.Filled, offering.Quantity)

		notif := &domain.Notification{
			UserID:  creator.ID,
			Title:   "Offering Closed",
			Message: fmt.Sprintf("Offering %s closed with %d of %d shares filled", offering.ID, offering.Filled, offering.Quantity),
			Attributes: map[string]string{
				"type":        "OFFERING_CLOSED",
				"offering_id": offering.ID.String(),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return offering, nil
}
