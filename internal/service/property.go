package service

import (
	"context"
	"fmt"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/repository"

	"github.com/google/uuid"
)

type propertyService struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
}

func NewPropertyService(propertyRepo repository.PropertyRepository, userRepo repository.UserRepository) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
	}
}

func (s *propertyService) CreateProperty(ctx context.Context, callerID uuid.UUID, name, address string) (*domain.Property, error) {
	if callerID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil || !caller.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	if name == "" || address == "" {
		return nil, fmt.Errorf("name and address are required")
	}

	property := &domain.Property{
		ID:        uuid.New(),
		Name:      name,
		Address:   address,
		CreatedBy: callerID,
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	id, err := uuid.Parse(propertyID)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}
	return s.propertyRepo.GetByID(ctx, id)
}

func (s *propertyService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.propertyRepo.List(ctx)
}
