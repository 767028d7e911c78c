package handlers

import (
	"context"

	"brickvest-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOfferingService
type MockOfferingService struct {
	mock.Mock
}

func (m *MockOfferingService) OpenOffering(ctx context.Context, callerID uuid.UUID, propertyID, price string, quantity int32) (*domain.Offering, error) {
	args := m.Called(ctx, callerID, propertyID, price, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingService) GetOffering(ctx context.Context, offeringID string) (*domain.Offering, error) {
	args := m.Called(ctx, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingService) ListOfferings(ctx context.Context, status, propertyID string) ([]domain.Offering, error) {
	args := m.Called(ctx, status, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offering), args.Error(1)
}
func (m *MockOfferingService) AddBacker(ctx context.Context, offeringID, backerID string, shares int32) (*domain.Offering, error) {
	args := m.Called(ctx, offeringID, backerID, shares)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingService) UpdateBacker(ctx context.Context, offeringID, backerID string, shares int32) (*domain.Offering, error) {
	args := m.Called(ctx, offeringID, backerID, shares)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingService) RemoveBacker(ctx context.Context, offeringID, backerID string) error {
	args := m.Called(ctx, offeringID, backerID)
	return args.Error(0)
}
func (m *MockOfferingService) CloseOffering(ctx context.Context, callerID uuid.UUID, offeringID string) (*domain.Offering, error) {
	args := m.Called(ctx, callerID, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
