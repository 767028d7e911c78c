package unit

import (
	"context"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/security"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListAdmins(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, property *domain.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockPropertyRepo) List(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}

// MockOfferingRepo
type MockOfferingRepo struct {
	mock.Mock
}

func (m *MockOfferingRepo) Open(ctx context.Context, offering *domain.Offering) error {
	args := m.Called(ctx, offering)
	return args.Error(0)
}
func (m *MockOfferingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingRepo) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offering), args.Error(1)
}
func (m *MockOfferingRepo) AddBacker(ctx context.Context, offeringID uuid.UUID, backer domain.Backer) (*domain.Offering, error) {
	args := m.Called(ctx, offeringID, backer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingRepo) Close(ctx context.Context, offeringID uuid.UUID) (*domain.Offering, error) {
	args := m.Called(ctx, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int64, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBackerConfirmation(ctx context.Context, email, name string, shares int32, price string, propertyName string) error {
	args := m.Called(ctx, email, name, shares, price, propertyName)
	return args.Error(0)
}
func (m *MockEmailService) SendOfferingClosedNotice(ctx context.Context, email, name string, filled, quantity int32) error {
	args := m.Called(ctx, email, name, filled, quantity)
	return args.Error(0)
}
func (m *MockEmailService) SendOpenOfferingDigest(ctx context.Context, email string, lines []string) error {
	args := m.Called(ctx, email, lines)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID uuid.UUID, email string, role domain.UserRole) (string, error) {
	args := m.Called(userID, email, role)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
