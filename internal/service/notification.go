package service

import (
	"context"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/repository"

	"github.com/google/uuid"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, notificationID int64) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}
