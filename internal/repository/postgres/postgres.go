package postgres

import (
	"database/sql"

	"brickvest-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.PropertyRepository
	repository.OfferingRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		PropertyRepository:     NewPropertyRepository(db),
		OfferingRepository:     NewOfferingRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
