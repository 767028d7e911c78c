package repos

import (
	"context"
	"testing"
	"time"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPropertyRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPropertyRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		property := &domain.Property{
			ID:        uuid.New(),
			Name:      "12 Rose St",
			Address:   "12 Rose St, Springfield",
			CreatedBy: uuid.New(),
		}

		mock.ExpectExec("INSERT INTO properties").
			WithArgs(property.ID, property.Name, property.Address, property.CreatedBy, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, property)
		assert.NoError(t, err)
		assert.False(t, property.CreatedOn.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPropertyRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPropertyRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		propID := uuid.New()

		mock.ExpectQuery(`SELECT id, name, address, created_by, created_on FROM properties WHERE id = \$1`).
			WithArgs(propID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "created_by", "created_on"}).
				AddRow(propID.String(), "12 Rose St", "12 Rose St, Springfield", uuid.New().String(), time.Now()))

		property, err := repo.GetByID(ctx, propID)
		assert.NoError(t, err)
		assert.Equal(t, propID, property.ID)
		assert.Equal(t, "12 Rose St", property.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		propID := uuid.New()

		mock.ExpectQuery(`SELECT id, name, address, created_by, created_on FROM properties WHERE id = \$1`).
			WithArgs(propID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "created_by", "created_on"}))

		_, err := repo.GetByID(ctx, propID)
		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPropertyRepository_Exists(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPropertyRepository(db)
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		propID := uuid.New()

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(propID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.Exists(ctx, propID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Missing", func(t *testing.T) {
		propID := uuid.New()

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs(propID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.Exists(ctx, propID)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}
