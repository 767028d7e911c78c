package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/repository"

	"github.com/google/uuid"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	p.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO properties (id, name, address, created_by, created_on) VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.Name, p.Address, p.CreatedBy, p.CreatedOn)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	p := &domain.Property{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, created_by, created_on FROM properties WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Address, &p.CreatedBy, &p.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

func (r *propertyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check property existence: %w", err)
	}
	return exists, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, created_by, created_on FROM properties ORDER BY created_on ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		var p domain.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedBy, &p.CreatedOn); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}
	return properties, rows.Err()
}
