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

type offeringRepository struct {
	db *sql.DB
}

func NewOfferingRepository(db *sql.DB) repository.OfferingRepository {
	return &offeringRepository{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const offeringColumns = `id, property_id, created_by, price_cents, quantity, filled, status, date_opened, date_closed`

func scanOffering(row *sql.Row) (*domain.Offering, error) {
	o := &domain.Offering{}
	var closed sql.NullTime
	err := row.Scan(&o.ID, &o.PropertyID, &o.CreatedBy, &o.PriceCents, &o.Quantity, &o.Filled, &o.Status, &o.DateOpened, &closed)
	if err != nil {
		return nil, err
	}
	if closed.Valid {
		t := closed.Time
		o.DateClosed = &t
	}
	o.Remaining = o.Quantity - o.Filled
	return o, nil
}

func loadBackers(ctx context.Context, q querier, offeringID uuid.UUID) ([]domain.Backer, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT user_id, shares, date_backed FROM backers WHERE offering_id = $1 ORDER BY date_backed ASC, id ASC`,
		offeringID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	backers := []domain.Backer{}
	for rows.Next() {
		var b domain.Backer
		if err := rows.Scan(&b.UserID, &b.Shares, &b.DateBacked); err != nil {
			return nil, err
		}
		backers = append(backers, b)
	}
	return backers, rows.Err()
}

// Open creates a new offering. The property row is locked for the duration of
// the transaction so that concurrent Open calls for the same property cannot
// both pass the single-open-offering and aggregate-ceiling checks.
func (r *offeringRepository) Open(ctx context.Context, o *domain.Offering) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var propertyID uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM properties WHERE id = $1 FOR UPDATE`, o.PropertyID).Scan(&propertyID)
	if err == sql.ErrNoRows {
		return domain.ErrPropertyNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock property: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT status, filled FROM offerings WHERE property_id = $1`, o.PropertyID)
	if err != nil {
		return fmt.Errorf("failed to load prior offerings: %w", err)
	}

	var issued int32
	var hasOpen bool
	for rows.Next() {
		var status domain.OfferingStatus
		var filled int32
		if err := rows.Scan(&status, &filled); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan prior offering: %w", err)
		}
		switch status {
		case domain.OfferingStatusOpen:
			hasOpen = true
		case domain.OfferingStatusClosed:
			// Only closed offerings count toward the historical total.
			issued += filled
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate prior offerings: %w", err)
	}
	rows.Close()

	if hasOpen {
		return domain.ErrOfferingAlreadyOpen
	}
	if issued+o.Quantity > domain.MaxPropertyShares {
		return domain.ErrAggregateLimitExceeded
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO offerings (id, property_id, created_by, price_cents, quantity, filled, status, date_opened)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.PropertyID, o.CreatedBy, o.PriceCents, o.Quantity, o.Filled, o.Status, o.DateOpened)
	if err != nil {
		return fmt.Errorf("failed to insert offering: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offering, error) {
	o, err := scanOffering(r.db.QueryRowContext(ctx,
		`SELECT `+offeringColumns+` FROM offerings WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offering: %w", err)
	}

	if o.Backers, err = loadBackers(ctx, r.db, id); err != nil {
		return nil, fmt.Errorf("failed to load backers: %w", err)
	}
	return o, nil
}

func (r *offeringRepository) List(ctx context.Context, filter domain.OfferingFilter) ([]domain.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings`
	args := []interface{}{}
	where := ""
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	if filter.PropertyID != uuid.Nil {
		args = append(args, filter.PropertyID)
		if where == "" {
			where = fmt.Sprintf(" WHERE property_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND property_id = $%d", len(args))
		}
	}
	query += where + " ORDER BY date_opened ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offerings: %w", err)
	}
	defer rows.Close()

	var offerings []domain.Offering
	for rows.Next() {
		o := domain.Offering{}
		var closed sql.NullTime
		if err := rows.Scan(&o.ID, &o.PropertyID, &o.CreatedBy, &o.PriceCents, &o.Quantity, &o.Filled, &o.Status, &o.DateOpened, &closed); err != nil {
			return nil, fmt.Errorf("failed to scan offering: %w", err)
		}
		if closed.Valid {
			t := closed.Time
			o.DateClosed = &t
		}
		o.Remaining = o.Quantity - o.Filled
		offerings = append(offerings, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offerings: %w", err)
	}

	for i := range offerings {
		if offerings[i].Backers, err = loadBackers(ctx, r.db, offerings[i].ID); err != nil {
			return nil, fmt.Errorf("failed to load backers: %w", err)
		}
	}
	return offerings, nil
}

// AddBacker appends a commitment under a row lock on the offering, so two
// concurrent commitments cannot both pass the fill-limit check.
func (r *offeringRepository) AddBacker(ctx context.Context, offeringID uuid.UUID, backer domain.Backer) (*domain.Offering, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	o, err := scanOffering(tx.QueryRowContext(ctx,
		`SELECT `+offeringColumns+` FROM offerings WHERE id = $1 FOR UPDATE`, offeringID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock offering: %w", err)
	}

	if o.Status != domain.OfferingStatusOpen {
		return nil, domain.ErrOfferingClosed
	}

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM backers WHERE offering_id = $1 AND user_id = $2)`,
		offeringID, backer.UserID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check backer existence: %w", err)
	}
	if exists {
		return nil, domain.ErrBackerExists
	}

	newFilled := o.Filled + backer.Shares
	if newFilled > o.Quantity {
		return nil, domain.ErrInvalidShareQuantity
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO backers (offering_id, user_id, shares, date_backed) VALUES ($1, $2, $3, $4)`,
		offeringID, backer.UserID, backer.Shares, backer.DateBacked)
	if err != nil {
		return nil, fmt.Errorf("failed to insert backer: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE offerings SET filled = $1 WHERE id = $2`, newFilled, offeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to update fill count: %w", err)
	}

	o.Filled = newFilled
	o.Remaining = o.Quantity - newFilled
	if o.Backers, err = loadBackers(ctx, tx, offeringID); err != nil {
		return nil, fmt.Errorf("failed to load backers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return o, nil
}

func (r *offeringRepository) Close(ctx context.Context, offeringID uuid.UUID) (*domain.Offering, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	o, err := scanOffering(tx.QueryRowContext(ctx,
		`SELECT `+offeringColumns+` FROM offerings WHERE id = $1 FOR UPDATE`, offeringID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrOfferingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock offering: %w", err)
	}

	if o.Status != domain.OfferingStatusOpen {
		return nil, domain.ErrOfferingClosed
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE offerings SET status = $1, date_closed = $2 WHERE id = $3`,
		domain.OfferingStatusClosed, now, offeringID)
	if err != nil {
		return nil, fmt.Errorf("failed to close offering: %w", err)
	}

	o.Status = domain.OfferingStatusClosed
	o.DateClosed = &now
	if o.Backers, err = loadBackers(ctx, tx, offeringID); err != nil {
		return nil, fmt.Errorf("failed to load backers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return o, nil
}

func (r *offeringRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM backers WHERE offering_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete backers: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM offerings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete offering: %w", err)
	}
	return tx.Commit()
}
