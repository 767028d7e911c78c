package integration

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/repository/postgres"
	"brickvest-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noopEmail satisfies service.EmailService without talking to SendGrid.
type noopEmail struct{}

func (noopEmail) SendBackerConfirmation(ctx context.Context, email, name string, shares int32, price string, propertyName string) error {
	return nil
}
func (noopEmail) SendOfferingClosedNotice(ctx context.Context, email, name string, filled, quantity int32) error {
	return nil
}
func (noopEmail) SendOpenOfferingDigest(ctx context.Context, email string, lines []string) error {
	return nil
}

type lifecycleEnv struct {
	db      *sql.DB
	store   *postgres.Store
	svc     service.OfferingService
	adminID uuid.UUID
	propID  uuid.UUID
	userIDs []uuid.UUID
}

func setupLifecycle(t *testing.T, db *sql.DB) *lifecycleEnv {
	t.Helper()
	ctx := context.Background()
	store := postgres.NewStore(db)

	env := &lifecycleEnv{db: db, store: store}
	env.svc = service.NewOfferingService(
		store.OfferingRepository,
		store.PropertyRepository,
		store.UserRepository,
		store.NotificationRepository,
		noopEmail{},
	)

	admin := &domain.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		Name:         "Integration Admin",
		Role:         domain.UserRoleAdmin,
	}
	require.NoError(t, store.UserRepository.Create(ctx, admin))
	env.adminID = admin.ID
	env.userIDs = append(env.userIDs, admin.ID)

	property := &domain.Property{
		ID:        uuid.New(),
		Name:      "Integration Property",
		Address:   "1 Test Way",
		CreatedBy: admin.ID,
	}
	require.NoError(t, store.PropertyRepository.Create(ctx, property))
	env.propID = property.ID

	t.Cleanup(func() { env.teardown(t) })
	return env
}

func (e *lifecycleEnv) newMember(t *testing.T) uuid.UUID {
	t.Helper()
	member := &domain.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		Name:         "Integration Member",
		Role:         domain.UserRoleMember,
	}
	require.NoError(t, e.store.UserRepository.Create(context.Background(), member))
	e.userIDs = append(e.userIDs, member.ID)
	return member.ID
}

func (e *lifecycleEnv) teardown(t *testing.T) {
	ctx := context.Background()
	offerings, err := e.store.OfferingRepository.List(ctx, domain.OfferingFilter{PropertyID: e.propID})
	if err == nil {
		for i := range offerings {
			_ = e.store.OfferingRepository.Delete(ctx, offerings[i].ID)
		}
	}
	_, _ = e.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, e.propID)
	for _, id := range e.userIDs {
		_, _ = e.db.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, id)
		_, _ = e.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	}
}

func TestOfferingLifecycle(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()

	ctx := context.Background()
	env := setupLifecycle(t, db)

	offering, err := env.svc.OpenOffering(ctx, env.adminID, env.propID.String(), "250.00", 50)
	require.NoError(t, err)
	assert.Equal(t, int32(50), offering.Remaining)

	// A second open offering for the same property is refused.
	_, err = env.svc.OpenOffering(ctx, env.adminID, env.propID.String(), "300.00", 100)
	assert.ErrorIs(t, err, domain.ErrOfferingAlreadyOpen)

	backerID := env.newMember(t)
	updated, err := env.svc.AddBacker(ctx, offering.ID.String(), backerID.String(), 20)
	require.NoError(t, err)
	assert.Equal(t, int32(20), updated.Filled)
	assert.Equal(t, int32(30), updated.Remaining)

	// Repeat commitment by the same backer is refused, not merged.
	_, err = env.svc.AddBacker(ctx, offering.ID.String(), backerID.String(), 5)
	assert.ErrorIs(t, err, domain.ErrBackerExists)

	// A commitment past the remainder is refused.
	other := env.newMember(t)
	_, err = env.svc.AddBacker(ctx, offering.ID.String(), other.String(), 31)
	assert.ErrorIs(t, err, domain.ErrInvalidShareQuantity)

	// Exactly the remainder fills the offering.
	updated, err = env.svc.AddBacker(ctx, offering.ID.String(), other.String(), 30)
	require.NoError(t, err)
	assert.Equal(t, int32(50), updated.Filled)
	assert.Equal(t, int32(0), updated.Remaining)
	assert.Len(t, updated.Backers, 2)

	closed, err := env.svc.CloseOffering(ctx, env.adminID, offering.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.OfferingStatusClosed, closed.Status)
	assert.NotNil(t, closed.DateClosed)

	// The closed offering no longer accepts commitments.
	_, err = env.svc.AddBacker(ctx, offering.ID.String(), env.newMember(t).String(), 1)
	assert.ErrorIs(t, err, domain.ErrOfferingClosed)

	// 50 of the 1000 aggregate shares are now issued. A follow-up offering may
	// issue at most 950.
	_, err = env.svc.OpenOffering(ctx, env.adminID, env.propID.String(), "250.00", 951)
	assert.ErrorIs(t, err, domain.ErrAggregateLimitExceeded)

	second, err := env.svc.OpenOffering(ctx, env.adminID, env.propID.String(), "250.00", 950)
	require.NoError(t, err)
	assert.Equal(t, int32(950), second.Quantity)
}

func TestOfferingConcurrentBackers(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()

	ctx := context.Background()
	env := setupLifecycle(t, db)

	offering, err := env.svc.OpenOffering(ctx, env.adminID, env.propID.String(), "100.00", 50)
	require.NoError(t, err)

	// 10 backers race for 10 shares each; only 5 commitments fit.
	backers := make([]uuid.UUID, 10)
	for i := range backers {
		backers[i] = env.newMember(t)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(backers))
	for i, id := range backers {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, errs[i] = env.svc.AddBacker(ctx, offering.ID.String(), id.String(), 10)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInvalidShareQuantity)
		}
	}
	assert.Equal(t, 5, succeeded)

	final, err := env.svc.GetOffering(ctx, offering.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int32(50), final.Filled)
	assert.Equal(t, int32(0), final.Remaining)
	assert.Len(t, final.Backers, 5)

	var sum int32
	for _, b := range final.Backers {
		sum += b.Shares
	}
	assert.Equal(t, final.Filled, sum)
}

func TestOfferingConcurrentOpens(t *testing.T) {
	db := prepareDB(t)
	defer db.Close()

	ctx := context.Background()
	env := setupLifecycle(t, db)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.OpenOffering(ctx, env.adminID, env.propID.String(), "100.00", 100)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrOfferingAlreadyOpen)
		}
	}
	assert.Equal(t, 1, succeeded)

	// Lists stay consistent under the filter surface.
	open, err := env.svc.ListOfferings(ctx, "OPEN", env.propID.String())
	require.NoError(t, err)
	assert.Len(t, open, 1)
}
