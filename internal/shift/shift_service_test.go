package shift_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrm/internal/shift"
	shifterrors "go-hrm/internal/shift/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeShiftRepository struct {
	createFn   func(ctx context.Context, s *shift.Shift) error
	findAllFn  func(ctx context.Context, companyID string) ([]shift.Shift, error)
	findByIDFn func(ctx context.Context, companyID, id string) (*shift.Shift, error)
	updateFn   func(ctx context.Context, s *shift.Shift) error
	deleteFn   func(ctx context.Context, companyID, id string) error
}

func (f *fakeShiftRepository) WithTx(tx *sql.Tx) shift.Repository { return f }

func (f *fakeShiftRepository) Create(ctx context.Context, s *shift.Shift) error {
	return f.createFn(ctx, s)
}

func (f *fakeShiftRepository) FindAllByCompany(ctx context.Context, companyID string) ([]shift.Shift, error) {
	return f.findAllFn(ctx, companyID)
}

func (f *fakeShiftRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*shift.Shift, error) {
	return f.findByIDFn(ctx, companyID, id)
}

func (f *fakeShiftRepository) Update(ctx context.Context, s *shift.Shift) error {
	return f.updateFn(ctx, s)
}

func (f *fakeShiftRepository) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
		return
	}
	mock.ExpectRollback()
}

func strPtr(v string) *string { return &v }

func TestShiftService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	companyID := uuid.New().String()
	var saved shift.Shift
	repo := &fakeShiftRepository{
		createFn: func(ctx context.Context, s *shift.Shift) error {
			saved = *s
			return nil
		},
	}

	expectTx(t, mock, true)
	svc := shift.NewService(db, repo)
	resp, err := svc.Create(context.Background(), companyID, shift.CreateShiftRequest{
		Name:           "Regular",
		StartTime:      "09:00",
		EndTime:        "18:00",
		BreakStartTime: strPtr("12:00"),
		BreakEndTime:   strPtr("13:00"),
		GracePeriod:    10,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, saved.BreakDuration)
	assert.True(t, saved.IsActive)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "12:00", *resp.BreakStartTime)
	assert.Equal(t, 8.0, resp.WorkingHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftService_Create_Validation(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := shift.NewService(db, &fakeShiftRepository{})
	ctx := context.Background()
	companyID := uuid.New().String()

	_, err = svc.Create(ctx, companyID, shift.CreateShiftRequest{Name: "x", StartTime: "9am", EndTime: "18:00"})
	assert.ErrorIs(t, err, shifterrors.ErrInvalidTime)

	_, err = svc.Create(ctx, companyID, shift.CreateShiftRequest{Name: "x", StartTime: "22:00", EndTime: "06:00"})
	assert.ErrorIs(t, err, shifterrors.ErrDayShiftCrossesMidnight)

	_, err = svc.Create(ctx, companyID, shift.CreateShiftRequest{Name: "x", StartTime: "09:00", EndTime: "18:00", BreakStartTime: strPtr("12:00")})
	assert.ErrorIs(t, err, shifterrors.ErrIncompleteBreakWindow)
}

func TestShiftService_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &fakeShiftRepository{
		findByIDFn: func(ctx context.Context, companyID, id string) (*shift.Shift, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	expectTx(t, mock, false)
	svc := shift.NewService(db, repo)
	_, err = svc.Update(context.Background(), uuid.New().String(), uuid.New().String(), shift.UpdateShiftRequest{
		Name: "Night", StartTime: "22:00", EndTime: "06:00", IsNightShift: true,
	})
	assert.ErrorIs(t, err, shifterrors.ErrShiftNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftService_Update_Deactivate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	existing := &shift.Shift{ID: uuid.New(), CompanyID: uuid.New(), Name: "Old", IsActive: true}
	var updated shift.Shift
	repo := &fakeShiftRepository{
		findByIDFn: func(ctx context.Context, companyID, id string) (*shift.Shift, error) { return existing, nil },
		updateFn: func(ctx context.Context, s *shift.Shift) error {
			updated = *s
			return nil
		},
	}

	inactive := false
	expectTx(t, mock, true)
	resp, err := shift.NewService(db, repo).Update(context.Background(), existing.CompanyID.String(), existing.ID.String(), shift.UpdateShiftRequest{
		Name: "Night", StartTime: "22:00", EndTime: "06:00", IsNightShift: true, IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Night", resp.Name)
	assert.Equal(t, 8.0, resp.WorkingHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}
