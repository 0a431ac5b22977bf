package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-hrm/internal/leave"
	leaveerrors "go-hrm/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	types     []leave.LeaveType
	policies  map[string]*leave.LeavePolicy
	balances  map[string]*leave.LeaveBalance
	employees map[string]*leave.EmployeeRef

	createFn               func(ctx context.Context, l *leave.LeaveApplication) error
	findByIDAndCompanyFn   func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error)
	updateFn               func(ctx context.Context, l *leave.LeaveApplication) error
	hasOverlappingPeriodFn func(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error)
	updateBalanceFn        func(ctx context.Context, b *leave.LeaveBalance) error
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{
		policies:  map[string]*leave.LeavePolicy{},
		balances:  map[string]*leave.LeaveBalance{},
		employees: map[string]*leave.EmployeeRef{},
	}
}

func balanceKey(employeeID, leaveTypeID string, year int) string {
	return fmt.Sprintf("%s|%s|%d", employeeID, leaveTypeID, year)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) CreateType(ctx context.Context, t *leave.LeaveType) error {
	f.types = append(f.types, *t)
	return nil
}

func (f *fakeLeaveRepository) FindTypes(ctx context.Context, companyID string, activeOnly bool) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, t := range f.types {
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeLeaveRepository) FindTypeByID(ctx context.Context, companyID, id string) (*leave.LeaveType, error) {
	for i := range f.types {
		if f.types[i].ID.String() == id {
			t := f.types[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) UpdateType(ctx context.Context, t *leave.LeaveType) error { return nil }

func (f *fakeLeaveRepository) DeleteType(ctx context.Context, companyID, id string) error { return nil }

func (f *fakeLeaveRepository) SavePolicy(ctx context.Context, p *leave.LeavePolicy) error {
	f.policies[p.LeaveTypeID.String()] = p
	return nil
}

func (f *fakeLeaveRepository) FindPolicies(ctx context.Context, companyID string) ([]leave.LeavePolicy, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) FindPolicyByType(ctx context.Context, companyID, leaveTypeID string) (*leave.LeavePolicy, error) {
	if p, ok := f.policies[leaveTypeID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) DeletePolicy(ctx context.Context, companyID, id string) error {
	return nil
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveApplication) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, companyID string, filter leave.ApplicationFilter) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveApplication) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, companyID, id string) error { return nil }

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, companyID, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindApprovedInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveApplication, error) {
	return nil, nil
}

func (f *fakeLeaveRepository) CreateBalance(ctx context.Context, b *leave.LeaveBalance) error {
	f.balances[balanceKey(b.EmployeeID.String(), b.LeaveTypeID.String(), b.Year)] = b
	return nil
}

func (f *fakeLeaveRepository) UpdateBalance(ctx context.Context, b *leave.LeaveBalance) error {
	if f.updateBalanceFn != nil {
		return f.updateBalanceFn(ctx, b)
	}
	f.balances[balanceKey(b.EmployeeID.String(), b.LeaveTypeID.String(), b.Year)] = b
	return nil
}

func (f *fakeLeaveRepository) FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*leave.LeaveBalance, error) {
	if b, ok := f.balances[balanceKey(employeeID, leaveTypeID, year)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindBalanceByID(ctx context.Context, companyID, id string) (*leave.LeaveBalance, error) {
	for _, b := range f.balances {
		if b.ID.String() == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindBalances(ctx context.Context, companyID, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var out []leave.LeaveBalance
	for _, b := range f.balances {
		if b.EmployeeID.String() == employeeID && b.Year == year {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepository) FindEmployee(ctx context.Context, companyID, employeeID string) (*leave.EmployeeRef, error) {
	if e, ok := f.employees[employeeID]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stampCall struct {
	employeeID string
	days       []time.Time
	note       string
}

type fakeStamper struct {
	calls []stampCall
	err   error
}

func (f *fakeStamper) StampOnLeave(ctx context.Context, tx *sql.Tx, companyID, employeeID string, days []time.Time, note string) error {
	f.calls = append(f.calls, stampCall{employeeID: employeeID, days: days, note: note})
	return f.err
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

func date(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type leaveFixture struct {
	companyID uuid.UUID
	employee  *leave.EmployeeRef
	annual    leave.LeaveType
}

func newFixture(repo *fakeLeaveRepository) leaveFixture {
	companyID := uuid.New()
	emp := &leave.EmployeeRef{ID: uuid.New(), CompanyID: companyID, FullName: "Dina", IsActive: true}
	annual := leave.LeaveType{ID: uuid.New(), CompanyID: companyID, Name: "Annual Leave", Code: "AL", IsPaid: true, IsActive: true}
	repo.employees[emp.ID.String()] = emp
	repo.types = append(repo.types, annual)
	return leaveFixture{companyID: companyID, employee: emp, annual: annual}
}

func (fx leaveFixture) pending(start, end string, days int) *leave.LeaveApplication {
	return &leave.LeaveApplication{
		ID:          uuid.New(),
		CompanyID:   fx.companyID,
		EmployeeID:  fx.employee.ID,
		LeaveTypeID: fx.annual.ID,
		StartDate:   date(start),
		EndDate:     date(end),
		TotalDays:   days,
		Status:      leave.StatusPending,
		CreatedBy:   fx.employee.ID,
		LeaveType:   &fx.annual,
	}
}

func TestLeaveBalance_RecalculateInvariant(t *testing.T) {
	tests := []struct {
		allocated, carried, adjustment, used, want string
	}{
		{"10", "0", "0", "0", "10"},
		{"12", "3", "0", "5", "10"},
		{"12", "2.5", "-1.25", "4", "9.25"},
		{"10", "0", "0", "12", "-2"},
		{"15.333", "0", "0", "0.111", "15.22"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b := leave.LeaveBalance{
				AllocatedDays:    dec(tt.allocated),
				CarriedForward:   dec(tt.carried),
				ManualAdjustment: dec(tt.adjustment),
				UsedDays:         dec(tt.used),
			}
			b.Recalculate()
			assert.True(t, dec(tt.want).Equal(b.RemainingDays), b.RemainingDays.String())
		})
	}
}

func TestWeekdays(t *testing.T) {
	days := leave.Weekdays(date("2026-03-06"), date("2026-03-10"))
	require.Len(t, days, 3)
	assert.Equal(t, date("2026-03-06"), days[0])
	assert.Equal(t, date("2026-03-09"), days[1])
	assert.Equal(t, date("2026-03-10"), days[2])

	assert.Equal(t, 0, leave.CountWeekdays(date("2026-03-07"), date("2026-03-08")))
	assert.Equal(t, 22, leave.CountWeekdays(date("2026-06-01"), date("2026-06-30")))
}

func TestLeaveService_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)

	var created leave.LeaveApplication
	repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
		created = *l
		return nil
	}

	expectTx(t, mock, true)
	svc := leave.NewService(db, repo, &fakeStamper{})
	resp, err := svc.Create(context.Background(), fx.companyID.String(), fx.employee.ID.String(), leave.CreateLeaveRequest{
		EmployeeID:  fx.employee.ID.String(),
		LeaveTypeID: fx.annual.ID.String(),
		StartDate:   "2026-03-06",
		EndDate:     "2026-03-09",
		Reason:      "family",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalDays)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, "Annual Leave", resp.LeaveTypeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		setup   func(repo *fakeLeaveRepository, fx leaveFixture)
		wantErr error
		beginTx bool
	}{
		{name: "bad date", start: "06-03-2026", end: "2026-03-09", wantErr: leaveerrors.ErrInvalidDateFormat},
		{name: "reversed range", start: "2026-03-09", end: "2026-03-06", wantErr: leaveerrors.ErrInvalidDateRange},
		{name: "weekend only", start: "2026-03-07", end: "2026-03-08", wantErr: leaveerrors.ErrNoWorkingDays},
		{
			name: "overlap", start: "2026-03-09", end: "2026-03-10", beginTx: true,
			setup: func(repo *fakeLeaveRepository, fx leaveFixture) {
				repo.hasOverlappingPeriodFn = func(ctx context.Context, companyID, employeeID string, s, e time.Time) (bool, error) {
					return true, nil
				}
			},
			wantErr: leaveerrors.ErrLeaveOverlap,
		},
		{
			name: "insufficient balance", start: "2026-03-09", end: "2026-03-13", beginTx: true,
			setup: func(repo *fakeLeaveRepository, fx leaveFixture) {
				b := &leave.LeaveBalance{ID: uuid.New(), EmployeeID: fx.employee.ID, LeaveTypeID: fx.annual.ID, Year: time.Now().Year(), AllocatedDays: dec("3")}
				b.Recalculate()
				repo.balances[balanceKey(fx.employee.ID.String(), fx.annual.ID.String(), b.Year)] = b
			},
			wantErr: leaveerrors.ErrInsufficientBalance,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := newFakeLeaveRepository()
			fx := newFixture(repo)
			if tt.setup != nil {
				tt.setup(repo, fx)
			}
			if tt.beginTx {
				expectTx(t, mock, false)
			}

			svc := leave.NewService(db, repo, &fakeStamper{})
			_, err = svc.Create(context.Background(), fx.companyID.String(), fx.employee.ID.String(), leave.CreateLeaveRequest{
				EmployeeID:  fx.employee.ID.String(),
				LeaveTypeID: fx.annual.ID.String(),
				StartDate:   tt.start,
				EndDate:     tt.end,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLeaveService_Approve_StampsAttendanceAndOpensBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	repo.policies[fx.annual.ID.String()] = &leave.LeavePolicy{ID: uuid.New(), LeaveTypeID: fx.annual.ID, MaxDaysPerYear: dec("12")}

	app := fx.pending("2026-03-06", "2026-03-10", 3)
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
		return app, nil
	}

	stamper := &fakeStamper{}
	approver := uuid.New().String()

	expectTx(t, mock, true)
	svc := leave.NewService(db, repo, stamper)
	resp, err := svc.Approve(context.Background(), fx.companyID.String(), approver, app.ID.String())

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Equal(t, approver, *resp.ApprovedBy)

	require.Len(t, stamper.calls, 1)
	assert.Equal(t, fx.employee.ID.String(), stamper.calls[0].employeeID)
	assert.Equal(t, []time.Time{date("2026-03-06"), date("2026-03-09"), date("2026-03-10")}, stamper.calls[0].days)
	assert.Contains(t, stamper.calls[0].note, "Annual Leave")

	b, err := repo.FindBalance(context.Background(), "", fx.employee.ID.String(), fx.annual.ID.String(), time.Now().Year())
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(b.AllocatedDays))
	assert.True(t, dec("3").Equal(b.UsedDays))
	assert.True(t, dec("9").Equal(b.RemainingDays))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveService_Approve_ExistingBalanceWithoutPolicy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	year := time.Now().Year()
	existing := &leave.LeaveBalance{
		ID: uuid.New(), EmployeeID: fx.employee.ID, LeaveTypeID: fx.annual.ID, Year: year,
		AllocatedDays: dec("10"), CarriedForward: dec("2"), ManualAdjustment: dec("0.5"), UsedDays: dec("1"),
	}
	existing.Recalculate()
	repo.balances[balanceKey(fx.employee.ID.String(), fx.annual.ID.String(), year)] = existing

	app := fx.pending("2026-03-09", "2026-03-10", 2)
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
		return app, nil
	}

	expectTx(t, mock, true)
	svc := leave.NewService(db, repo, &fakeStamper{})
	_, err = svc.Approve(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String())
	require.NoError(t, err)

	b, err := repo.FindBalance(context.Background(), "", fx.employee.ID.String(), fx.annual.ID.String(), year)
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(b.UsedDays))
	assert.True(t, dec("9.5").Equal(b.RemainingDays), b.RemainingDays.String())
}

func TestLeaveService_Approve_DefaultAllocation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	app := fx.pending("2026-03-09", "2026-03-09", 1)
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
		return app, nil
	}

	expectTx(t, mock, true)
	svc := leave.NewService(db, repo, &fakeStamper{})
	_, err = svc.Approve(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String())
	require.NoError(t, err)

	b, err := repo.FindBalance(context.Background(), "", fx.employee.ID.String(), fx.annual.ID.String(), time.Now().Year())
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(leave.DefaultAllocatedDays).Equal(b.AllocatedDays))
	assert.True(t, dec("9").Equal(b.RemainingDays))
}

func TestLeaveService_Approve_RollsBackWhenStampingFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	app := fx.pending("2026-03-09", "2026-03-10", 2)
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
		return app, nil
	}

	stampErr := errors.New("attendance write failed")
	expectTx(t, mock, false)
	svc := leave.NewService(db, repo, &fakeStamper{err: stampErr})
	_, err = svc.Approve(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String())

	assert.ErrorIs(t, err, stampErr)
	assert.Empty(t, repo.balances)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveService_Approve_RollsBackWhenBalanceFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	year := time.Now().Year()
	repo.balances[balanceKey(fx.employee.ID.String(), fx.annual.ID.String(), year)] = &leave.LeaveBalance{
		ID: uuid.New(), EmployeeID: fx.employee.ID, LeaveTypeID: fx.annual.ID, Year: year, AllocatedDays: dec("10"), RemainingDays: dec("10"),
	}
	repo.updateBalanceFn = func(ctx context.Context, b *leave.LeaveBalance) error {
		return errors.New("balance write failed")
	}
	app := fx.pending("2026-03-09", "2026-03-10", 2)
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
		return app, nil
	}

	stamper := &fakeStamper{}
	expectTx(t, mock, false)
	svc := leave.NewService(db, repo, stamper)
	_, err = svc.Approve(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String())

	assert.Error(t, err)
	assert.Len(t, stamper.calls, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveService_FinalStatesAreFinal(t *testing.T) {
	for _, status := range []string{leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := newFakeLeaveRepository()
			fx := newFixture(repo)
			app := fx.pending("2026-03-09", "2026-03-10", 2)
			app.Status = status
			repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
				return app, nil
			}

			expectTx(t, mock, false)
			svc := leave.NewService(db, repo, &fakeStamper{})
			_, err = svc.Approve(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String())
			assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		})
	}
}

func TestLeaveService_RejectAndCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	app := fx.pending("2026-03-09", "2026-03-10", 2)
	repo.findByIDAndCompanyFn = func(ctx context.Context, companyID, id string) (*leave.LeaveApplication, error) {
		cp := *app
		return &cp, nil
	}
	svc := leave.NewService(db, repo, &fakeStamper{})

	_, err = svc.Reject(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String(), "")
	assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)

	expectTx(t, mock, false)
	_, err = svc.Cancel(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrNotApplicant)

	expectTx(t, mock, true)
	resp, err := svc.Cancel(context.Background(), fx.companyID.String(), fx.employee.ID.String(), app.ID.String())
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, resp.Status)

	expectTx(t, mock, true)
	resp, err = svc.Reject(context.Background(), fx.companyID.String(), uuid.New().String(), app.ID.String(), "busy season")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)
	assert.Equal(t, "busy season", *resp.RejectionReason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveService_InitializeBalances(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	sick := leave.LeaveType{ID: uuid.New(), CompanyID: fx.companyID, Name: "Sick Leave", Code: "SL", IsPaid: true, IsActive: true}
	unpaid := leave.LeaveType{ID: uuid.New(), CompanyID: fx.companyID, Name: "Old Type", Code: "OT", IsActive: false}
	repo.types = append(repo.types, sick, unpaid)

	year := time.Now().Year()
	repo.policies[fx.annual.ID.String()] = &leave.LeavePolicy{
		LeaveTypeID: fx.annual.ID, MaxDaysPerYear: dec("14"), AllowCarryForward: true, MaxCarryForwardDays: dec("5"),
	}
	repo.balances[balanceKey(fx.employee.ID.String(), fx.annual.ID.String(), year-1)] = &leave.LeaveBalance{
		ID: uuid.New(), EmployeeID: fx.employee.ID, LeaveTypeID: fx.annual.ID, Year: year - 1, RemainingDays: dec("7.5"),
	}
	existingSick := &leave.LeaveBalance{ID: uuid.New(), EmployeeID: fx.employee.ID, LeaveTypeID: sick.ID, Year: year, AllocatedDays: dec("6"), UsedDays: dec("1")}
	existingSick.Recalculate()
	repo.balances[balanceKey(fx.employee.ID.String(), sick.ID.String(), year)] = existingSick

	expectTx(t, mock, true)
	svc := leave.NewService(db, repo, &fakeStamper{})
	err = svc.InitializeBalances(context.Background(), fx.companyID.String(), fx.employee.ID.String())
	require.NoError(t, err)

	annual, err := repo.FindBalance(context.Background(), "", fx.employee.ID.String(), fx.annual.ID.String(), year)
	require.NoError(t, err)
	assert.True(t, dec("14").Equal(annual.AllocatedDays))
	assert.True(t, dec("5").Equal(annual.CarriedForward))
	assert.True(t, dec("19").Equal(annual.RemainingDays))

	sickBalance, err := repo.FindBalance(context.Background(), "", fx.employee.ID.String(), sick.ID.String(), year)
	require.NoError(t, err)
	assert.True(t, dec("5").Equal(sickBalance.RemainingDays))

	_, err = repo.FindBalance(context.Background(), "", fx.employee.ID.String(), unpaid.ID.String(), year)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveService_InitializeBalances_UnknownEmployee(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectTx(t, mock, false)
	svc := leave.NewService(db, newFakeLeaveRepository(), &fakeStamper{})
	err = svc.InitializeBalances(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotInCompany)
}

func TestLeaveService_AdjustBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := newFakeLeaveRepository()
	fx := newFixture(repo)
	b := &leave.LeaveBalance{ID: uuid.New(), EmployeeID: fx.employee.ID, LeaveTypeID: fx.annual.ID, Year: 2026, AllocatedDays: dec("10"), UsedDays: dec("4")}
	b.Recalculate()
	repo.balances[balanceKey(fx.employee.ID.String(), fx.annual.ID.String(), 2026)] = b

	expectTx(t, mock, true)
	svc := leave.NewService(db, repo, &fakeStamper{})
	resp, err := svc.AdjustBalance(context.Background(), fx.companyID.String(), uuid.New().String(), b.ID.String(), leave.AdjustBalanceRequest{
		Adjustment: dec("-1.5"),
		Reason:     "correction",
	})

	require.NoError(t, err)
	assert.True(t, dec("-1.5").Equal(resp.ManualAdjustment))
	assert.True(t, dec("4.5").Equal(resp.RemainingDays))
}
