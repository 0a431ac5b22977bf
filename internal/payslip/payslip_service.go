package payslip

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"

	"go-hrm/internal/payroll"
	paysliperrors "go-hrm/internal/payslip/errors"
	"go-hrm/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PayrollReader is the read side of the payroll repository.
type PayrollReader interface {
	FindRunByID(ctx context.Context, companyID, id string) (*payroll.PayrollRun, error)
	FindEntryByID(ctx context.Context, companyID, id string) (*payroll.PayrollEntry, error)
	FindEntriesByRun(ctx context.Context, companyID, runID string) ([]payroll.PayrollEntry, error)
}

type Config struct {
	Now func() time.Time
}

type Service interface {
	GenerateForEntry(ctx context.Context, companyID, actorID, entryID string) (PayslipResponse, error)
	GenerateForRun(ctx context.Context, companyID, actorID, runID string) (GenerateRunPayslipsResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPayslipsFilterRequest) ([]PayslipResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error)
	Download(ctx context.Context, companyID, id string) (io.ReadCloser, string, error)
	MarkSent(ctx context.Context, companyID, id string) (PayslipResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	payrolls PayrollReader
	counter  counter.Repository
	store    FileStore
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	payrolls PayrollReader,
	counterRepo counter.Repository,
	store FileStore,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{
		db:       db,
		repo:     repo,
		payrolls: payrolls,
		counter:  counterRepo,
		store:    store,
		now:      cfg.Now,
		logger:   l,
	}
}

// GenerateForEntry renders and stores the payslip of one payroll entry.
// An entry that already has a payslip gets it back untouched, so repeated
// requests and redelivered events are harmless.
func (s *service) GenerateForEntry(ctx context.Context, companyID, actorID, entryID string) (PayslipResponse, error) {
	existing, err := s.repo.FindByEntry(ctx, companyID, entryID)
	if err == nil {
		return mapToResponse(*existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return PayslipResponse{}, err
	}

	entry, err := s.payrolls.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayrollEntryNotFound
		}
		return PayslipResponse{}, err
	}
	run, err := s.payrolls.FindRunByID(ctx, companyID, entry.PayrollRunID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayslipResponse{}, paysliperrors.ErrPayrollEntryNotFound
		}
		return PayslipResponse{}, err
	}
	if run.Status != payroll.StatusCompleted {
		return PayslipResponse{}, paysliperrors.ErrRunNotCompleted
	}

	return s.generate(ctx, companyID, actorID, run, entry)
}

func (s *service) generate(
	ctx context.Context,
	companyID, actorID string,
	run *payroll.PayrollRun,
	entry *payroll.PayrollEntry,
) (PayslipResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypePayslip)
	if err != nil {
		return PayslipResponse{}, err
	}
	number := fmt.Sprintf("PS-%s-%05d", run.PayPeriodStart.Format("200601"), seq)
	now := s.now()

	var buf bytes.Buffer
	if err := Render(&buf, Document{PayslipNumber: number, Run: *run, Entry: *entry, GeneratedAt: now}); err != nil {
		return PayslipResponse{}, fmt.Errorf("render payslip %s: %w", number, err)
	}
	key, err := s.store.Save(ctx, path.Join(companyID, run.ID.String(), number+".pdf"), buf.Bytes())
	if err != nil {
		return PayslipResponse{}, fmt.Errorf("store payslip %s: %w", number, err)
	}

	// The file only outlives this call if its row commits. That includes
	// losing the race on uq_payslips_entry, where the number is discarded.
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
			s.logger.Warn("remove uncommitted payslip file failed", zap.String("key", key), zap.Error(err))
		}
	}()

	p := &Payslip{
		ID:             uuid.New(),
		CompanyID:      entry.CompanyID,
		PayrollEntryID: entry.ID,
		PayrollRunID:   run.ID,
		EmployeeID:     entry.EmployeeID,
		PayslipNumber:  number,
		FilePath:       key,
		Status:         StatusGenerated,
		GeneratedAt:    now,
	}
	if actor, err := uuid.Parse(actorID); err == nil {
		p.GeneratedBy = &actor
	}

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		if isEntryConflict(err) {
			_ = tx.Rollback()
			existing, findErr := s.repo.FindByEntry(ctx, companyID, entry.ID.String())
			if findErr != nil {
				return PayslipResponse{}, findErr
			}
			return mapToResponse(*existing), nil
		}
		return PayslipResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}
	committed = true

	s.logger.Info("payslip generated",
		zap.String("company_id", companyID),
		zap.String("payroll_entry_id", entry.ID.String()),
		zap.String("payslip_number", number),
	)
	return mapToResponse(*p), nil
}

func (s *service) GenerateForRun(ctx context.Context, companyID, actorID, runID string) (GenerateRunPayslipsResponse, error) {
	run, err := s.payrolls.FindRunByID(ctx, companyID, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GenerateRunPayslipsResponse{}, paysliperrors.ErrPayrollRunNotFound
		}
		return GenerateRunPayslipsResponse{}, err
	}
	if run.Status != payroll.StatusCompleted {
		return GenerateRunPayslipsResponse{}, paysliperrors.ErrRunNotCompleted
	}

	entries, err := s.payrolls.FindEntriesByRun(ctx, companyID, runID)
	if err != nil {
		return GenerateRunPayslipsResponse{}, err
	}

	out := GenerateRunPayslipsResponse{PayrollRunID: runID, Payslips: make([]PayslipResponse, 0, len(entries))}
	for i := range entries {
		existing, err := s.repo.FindByEntry(ctx, companyID, entries[i].ID.String())
		if err == nil {
			out.Payslips = append(out.Payslips, mapToResponse(*existing))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return GenerateRunPayslipsResponse{}, err
		}

		resp, err := s.generate(ctx, companyID, actorID, run, &entries[i])
		if err != nil {
			return GenerateRunPayslipsResponse{}, err
		}
		out.Generated++
		out.Payslips = append(out.Payslips, resp)
	}
	return out, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetPayslipsFilterRequest) ([]PayslipResponse, error) {
	switch filter.Status {
	case "", StatusGenerated, StatusSent, StatusDownloaded:
	default:
		return nil, paysliperrors.ErrInvalidStatusFilter
	}

	rows, err := s.repo.FindAllByCompany(ctx, companyID, Filter{
		PayrollRunID: filter.PayrollRunID,
		EmployeeID:   filter.EmployeeID,
		Status:       filter.Status,
	})
	if err != nil {
		return nil, err
	}
	out := make([]PayslipResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, mapToResponse(p))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

// Download opens the stored file and records the download. The caller
// closes the reader.
func (s *service) Download(ctx context.Context, companyID, id string) (io.ReadCloser, string, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}

	file, err := s.store.Open(ctx, p.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", paysliperrors.ErrPayslipFileMissing
		}
		return nil, "", err
	}

	now := s.now()
	p.Status = StatusDownloaded
	p.DownloadedAt = &now
	if err := s.repo.Update(ctx, p); err != nil {
		file.Close()
		return nil, "", err
	}
	return file, p.PayslipNumber + ".pdf", nil
}

func (s *service) MarkSent(ctx context.Context, companyID, id string) (PayslipResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}
	if !p.CanTransitionTo(StatusSent) {
		return PayslipResponse{}, paysliperrors.ErrInvalidStatusTransition
	}

	now := s.now()
	p.Status = StatusSent
	p.SentAt = &now
	if err := s.repo.Update(ctx, p); err != nil {
		return PayslipResponse{}, err
	}
	return mapToResponse(*p), nil
}

func mapToResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:             p.ID.String(),
		PayrollEntryID: p.PayrollEntryID.String(),
		PayrollRunID:   p.PayrollRunID.String(),
		EmployeeID:     p.EmployeeID.String(),
		PayslipNumber:  p.PayslipNumber,
		Status:         p.Status,
		GeneratedAt:    p.GeneratedAt.Format(time.RFC3339),
	}
	if p.SentAt != nil {
		v := p.SentAt.Format(time.RFC3339)
		resp.SentAt = &v
	}
	if p.DownloadedAt != nil {
		v := p.DownloadedAt.Format(time.RFC3339)
		resp.DownloadedAt = &v
	}
	return resp
}
