package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/model"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
)

type LedgerService interface {
	// AddTransaction validates the event, then writes the ledger row and the
	// party's balance delta as one atomic unit.
	AddTransaction(ctx context.Context, req dto.AddTransactionRequest) (*dto.TransactionResponse, error)
	// DeleteTransaction reverses the row's original balance effect atomically
	// with the delete. Deleting an unknown id is a no-op success.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	// UpdateTransaction edits amount/kind/note, applying reverse-old-then-
	// apply-new to the balance in the same DB transaction.
	UpdateTransaction(ctx context.Context, id uuid.UUID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	ListForParty(ctx context.Context, partyID uuid.UUID, limit, offset int) ([]dto.TransactionResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
}

type ledgerService struct {
	txRepo    repository.TransactionRepository
	partyRepo repository.PartyRepository
	loc       *time.Location
}

func NewLedgerService(txRepo repository.TransactionRepository, partyRepo repository.PartyRepository) LedgerService {
	return &ledgerService{txRepo: txRepo, partyRepo: partyRepo, loc: time.Local}
}

// localDayStart resolves a "YYYY-MM-DD" filter value to midnight of that day
// in loc. Day-granularity filters are defined over the installation's local
// calendar, so boundaries must be computed here rather than by the database.
func localDayStart(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, loc)
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *ledgerService) AddTransaction(ctx context.Context, req dto.AddTransactionRequest) (*dto.TransactionResponse, error) {
	partyID, err := uuid.Parse(req.PartyID)
	if err != nil {
		return nil, invalid("party_id", "must be a valid uuid")
	}
	if req.Kind != model.TxCredit && req.Kind != model.TxDebit {
		return nil, invalid("kind", "must be credit or debit")
	}
	if !req.Amount.IsPositive() {
		return nil, invalid("amount", "must be greater than zero")
	}

	party, err := s.partyRepo.FindByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("lookup party: %w", err)
	}
	if party == nil {
		return nil, notFound("party", req.PartyID)
	}

	t := &model.Transaction{
		PartyID:   partyID,
		Kind:      req.Kind,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	err = runTx(ctx, s.txRepo.DB(), func(tx *gorm.DB) error {
		if err := s.txRepo.Create(ctx, tx, t); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		if err := s.partyRepo.ApplyBalanceDelta(ctx, tx, partyID, t.BalanceDelta()); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toTransactionResponse(t, party.Name)
	return &resp, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup transaction: %w", err)
	}
	if t == nil {
		// idempotent delete
		return nil
	}

	return runTx(ctx, s.txRepo.DB(), func(tx *gorm.DB) error {
		if err := s.txRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		if err := s.partyRepo.ApplyBalanceDelta(ctx, tx, t.PartyID, t.BalanceDelta().Neg()); err != nil {
			return fmt.Errorf("reverse balance delta: %w", err)
		}
		return nil
	})
}

func (s *ledgerService) UpdateTransaction(ctx context.Context, id uuid.UUID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	t, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup transaction: %w", err)
	}
	if t == nil {
		return nil, notFound("transaction", id.String())
	}

	updated := *t
	if req.Kind != nil {
		if *req.Kind != model.TxCredit && *req.Kind != model.TxDebit {
			return nil, invalid("kind", "must be credit or debit")
		}
		updated.Kind = *req.Kind
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, invalid("amount", "must be greater than zero")
		}
		updated.Amount = *req.Amount
	}
	if req.Note != nil {
		updated.Note = req.Note
	}

	// Net effect of delete-then-reinsert: new delta minus the old one.
	delta := updated.BalanceDelta().Sub(t.BalanceDelta())

	err = runTx(ctx, s.txRepo.DB(), func(tx *gorm.DB) error {
		if err := s.txRepo.Update(ctx, tx, &updated); err != nil {
			return fmt.Errorf("update transaction: %w", err)
		}
		if delta.IsZero() {
			return nil
		}
		if err := s.partyRepo.ApplyBalanceDelta(ctx, tx, t.PartyID, delta); err != nil {
			return fmt.Errorf("apply balance delta: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toTransactionResponse(&updated, "")
	return &resp, nil
}

func (s *ledgerService) ListForParty(ctx context.Context, partyID uuid.UUID, limit, offset int) ([]dto.TransactionResponse, error) {
	rows, err := s.txRepo.ListForParty(ctx, partyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rowsToResponses(rows), nil
}

func (s *ledgerService) List(ctx context.Context, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	query := repository.TransactionQuery{
		PartyID: filter.PartyID,
		Kind:    filter.Kind,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	if filter.StartDate != "" {
		start, err := localDayStart(filter.StartDate, s.loc)
		if err != nil {
			return nil, invalid("start_date", "must be YYYY-MM-DD")
		}
		query.Start = &start
	}
	if filter.EndDate != "" {
		day, err := localDayStart(filter.EndDate, s.loc)
		if err != nil {
			return nil, invalid("end_date", "must be YYYY-MM-DD")
		}
		// inclusive at day granularity
		end := day.AddDate(0, 0, 1)
		query.End = &end
	}

	rows, total, err := s.txRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return &dto.TransactionListResponse{
		Transactions: rowsToResponses(rows),
		Total:        total,
	}, nil
}

func toTransactionResponse(t *model.Transaction, partyName string) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID.String(),
		PartyID:   t.PartyID.String(),
		PartyName: partyName,
		Kind:      t.Kind,
		Amount:    t.Amount,
		Note:      t.Note,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func rowsToResponses(rows []repository.TransactionRow) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toTransactionResponse(&rows[i].Transaction, rows[i].PartyName))
	}
	return out
}
