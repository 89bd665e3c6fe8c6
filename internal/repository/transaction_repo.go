package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

// TransactionRow is a ledger row joined with the owning party's display name.
type TransactionRow struct {
	model.Transaction
	PartyName string
}

// TransactionQuery narrows List. Start is inclusive and End exclusive; the
// service layer computes them as local-day boundaries so that calendar-day
// semantics follow the installation's timezone, not the stored offset.
type TransactionQuery struct {
	PartyID string
	Kind    string
	Start   *time.Time
	End     *time.Time
	Limit   int
	Offset  int
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Update(ctx context.Context, tx *gorm.DB, t *model.Transaction) error
	ListForParty(ctx context.Context, partyID uuid.UUID, limit, offset int) ([]TransactionRow, error)
	List(ctx context.Context, q TransactionQuery) ([]TransactionRow, int64, error)
	// SumForParty recomputes the balance from scratch:
	// SUM(credit) - SUM(debit) over the party's rows.
	SumForParty(ctx context.Context, partyID uuid.UUID) (decimal.Decimal, error)
	DB() *gorm.DB
}

type transactionRepo struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) TransactionRepository { return &transactionRepo{db: db} }

func (r *transactionRepo) DB() *gorm.DB { return r.db }

func (r *transactionRepo) Create(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Create(t).Error
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Transaction{}).Error
}

func (r *transactionRepo) Update(ctx context.Context, tx *gorm.DB, t *model.Transaction) error {
	return tx.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"kind":   t.Kind,
			"amount": t.Amount,
			"note":   t.Note,
		}).Error
}

func (r *transactionRepo) ListForParty(ctx context.Context, partyID uuid.UUID, limit, offset int) ([]TransactionRow, error) {
	var rows []TransactionRow
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("transactions.*, parties.name AS party_name").
		Joins("JOIN parties ON parties.id = transactions.party_id").
		Where("transactions.party_id = ?", partyID).
		Order("transactions.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (r *transactionRepo) List(ctx context.Context, query TransactionQuery) ([]TransactionRow, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Transaction{})

	if query.PartyID != "" {
		q = q.Where("transactions.party_id = ?", query.PartyID)
	}
	if query.Kind != "" {
		q = q.Where("transactions.kind = ?", query.Kind)
	}
	// datetime() normalizes both sides to UTC so timestamps stored with
	// different offsets still compare as instants.
	if query.Start != nil {
		q = q.Where("datetime(transactions.created_at) >= datetime(?)", *query.Start)
	}
	if query.End != nil {
		q = q.Where("datetime(transactions.created_at) < datetime(?)", *query.End)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Select("transactions.*, parties.name AS party_name").
		Joins("JOIN parties ON parties.id = transactions.party_id").
		Order("transactions.created_at DESC")
	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}

	var rows []TransactionRow
	err := q.Find(&rows).Error
	return rows, total, err
}

func (r *transactionRepo) SumForParty(ctx context.Context, partyID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN kind = ? THEN amount ELSE -amount END), 0)", model.TxCredit).
		Where("party_id = ?", partyID).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}
