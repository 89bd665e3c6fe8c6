package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

type PartyRepository interface {
	Create(ctx context.Context, p *model.Party) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Party, error)
	List(ctx context.Context) ([]model.Party, error)
	// UpdateFields applies only the given column set; callers build it from an
	// explicit patch so an empty map is a no-op.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error)
	// DeleteWithTransactions removes the party and its transactions in one DB
	// transaction. Returns the number of party rows removed.
	DeleteWithTransactions(ctx context.Context, id uuid.UUID) (int64, error)
	// ApplyBalanceDelta shifts the cached total_balance inside the caller's
	// transaction. This is the only write path for total_balance.
	ApplyBalanceDelta(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
	// SetBalance overwrites the cached total_balance (recompute/repair path).
	SetBalance(ctx context.Context, tx *gorm.DB, id uuid.UUID, balance decimal.Decimal) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type partyRepo struct{ db *gorm.DB }

func NewPartyRepository(db *gorm.DB) PartyRepository { return &partyRepo{db: db} }

func (r *partyRepo) DB() *gorm.DB { return r.db }

func (r *partyRepo) Create(ctx context.Context, p *model.Party) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *partyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Party, error) {
	var p model.Party
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *partyRepo) List(ctx context.Context) ([]model.Party, error) {
	var parties []model.Party
	err := r.db.WithContext(ctx).Find(&parties).Error
	return parties, err
}

func (r *partyRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Party{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *partyRepo) DeleteWithTransactions(ctx context.Context, id uuid.UUID) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("party_id = ?", id).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Party{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

func (r *partyRepo) ApplyBalanceDelta(ctx context.Context, tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	res := tx.WithContext(ctx).Model(&model.Party{}).Where("id = ?", id).
		Update("total_balance", gorm.Expr("total_balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *partyRepo) SetBalance(ctx context.Context, tx *gorm.DB, id uuid.UUID, balance decimal.Decimal) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Model(&model.Party{}).Where("id = ?", id).
		Update("total_balance", balance).Error
}
