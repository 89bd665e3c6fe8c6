package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction kinds.
// Credit: the ledger owner gave value to the party (receivable goes up).
// Debit: the ledger owner received value from the party (receivable goes down).
const (
	TxCredit = "credit"
	TxDebit  = "debit"
)

// Transaction is a single monetary event against a party. Rows are the source
// of truth for balances; every insert/delete/edit goes through the paired
// balance update in the same DB transaction.
//
// CreatedAt is the canonical event timestamp. Historical installs carried a
// legacy "date" column instead; infra.NewDatabase backfills CreatedAt from it
// on startup.
type Transaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PartyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind      string          `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Note      *string
	CreatedAt time.Time `gorm:"index"`
}

func (Transaction) TableName() string { return "transactions" }

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// BalanceDelta is the transaction's effect on the owning party's cached
// balance: +Amount for credit, -Amount for debit.
func (t *Transaction) BalanceDelta() decimal.Decimal {
	if t.Kind == TxDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
