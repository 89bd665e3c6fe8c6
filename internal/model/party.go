package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Party kinds. Storage treats the kind as an opaque string so higher layers
// can introduce promotional tiers without a schema change.
const (
	KindCustomer = "customer"
	KindSupplier = "supplier"
)

// Party is a customer or supplier tracked by the ledger.
//
// TotalBalance is a denormalized cache of
// SUM(credit amounts) - SUM(debit amounts) over the party's transactions.
// Positive = receivable, negative = payable. It is only ever written through
// the ledger write path (see repository.PartyRepository.ApplyBalanceDelta) and
// must stay re-derivable from the transactions table alone.
type Party struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Phone        *string
	Kind         string `gorm:"type:varchar(20);not null;default:'customer';index"`
	PhotoRef     *string
	TotalBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Transactions []Transaction `gorm:"foreignKey:PartyID;constraint:OnDelete:CASCADE"`
}

func (Party) TableName() string { return "parties" }

// BeforeCreate assigns the ID — SQLite has no server-side uuid default.
func (p *Party) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
