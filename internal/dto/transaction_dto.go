package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddTransactionRequest struct {
	PartyID string          `json:"party_id" validate:"required,uuid4"`
	Kind    string          `json:"kind"     validate:"required,oneof=credit debit"`
	Amount  decimal.Decimal `json:"amount"   validate:"required,gt=0"`
	Note    *string         `json:"note"`
}

// UpdateTransactionRequest edits an existing transaction's amount and/or kind.
// The balance effect is computed as reverse-old-then-apply-new in one DB
// transaction.
type UpdateTransactionRequest struct {
	Kind   *string          `json:"kind"   validate:"omitempty,oneof=credit debit"`
	Amount *decimal.Decimal `json:"amount"`
	Note   *string          `json:"note"`
}

// TransactionFilter narrows the global transaction listing. Dates are "YYYY-MM-DD" and
// the range is inclusive at day granularity.
type TransactionFilter struct {
	PartyID   string `form:"party_id"`
	Kind      string `form:"kind"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransactionResponse struct {
	ID        string          `json:"id"`
	PartyID   string          `json:"party_id"`
	PartyName string          `json:"party_name,omitempty"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Note      *string         `json:"note,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}
