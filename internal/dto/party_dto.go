package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AddPartyRequest struct {
	Name     string  `json:"name"      validate:"required,min=1"`
	Phone    *string `json:"phone"     validate:"omitempty,mobile"`
	Kind     string  `json:"kind"      validate:"omitempty,oneof=customer supplier"` // empty defaults to customer
	PhotoRef *string `json:"photo_ref"`
}

// UpdatePartyRequest is an explicit patch: only non-nil fields are written.
// An all-nil patch is a successful no-op. TotalBalance is deliberately
// absent — the cached balance is never writable through this path.
type UpdatePartyRequest struct {
	Name     *string `json:"name"      validate:"omitempty,min=1"`
	Phone    *string `json:"phone"     validate:"omitempty,mobile"`
	Kind     *string `json:"kind"      validate:"omitempty,oneof=customer supplier"`
	PhotoRef *string `json:"photo_ref"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PartyResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Phone        *string         `json:"phone,omitempty"`
	Kind         string          `json:"kind"`
	PhotoRef     *string         `json:"photo_ref,omitempty"`
	TotalBalance decimal.Decimal `json:"total_balance"`
	CreatedAt    string          `json:"created_at"`
}
