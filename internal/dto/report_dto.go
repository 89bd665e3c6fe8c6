package dto

import "github.com/shopspring/decimal"

// DashboardStats is the global scan/sum over all parties and transactions.
// TotalBalance comes from the cached party balances, NetBalance from the
// transaction rows; under the balance invariant they are equal.
type DashboardStats struct {
	TotalParties      int64           `json:"total_parties"`
	TotalTransactions int64           `json:"total_transactions"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	NetBalance        decimal.Decimal `json:"net_balance"`
}

type TotalsSummary struct {
	TotalReceivable decimal.Decimal `json:"total_receivable"`
	TotalPayable    decimal.Decimal `json:"total_payable"`
	NetBalance      decimal.Decimal `json:"net_balance"`
}

// PartyTotal is one row of the detailed per-party breakdown.
type PartyTotal struct {
	PartyID          string          `json:"party_id"`
	Name             string          `json:"name"`
	Kind             string          `json:"kind"`
	Receivable       decimal.Decimal `json:"receivable"`
	Payable          decimal.Decimal `json:"payable"`
	Net              decimal.Decimal `json:"net"`
	TransactionCount int64           `json:"transaction_count"`
}

// DailyTotal groups one calendar day's activity. Day is "YYYY-MM-DD" in the
// installation's timezone.
type DailyTotal struct {
	Day     string          `json:"date"`
	Credit  decimal.Decimal `json:"credit"`
	Debit   decimal.Decimal `json:"debit"`
	TxCount int64           `json:"count"`
}

// PartyReport restricts the transaction arithmetic to one party and a
// relative period, computed fresh from the rows (never the cached balance).
type PartyReport struct {
	PartyID          string                `json:"party_id"`
	Name             string                `json:"name"`
	Period           string                `json:"period"` // all | month | week
	TotalCredit      decimal.Decimal       `json:"total_credit"`
	TotalDebit       decimal.Decimal       `json:"total_debit"`
	Balance          decimal.Decimal       `json:"balance"`
	TransactionCount int64                 `json:"transaction_count"`
	Transactions     []TransactionResponse `json:"transactions"`
}
