package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

// ReportRepository holds the read-only aggregation queries. Every method
// either returns a complete result or an error — no partial reports.
type ReportRepository interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	TotalsSummary(ctx context.Context) (*dto.TotalsSummary, error)
	DetailedTotals(ctx context.Context, filterKind string) ([]dto.PartyTotal, error)
	// TotalsByDateRange buckets activity per calendar day of from's timezone.
	// from is inclusive, until exclusive.
	TotalsByDateRange(ctx context.Context, from, until time.Time) ([]dto.DailyTotal, error)
	TopParties(ctx context.Context, n int) ([]model.Party, error)
	// PartyTotalsSince sums one party's activity from `since` (nil = all time).
	PartyTotalsSince(ctx context.Context, partyID uuid.UUID, since *time.Time) (credit, debit decimal.Decimal, count int64, err error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepository(db *gorm.DB) ReportRepository { return &reportRepo{db: db} }

func (r *reportRepo) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	var txRow struct {
		TotalTransactions int64
		TotalCredit       decimal.Decimal
		TotalDebit        decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select(`COUNT(*) AS total_transactions,
			COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE 0 END), 0) AS total_credit,
			COALESCE(SUM(CASE WHEN kind = 'debit' THEN amount ELSE 0 END), 0) AS total_debit`).
		Scan(&txRow).Error
	if err != nil {
		return nil, err
	}

	var partyRow struct {
		TotalParties int64
		TotalBalance decimal.Decimal
	}
	err = r.db.WithContext(ctx).Model(&model.Party{}).
		Select("COUNT(*) AS total_parties, COALESCE(SUM(total_balance), 0) AS total_balance").
		Scan(&partyRow).Error
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalParties:      partyRow.TotalParties,
		TotalTransactions: txRow.TotalTransactions,
		TotalCredit:       txRow.TotalCredit,
		TotalDebit:        txRow.TotalDebit,
		TotalBalance:      partyRow.TotalBalance,
		NetBalance:        txRow.TotalCredit.Sub(txRow.TotalDebit),
	}, nil
}

func (r *reportRepo) TotalsSummary(ctx context.Context) (*dto.TotalsSummary, error) {
	var row struct {
		TotalReceivable decimal.Decimal
		TotalPayable    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Party{}).
		Select(`COALESCE(SUM(CASE WHEN total_balance > 0 THEN total_balance ELSE 0 END), 0) AS total_receivable,
			COALESCE(SUM(CASE WHEN total_balance < 0 THEN -total_balance ELSE 0 END), 0) AS total_payable`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &dto.TotalsSummary{
		TotalReceivable: row.TotalReceivable,
		TotalPayable:    row.TotalPayable,
		NetBalance:      row.TotalReceivable.Sub(row.TotalPayable),
	}, nil
}

func (r *reportRepo) DetailedTotals(ctx context.Context, filterKind string) ([]dto.PartyTotal, error) {
	q := r.db.WithContext(ctx).Model(&model.Party{}).
		Select(`parties.id AS party_id, parties.name, parties.kind,
			CASE WHEN parties.total_balance > 0 THEN parties.total_balance ELSE 0 END AS receivable,
			CASE WHEN parties.total_balance < 0 THEN -parties.total_balance ELSE 0 END AS payable,
			parties.total_balance AS net,
			COUNT(transactions.id) AS transaction_count`).
		Joins("LEFT JOIN transactions ON transactions.party_id = parties.id").
		Group("parties.id, parties.name, parties.kind, parties.total_balance").
		Order("parties.name ASC")

	switch filterKind {
	case "receivable":
		q = q.Having("parties.total_balance > 0")
	case "payable":
		q = q.Having("parties.total_balance < 0")
	}

	var rows []dto.PartyTotal
	err := q.Find(&rows).Error
	return rows, err
}

// TotalsByDateRange pulls the raw rows and buckets them in Go. SQLite's DATE()
// would take the day after converting to UTC, shifting early-morning entries
// onto the previous calendar day for any non-UTC locale; computing the day from
// the instant in from's timezone keeps local-day semantics.
func (r *reportRepo) TotalsByDateRange(ctx context.Context, from, until time.Time) ([]dto.DailyTotal, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).
		Select("kind", "amount", "created_at").
		Where("datetime(created_at) >= datetime(?) AND datetime(created_at) < datetime(?)", from, until).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	loc := from.Location()
	buckets := make(map[string]*dto.DailyTotal)
	for i := range txs {
		day := txs[i].CreatedAt.In(loc).Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &dto.DailyTotal{Day: day}
			buckets[day] = b
		}
		if txs[i].Kind == model.TxCredit {
			b.Credit = b.Credit.Add(txs[i].Amount)
		} else {
			b.Debit = b.Debit.Add(txs[i].Amount)
		}
		b.TxCount++
	}

	rows := make([]dto.DailyTotal, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, *b)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })
	return rows, nil
}

func (r *reportRepo) TopParties(ctx context.Context, n int) ([]model.Party, error) {
	var parties []model.Party
	q := r.db.WithContext(ctx).Order("ABS(total_balance) DESC")
	if n > 0 {
		q = q.Limit(n)
	}
	err := q.Find(&parties).Error
	return parties, err
}

func (r *reportRepo) PartyTotalsSince(ctx context.Context, partyID uuid.UUID, since *time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	var row struct {
		TotalCredit decimal.Decimal
		TotalDebit  decimal.Decimal
		TxCount     int64
	}
	q := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN kind = 'credit' THEN amount ELSE 0 END), 0) AS total_credit,
			COALESCE(SUM(CASE WHEN kind = 'debit' THEN amount ELSE 0 END), 0) AS total_debit,
			COUNT(*) AS tx_count`).
		Where("party_id = ?", partyID)
	if since != nil {
		q = q.Where("datetime(created_at) >= datetime(?)", *since)
	}
	if err := q.Scan(&row).Error; err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	return row.TotalCredit, row.TotalDebit, row.TxCount, nil
}
