package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
)

// Relative periods accepted by PartyReport.
const (
	PeriodAll   = "all"
	PeriodMonth = "month"
	PeriodWeek  = "week"
)

// ReportService derives every dashboard figure fresh from the stores. All
// methods are read-only and fail closed: an error on any step fails the whole
// report rather than returning a partially filled one.
type ReportService interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStats, error)
	TotalsSummary(ctx context.Context) (*dto.TotalsSummary, error)
	DetailedTotals(ctx context.Context, filterKind string) ([]dto.PartyTotal, error)
	TotalsByDateRange(ctx context.Context, start, end string) ([]dto.DailyTotal, error)
	TopParties(ctx context.Context, n int) ([]dto.PartyResponse, error)
	PartyReport(ctx context.Context, partyID uuid.UUID, period string) (*dto.PartyReport, error)
}

type reportService struct {
	repo      repository.ReportRepository
	partyRepo repository.PartyRepository
	txRepo    repository.TransactionRepository
	now       func() time.Time
	loc       *time.Location
}

func NewReportService(repo repository.ReportRepository, partyRepo repository.PartyRepository, txRepo repository.TransactionRepository) ReportService {
	return &reportService{repo: repo, partyRepo: partyRepo, txRepo: txRepo, now: time.Now, loc: time.Local}
}

func (s *reportService) DashboardStats(ctx context.Context) (*dto.DashboardStats, error) {
	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *reportService) TotalsSummary(ctx context.Context) (*dto.TotalsSummary, error) {
	sum, err := s.repo.TotalsSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals summary: %w", err)
	}
	return sum, nil
}

func (s *reportService) DetailedTotals(ctx context.Context, filterKind string) ([]dto.PartyTotal, error) {
	switch filterKind {
	case "", "receivable", "payable":
	default:
		return nil, invalid("kind", "must be receivable or payable")
	}
	rows, err := s.repo.DetailedTotals(ctx, filterKind)
	if err != nil {
		return nil, fmt.Errorf("detailed totals: %w", err)
	}
	return rows, nil
}

func (s *reportService) TotalsByDateRange(ctx context.Context, start, end string) ([]dto.DailyTotal, error) {
	from, err := localDayStart(start, s.loc)
	if err != nil {
		return nil, invalid("start", "must be YYYY-MM-DD")
	}
	lastDay, err := localDayStart(end, s.loc)
	if err != nil {
		return nil, invalid("end", "must be YYYY-MM-DD")
	}
	rows, err := s.repo.TotalsByDateRange(ctx, from, lastDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("totals by date range: %w", err)
	}
	return rows, nil
}

func (s *reportService) TopParties(ctx context.Context, n int) ([]dto.PartyResponse, error) {
	parties, err := s.repo.TopParties(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("top parties: %w", err)
	}
	out := make([]dto.PartyResponse, 0, len(parties))
	for i := range parties {
		out = append(out, toPartyResponse(&parties[i]))
	}
	return out, nil
}

func (s *reportService) PartyReport(ctx context.Context, partyID uuid.UUID, period string) (*dto.PartyReport, error) {
	since, err := s.periodStart(period)
	if err != nil {
		return nil, err
	}

	party, err := s.partyRepo.FindByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("find party: %w", err)
	}
	if party == nil {
		return nil, notFound("party", partyID.String())
	}

	credit, debit, count, err := s.repo.PartyTotalsSince(ctx, partyID, since)
	if err != nil {
		return nil, fmt.Errorf("party totals: %w", err)
	}

	// Same boundary instant for the totals and the listing, so period edges
	// cannot disagree between the two.
	query := repository.TransactionQuery{PartyID: partyID.String(), Start: since}
	rows, _, err := s.txRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("party transactions: %w", err)
	}

	return &dto.PartyReport{
		PartyID:          partyID.String(),
		Name:             party.Name,
		Period:           period,
		TotalCredit:      credit,
		TotalDebit:       debit,
		Balance:          credit.Sub(debit),
		TransactionCount: count,
		Transactions:     rowsToResponses(rows),
	}, nil
}

// periodStart maps a relative period to its inclusive starting instant,
// truncated to local midnight. nil means all time.
func (s *reportService) periodStart(period string) (*time.Time, error) {
	now := s.now().In(s.loc)
	var from time.Time
	switch period {
	case PeriodAll, "":
		return nil, nil
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	default:
		return nil, invalid("period", "must be all, month or week")
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, s.loc)
	return &start, nil
}
