package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

type stubReportRepo struct {
	stats     *dto.DashboardStats
	summary   *dto.TotalsSummary
	lastSince *time.Time
	credit    decimal.Decimal
	debit     decimal.Decimal
	count     int64
}

func (r *stubReportRepo) DashboardStats(context.Context) (*dto.DashboardStats, error) {
	return r.stats, nil
}

func (r *stubReportRepo) TotalsSummary(context.Context) (*dto.TotalsSummary, error) {
	return r.summary, nil
}

func (r *stubReportRepo) DetailedTotals(context.Context, string) ([]dto.PartyTotal, error) {
	return nil, nil
}

func (r *stubReportRepo) TotalsByDateRange(context.Context, time.Time, time.Time) ([]dto.DailyTotal, error) {
	return nil, nil
}

func (r *stubReportRepo) TopParties(context.Context, int) ([]model.Party, error) {
	return nil, nil
}

func (r *stubReportRepo) PartyTotalsSince(_ context.Context, _ uuid.UUID, since *time.Time) (decimal.Decimal, decimal.Decimal, int64, error) {
	r.lastSince = since
	return r.credit, r.debit, r.count, nil
}

func newReportFixture(now time.Time) (*memStore, *stubReportRepo, *reportService) {
	s := newMemStore()
	repo := &stubReportRepo{}
	svc := NewReportService(repo, &memPartyRepo{s: s}, &memTxRepo{s: s}).(*reportService)
	svc.now = func() time.Time { return now }
	return s, repo, svc
}

func TestPartyReportPeriods(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 30, 0, 0, time.Local)
	s, repo, svc := newReportFixture(now)
	p := s.addParty("Periodic")
	repo.credit = decimal.NewFromInt(130)
	repo.debit = decimal.NewFromInt(30)
	repo.count = 4

	report, err := svc.PartyReport(context.Background(), p.ID, PeriodWeek)
	require.NoError(t, err)
	require.NotNil(t, repo.lastSince)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.Local), *repo.lastSince,
		"week starts at local midnight seven days back")
	assert.True(t, report.Balance.Equal(decimal.NewFromInt(100)),
		"balance is computed fresh from period totals")
	assert.Equal(t, int64(4), report.TransactionCount)

	_, err = svc.PartyReport(context.Background(), p.ID, PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 31, 0, 0, 0, 0, time.Local), *repo.lastSince)

	_, err = svc.PartyReport(context.Background(), p.ID, PeriodAll)
	require.NoError(t, err)
	assert.Nil(t, repo.lastSince)
}

func TestPartyReportRejectsUnknownPeriodAndParty(t *testing.T) {
	now := time.Now()
	s, _, svc := newReportFixture(now)
	p := s.addParty("X")

	_, err := svc.PartyReport(context.Background(), p.ID, "quarter")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "period", ve.Field)

	_, err = svc.PartyReport(context.Background(), uuid.New(), PeriodAll)
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestDetailedTotalsKindValidation(t *testing.T) {
	_, _, svc := newReportFixture(time.Now())

	for _, kind := range []string{"", "receivable", "payable"} {
		_, err := svc.DetailedTotals(context.Background(), kind)
		require.NoError(t, err, "kind %q", kind)
	}
	_, err := svc.DetailedTotals(context.Background(), "net")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestTotalsByDateRangeValidatesDates(t *testing.T) {
	_, _, svc := newReportFixture(time.Now())

	_, err := svc.TotalsByDateRange(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	_, err = svc.TotalsByDateRange(context.Background(), "01/08/2026", "2026-08-31")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start", ve.Field)
}
