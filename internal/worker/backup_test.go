package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
)

type fakeExports struct {
	backups     int
	pruneCalls  int
	lastPruned  time.Duration
	pruneResult int
}

func (f *fakeExports) Snapshot(context.Context) (*dto.Snapshot, error) { return &dto.Snapshot{}, nil }

func (f *fakeExports) WriteBackup(context.Context, string) (string, error) {
	f.backups++
	return "backup_test.json", nil
}

func (f *fakeExports) ExportXLSX(context.Context) (*excelize.File, error) {
	return excelize.NewFile(), nil
}

func (f *fakeExports) PruneBackups(_ context.Context, _ string, olderThan time.Duration) (int, error) {
	f.pruneCalls++
	f.lastPruned = olderThan
	return f.pruneResult, nil
}

func (f *fakeExports) PartyStatementPDF(context.Context, uuid.UUID, string) (string, error) {
	return "", nil
}

type fakeAdmin struct {
	enabled   bool
	frequency string
	retention int
}

func (f *fakeAdmin) ValidateIntegrity(context.Context) (*dto.IntegrityReport, error) {
	return &dto.IntegrityReport{Consistent: true}, nil
}

func (f *fakeAdmin) ResetToFresh(context.Context) error { return nil }

func (f *fakeAdmin) GetProfile(context.Context) (*dto.ProfileResponse, error) {
	return &dto.ProfileResponse{BackupEnabled: f.enabled}, nil
}

func (f *fakeAdmin) UpdateProfile(context.Context, dto.ProfileRequest) (*dto.ProfileResponse, error) {
	return &dto.ProfileResponse{}, nil
}

func (f *fakeAdmin) GetSettings(context.Context) (*dto.SettingsResponse, error) {
	return &dto.SettingsResponse{BackupFrequency: f.frequency, RetentionDays: f.retention}, nil
}

func (f *fakeAdmin) UpdateSettings(context.Context, dto.SettingsRequest) (*dto.SettingsResponse, error) {
	return &dto.SettingsResponse{}, nil
}

func TestRunSkipsWhenBackupDisabled(t *testing.T) {
	exports := &fakeExports{}
	s := &backupScheduler{exports: exports, admin: &fakeAdmin{enabled: false}, dir: t.TempDir()}

	s.run(context.Background(), time.Now())

	assert.Zero(t, exports.backups)
	assert.Zero(t, exports.pruneCalls)
}

func TestRunHonorsStoredFrequency(t *testing.T) {
	exports := &fakeExports{}
	admin := &fakeAdmin{enabled: true, frequency: "weekly"}
	s := &backupScheduler{exports: exports, admin: admin, dir: t.TempDir()}
	ctx := context.Background()

	start := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	s.run(ctx, start)
	require.Equal(t, 1, exports.backups, "first eligible pass backs up")

	// two days in, a weekly frequency is not due yet
	s.run(ctx, start.Add(2*24*time.Hour))
	assert.Equal(t, 1, exports.backups)

	// eight days in, it is
	s.run(ctx, start.Add(8*24*time.Hour))
	assert.Equal(t, 2, exports.backups)

	// flipping the stored frequency takes effect on the next pass
	admin.frequency = "daily"
	s.run(ctx, start.Add(9*24*time.Hour+time.Hour))
	assert.Equal(t, 3, exports.backups)
}

func TestRunPrunesPerRetentionDays(t *testing.T) {
	exports := &fakeExports{pruneResult: 2}
	s := &backupScheduler{
		exports: exports,
		admin:   &fakeAdmin{enabled: true, frequency: "daily", retention: 30},
		dir:     t.TempDir(),
	}

	s.run(context.Background(), time.Now())

	require.Equal(t, 1, exports.pruneCalls)
	assert.Equal(t, 30*24*time.Hour, exports.lastPruned)
}

func TestRunSkipsPruneWithoutRetention(t *testing.T) {
	exports := &fakeExports{}
	s := &backupScheduler{
		exports: exports,
		admin:   &fakeAdmin{enabled: true, frequency: "daily", retention: 0},
		dir:     t.TempDir(),
	}

	s.run(context.Background(), time.Now())

	assert.Equal(t, 1, exports.backups)
	assert.Zero(t, exports.pruneCalls)
}

func TestFrequencyPeriodMapping(t *testing.T) {
	assert.Equal(t, periodDaily, frequencyPeriod("daily"))
	assert.Equal(t, periodWeekly, frequencyPeriod("weekly"))
	assert.Equal(t, periodMonthly, frequencyPeriod("monthly"))
	assert.Equal(t, periodDaily, frequencyPeriod("whenever"), "unknown values fall back to daily")
}
