package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shakil5281/TallyKhata-sub000/internal/service"
)

// Check cadences per stored backup frequency. The scheduler wakes on every
// checkEvery tick but only writes when the stored frequency's period has
// elapsed since the last backup.
const (
	periodDaily   = 24 * time.Hour
	periodWeekly  = 7 * 24 * time.Hour
	periodMonthly = 30 * 24 * time.Hour
)

type backupScheduler struct {
	exports service.ExportService
	admin   service.AdminService
	dir     string
	last    time.Time
}

// StartBackupScheduler runs periodic JSON snapshots into dir until ctx is
// cancelled. Each tick re-reads the profile and settings, so toggling
// backup_enabled or changing backup_frequency takes effect without a restart.
// checkEvery <= 0 disables the scheduler.
func StartBackupScheduler(ctx context.Context, exports service.ExportService, admin service.AdminService, dir string, checkEvery time.Duration) {
	if checkEvery <= 0 {
		log.Info().Msg("backup scheduler disabled")
		return
	}
	s := &backupScheduler{exports: exports, admin: admin, dir: dir}

	go func() {
		ticker := time.NewTicker(checkEvery)
		defer ticker.Stop()

		log.Info().Dur("check_every", checkEvery).Str("dir", dir).Msg("backup scheduler started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("backup scheduler stopped")
				return
			case now := <-ticker.C:
				s.run(ctx, now)
			}
		}
	}()
}

// run performs one scheduler pass: back up when enabled and due, then apply
// the retention policy.
func (s *backupScheduler) run(ctx context.Context, now time.Time) {
	profile, err := s.admin.GetProfile(ctx)
	if err != nil {
		log.Error().Err(err).Msg("backup: read profile")
		return
	}
	if !profile.BackupEnabled {
		return
	}
	settings, err := s.admin.GetSettings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("backup: read settings")
		return
	}

	if !s.last.IsZero() && now.Sub(s.last) < frequencyPeriod(settings.BackupFrequency) {
		return
	}

	path, err := s.exports.WriteBackup(ctx, s.dir)
	if err != nil {
		log.Error().Err(err).Msg("backup failed")
		return
	}
	s.last = now
	log.Info().Str("path", path).Str("frequency", settings.BackupFrequency).Msg("backup written")

	if settings.RetentionDays > 0 {
		retention := time.Duration(settings.RetentionDays) * 24 * time.Hour
		pruned, err := s.exports.PruneBackups(ctx, s.dir, retention)
		if err != nil {
			log.Error().Err(err).Msg("backup: prune")
			return
		}
		if pruned > 0 {
			log.Info().Int("pruned", pruned).Int("retention_days", settings.RetentionDays).Msg("old backups removed")
		}
	}
}

func frequencyPeriod(freq string) time.Duration {
	switch freq {
	case "weekly":
		return periodWeekly
	case "monthly":
		return periodMonthly
	default:
		return periodDaily
	}
}
