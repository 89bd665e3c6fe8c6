package infra

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shakil5281/TallyKhata-sub000/internal/model"
)

// schemaModels lists every table in dependency order (parents first).
var schemaModels = []struct {
	table string
	value interface{}
}{
	{"parties", &model.Party{}},
	{"transactions", &model.Transaction{}},
	{"user_profile", &model.UserProfile{}},
	{"app_settings", &model.AppSettings{}},
}

// NewDatabase opens (creating if needed) the embedded SQLite file, ensures the
// schema and applies the idempotent column migrations. The returned handle is
// shared for the process lifetime.
//
// Migration failures fall back to destructive recreation of the affected
// table rather than blocking startup; that path is logged distinctly (see
// recreateTable) so operators can tell it apart from a normal migration.
func NewDatabase(path string, logSQL bool) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if logSQL {
		gormLogger = logger.Default
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// Single-process embedded store: one writer, a few readers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite reliability tuning
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA foreign_keys = ON;")

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates or updates every table. Idempotent — safe on every
// startup. A failed AutoMigrate on one table triggers the destructive
// recreation fallback for that table only.
func EnsureSchema(db *gorm.DB) error {
	for _, m := range schemaModels {
		if err := db.AutoMigrate(m.value); err != nil {
			if rerr := recreateTable(db, m.value, m.table, err); rerr != nil {
				return rerr
			}
		}
	}
	return nil
}

// Migrate applies column-level patches AutoMigrate cannot express: backfilling
// the canonical transactions.created_at from the legacy "date" column left by
// historical installs, then filling any remaining gaps with the current time.
func Migrate(db *gorm.DB) error {
	if err := migrateLegacyTimestamps(db); err != nil {
		if rerr := recreateTable(db, &model.Transaction{}, "transactions", err); rerr != nil {
			return rerr
		}
	}
	return nil
}

func migrateLegacyTimestamps(db *gorm.DB) error {
	m := db.Migrator()
	if !m.HasTable(&model.Transaction{}) || !m.HasColumn(&model.Transaction{}, "date") {
		return nil
	}

	log.Info().Msg("migrating legacy transactions.date into created_at")
	if err := db.Exec(
		`UPDATE transactions SET created_at = date WHERE created_at IS NULL AND date IS NOT NULL`,
	).Error; err != nil {
		return fmt.Errorf("backfill created_at from date: %w", err)
	}
	if err := db.Exec(
		`UPDATE transactions SET created_at = ? WHERE created_at IS NULL`, time.Now(),
	).Error; err != nil {
		return fmt.Errorf("fill created_at gaps: %w", err)
	}
	if err := m.DropColumn(&model.Transaction{}, "date"); err != nil {
		return fmt.Errorf("drop legacy date column: %w", err)
	}
	return nil
}

// recreateTable is the data-loss escape hatch for unrecoverable schema drift:
// drop the table and recreate it with the current expected shape. Logged at
// error level with a distinct marker so it is never mistaken for a
// non-destructive migration.
func recreateTable(db *gorm.DB, value interface{}, table string, cause error) error {
	log.Error().Err(cause).Str("table", table).
		Msg("DESTRUCTIVE schema recovery: dropping and recreating table")
	if err := db.Migrator().DropTable(value); err != nil {
		return fmt.Errorf("recovery drop %s: %w", table, err)
	}
	if err := db.AutoMigrate(value); err != nil {
		return fmt.Errorf("recovery recreate %s: %w", table, err)
	}
	return nil
}

// DropAll removes every table. Children first so foreign keys never dangle
// mid-way. Used by the reset path.
func DropAll(db *gorm.DB) error {
	for i := len(schemaModels) - 1; i >= 0; i-- {
		m := schemaModels[i]
		if err := db.Migrator().DropTable(m.value); err != nil {
			return fmt.Errorf("drop %s: %w", m.table, err)
		}
	}
	return nil
}
