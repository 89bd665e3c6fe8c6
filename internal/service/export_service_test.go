package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBackupFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestPruneBackupsRemovesOnlyExpiredBackups(t *testing.T) {
	dir := t.TempDir()
	old := writeBackupFile(t, dir, "backup_20260701_120000.json", 40*24*time.Hour)
	fresh := writeBackupFile(t, dir, "backup_20260829_120000.json", 2*24*time.Hour)
	unrelated := writeBackupFile(t, dir, "notes.json", 40*24*time.Hour)

	svc := &exportService{}
	pruned, err := svc.PruneBackups(context.Background(), dir, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh, "recent backups survive the retention sweep")
	assert.FileExists(t, unrelated, "files outside the backup naming scheme are never touched")
}

func TestPruneBackupsMissingDirIsNoop(t *testing.T) {
	svc := &exportService{}
	pruned, err := svc.PruneBackups(context.Background(), filepath.Join(t.TempDir(), "absent"), time.Hour)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
