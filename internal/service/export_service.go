package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/shakil5281/TallyKhata-sub000/internal/dto"
	"github.com/shakil5281/TallyKhata-sub000/internal/infra"
	"github.com/shakil5281/TallyKhata-sub000/internal/repository"
)

// ExportService produces read-only snapshots of the whole ledger for the
// external backup/share collaborators. The snapshot is internally consistent:
// party balances and transactions are captured from the same store state.
type ExportService interface {
	Snapshot(ctx context.Context) (*dto.Snapshot, error)
	// WriteBackup serializes a snapshot as JSON into dir and returns the path.
	WriteBackup(ctx context.Context, dir string) (string, error)
	// ExportXLSX renders the snapshot as a two-sheet workbook.
	ExportXLSX(ctx context.Context) (*excelize.File, error)
	// PruneBackups removes backup files in dir older than olderThan and
	// returns how many were deleted.
	PruneBackups(ctx context.Context, dir string, olderThan time.Duration) (int, error)
	// PartyStatementPDF writes a printable statement for one party.
	PartyStatementPDF(ctx context.Context, partyID uuid.UUID, dir string) (string, error)
}

type exportService struct {
	partyRepo repository.PartyRepository
	txRepo    repository.TransactionRepository
	admin     AdminService
	parties   PartyService
}

func NewExportService(partyRepo repository.PartyRepository, txRepo repository.TransactionRepository, admin AdminService, parties PartyService) ExportService {
	return &exportService{partyRepo: partyRepo, txRepo: txRepo, admin: admin, parties: parties}
}

func (s *exportService) Snapshot(ctx context.Context) (*dto.Snapshot, error) {
	profile, err := s.admin.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.admin.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	parties, err := s.parties.ListParties(ctx)
	if err != nil {
		return nil, err
	}
	rows, _, err := s.txRepo.List(ctx, repository.TransactionQuery{})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return &dto.Snapshot{
		ExportedAt:   time.Now().Format(time.RFC3339),
		Profile:      *profile,
		Settings:     *settings,
		Parties:      parties,
		Transactions: rowsToResponses(rows),
	}, nil
}

func (s *exportService) WriteBackup(ctx context.Context, dir string) (string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("backup_%s.json", time.Now().Format("20060102T150405")))
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return path, nil
}

func (s *exportService) PruneBackups(ctx context.Context, dir string, olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read backup dir: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	pruned := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "backup_") || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return pruned, fmt.Errorf("remove %s: %w", e.Name(), err)
		}
		pruned++
	}
	return pruned, nil
}

func (s *exportService) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const partySheet = "Parties"
	f.SetSheetName("Sheet1", partySheet)

	partyHeaders := []string{"ID", "Name", "Phone", "Kind", "Balance"}
	for i, h := range partyHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(partySheet, cell, h)
	}
	for r, p := range snap.Parties {
		phone := ""
		if p.Phone != nil {
			phone = *p.Phone
		}
		values := []interface{}{p.ID, p.Name, phone, p.Kind, p.TotalBalance.StringFixed(2)}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(partySheet, cell, v)
		}
	}

	const txSheet = "Transactions"
	if _, err := f.NewSheet(txSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	txHeaders := []string{"ID", "Party", "Kind", "Amount", "Note", "Date"}
	for i, h := range txHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(txSheet, cell, h)
	}
	for r, t := range snap.Transactions {
		note := ""
		if t.Note != nil {
			note = *t.Note
		}
		values := []interface{}{t.ID, t.PartyName, t.Kind, t.Amount.StringFixed(2), note, t.CreatedAt}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(txSheet, cell, v)
		}
	}

	return f, nil
}

func (s *exportService) PartyStatementPDF(ctx context.Context, partyID uuid.UUID, dir string) (string, error) {
	party, err := s.partyRepo.FindByID(ctx, partyID)
	if err != nil {
		return "", fmt.Errorf("find party: %w", err)
	}
	if party == nil {
		return "", notFound("party", partyID.String())
	}

	rows, err := s.txRepo.ListForParty(ctx, partyID, 0, 0)
	if err != nil {
		return "", fmt.Errorf("list transactions: %w", err)
	}
	lines := make([]infra.StatementLine, 0, len(rows))
	for i := range rows {
		note := ""
		if rows[i].Note != nil {
			note = *rows[i].Note
		}
		lines = append(lines, infra.StatementLine{
			When:   rows[i].CreatedAt,
			Kind:   rows[i].Kind,
			Amount: rows[i].Amount,
			Note:   note,
		})
	}

	profile, err := s.admin.GetProfile(ctx)
	if err != nil {
		return "", err
	}
	business := profile.Name
	if profile.BusinessName != nil && *profile.BusinessName != "" {
		business = *profile.BusinessName
	}
	return infra.GenerateStatementPDF(business, party, lines, dir)
}
