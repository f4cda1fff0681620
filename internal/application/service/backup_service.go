package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"go.uber.org/zap"
)

// BackupTables are the tables that may be exported and restored, in
// restore order.
var BackupTables = []string{
	"categories",
	"units",
	"products",
	"variants",
	"suppliers",
	"bank_accounts",
	"employees",
	"payrolls",
	"subscriptions",
	"stock_adjustments",
	"stock_transfers",
	"sales",
	"sale_items",
}

// BackupDocument is the backup file layout
type BackupDocument struct {
	ExportedAt time.Time                   `json:"exportedAt"`
	Tables     map[string][]map[string]any `json:"tables"`
}

// RestoreResult counts restored and skipped rows
type RestoreResult struct {
	Restored int            `json:"restored"`
	Skipped  int            `json:"skipped"`
	Tables   map[string]int `json:"tables"`
}

// BackupService snapshots and restores management tables
type BackupService struct {
	backupRepo repository.BackupRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(backupRepo repository.BackupRepository, log *zap.Logger) *BackupService {
	return &BackupService{backupRepo: backupRepo, log: log, now: time.Now}
}

func allowedTable(name string) bool {
	for _, t := range BackupTables {
		if t == name {
			return true
		}
	}
	return false
}

// Export dumps the named tables, or every backup table when none are named
func (s *BackupService) Export(ctx context.Context, tables []string) (*BackupDocument, error) {
	if len(tables) == 0 {
		tables = BackupTables
	}
	for _, t := range tables {
		if !allowedTable(t) {
			return nil, apperror.NewBadRequestError("Table " + t + " cannot be backed up")
		}
	}

	doc := &BackupDocument{ExportedAt: s.now().UTC(), Tables: make(map[string][]map[string]any, len(tables))}
	for _, t := range tables {
		rows, err := s.backupRepo.Dump(ctx, t)
		if err != nil {
			return nil, err
		}
		doc.Tables[t] = rows
	}
	return doc, nil
}

// Restore upserts every row of data by primary key. Unknown tables and rows
// that fail are skipped. Malformed JSON restores nothing.
func (s *BackupService) Restore(ctx context.Context, data []byte) *RestoreResult {
	result := &RestoreResult{Tables: map[string]int{}}

	var doc BackupDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("ignoring malformed backup document", zap.Error(err))
		return result
	}

	for name, rows := range doc.Tables {
		if !allowedTable(name) {
			s.log.Warn("skipping unknown backup table", zap.String("table", name), zap.Int("rows", len(rows)))
			result.Skipped += len(rows)
		}
	}

	for _, table := range BackupTables {
		rows, ok := doc.Tables[table]
		if !ok {
			continue
		}
		for _, row := range rows {
			if _, hasID := row["id"]; !hasID {
				result.Skipped++
				continue
			}
			if err := s.backupRepo.Upsert(ctx, table, row); err != nil {
				s.log.Warn("skipping backup row", zap.String("table", table), zap.Any("id", row["id"]), zap.Error(err))
				result.Skipped++
				continue
			}
			result.Restored++
			result.Tables[table]++
		}
	}

	s.log.Info("backup restored", zap.Int("restored", result.Restored), zap.Int("skipped", result.Skipped))
	return result
}
