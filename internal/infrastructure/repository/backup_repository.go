package repository

import (
	"context"
	"sort"

	domainRepo "github.com/sangkips/retailhub-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type backupRepository struct {
	db *gorm.DB
}

// NewBackupRepository creates a repository that moves raw table rows.
// Callers are responsible for restricting table names.
func NewBackupRepository(db *gorm.DB) domainRepo.BackupRepository {
	return &backupRepository{db: db}
}

func (r *backupRepository) Dump(ctx context.Context, table string) ([]map[string]any, error) {
	rows := []map[string]any{}
	err := r.db.WithContext(ctx).Table(table).Find(&rows).Error
	return rows, err
}

func (r *backupRepository) Upsert(ctx context.Context, table string, row map[string]any) error {
	update := make([]string, 0, len(row))
	for col := range row {
		if col != "id" {
			update = append(update, col)
		}
	}
	sort.Strings(update)

	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
	if len(update) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(update)
	}
	return r.db.WithContext(ctx).Table(table).Clauses(conflict).Create(row).Error
}
