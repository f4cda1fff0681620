package repository

import "context"

// BackupRepository reads and writes whole tables as loosely typed rows
type BackupRepository interface {
	Dump(ctx context.Context, table string) ([]map[string]any, error)
	// Upsert inserts row or overwrites the row with the same id.
	Upsert(ctx context.Context, table string, row map[string]any) error
}
