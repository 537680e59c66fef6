// Package transfer copies every zoo table from one database into another,
// typically a local SQLite file into Postgres.
package transfer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zoo_management/pkg/models"
)

const batchSize = 200

type TableResult struct {
	Table    string
	Read     int
	Inserted int64
	Err      error
}

type Report struct {
	Tables []TableResult
}

// Failed reports whether any table could not be copied.
func (r Report) Failed() bool {
	for _, t := range r.Tables {
		if t.Err != nil {
			return true
		}
	}
	return false
}

// Copy reads each table from src and inserts the rows into dst, skipping
// rows whose key already exists there. A failing table is recorded in the
// report and the remaining tables are still copied. The returned error is
// only set when the context is cancelled.
func Copy(ctx context.Context, src, dst *gorm.DB, log *zap.Logger) (Report, error) {
	var report Report
	for _, model := range models.AllModels() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := copyTable(ctx, src, dst, model)
		report.Tables = append(report.Tables, result)

		if result.Err != nil {
			log.Error("Failed to copy table", zap.String("table", result.Table), zap.Error(result.Err))
			continue
		}
		log.Info("Copied table",
			zap.String("table", result.Table),
			zap.Int("read", result.Read),
			zap.Int64("inserted", result.Inserted),
		)
	}

	if dst.Dialector.Name() == "postgres" {
		if err := resetZooInfoSequence(ctx, dst); err != nil {
			log.Warn("Failed to reset zoo_info id sequence", zap.Error(err))
		}
	}
	return report, nil
}

func copyTable(ctx context.Context, src, dst *gorm.DB, model interface{}) TableResult {
	stmt := &gorm.Statement{DB: src}
	if err := stmt.Parse(model); err != nil {
		return TableResult{Table: fmt.Sprintf("%T", model), Err: err}
	}
	result := TableResult{Table: stmt.Schema.Table}

	var rows []map[string]interface{}
	if err := src.WithContext(ctx).Model(model).Find(&rows).Error; err != nil {
		result.Err = fmt.Errorf("read %s: %w", result.Table, err)
		return result
	}
	result.Read = len(rows)

	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		res := dst.WithContext(ctx).
			Table(result.Table).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(rows[start:end])
		if res.Error != nil {
			result.Err = fmt.Errorf("write %s: %w", result.Table, res.Error)
			return result
		}
		result.Inserted += res.RowsAffected
	}
	return result
}

// resetZooInfoSequence moves the serial past the copied ids so that later
// inserts do not collide with them.
func resetZooInfoSequence(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Exec(
		`SELECT setval(pg_get_serial_sequence('zoo_info', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM zoo_info`,
	).Error
}
