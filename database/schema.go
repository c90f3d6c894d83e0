package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-aoi-backend/errs"
	"github.com/rpupo63/project-aoi-backend/models"
)

// SchemaReport compares the live projects table with the Go model.
type SchemaReport struct {
	Table    string
	Unmapped []string // in the table, not in the model
	Missing  []string // in the model, not in the table
}

// CheckSchema reads the projects table layout and reports drift. It never alters the
// schema; a table that is missing columns the model needs is returned as an error.
func (d Database) CheckSchema(ctx context.Context) (SchemaReport, error) {
	var project models.Project
	report := SchemaReport{Table: project.TableName()}

	dbColumns, err := d.tableColumns(ctx, report.Table)
	if err != nil {
		return report, err
	}

	modelColumns := project.Columns()
	report.Unmapped = findColumnMismatches(dbColumns, modelColumns)
	report.Missing = findColumnMismatches(modelColumns, dbColumns)

	for _, col := range report.Unmapped {
		log.Warn().Str("table", report.Table).Str("column", col).Msg("column not accounted for in model")
	}
	if len(report.Missing) > 0 {
		return report, errs.NewSchemaMismatchError(report.Table, report.Missing)
	}
	return report, nil
}

// tableColumns retrieves column names from a database table
func (d Database) tableColumns(ctx context.Context, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := d.db.WithContext(ctx).Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}
	if len(columns) == 0 {
		return nil, errs.NewSchemaMismatchError(tableName, []string{"(table does not exist)"})
	}
	return columns, nil
}

// findColumnMismatches returns the entries of have that are not in want
func findColumnMismatches(have, want []string) []string {
	wantSet := make(map[string]bool, len(want))
	for _, col := range want {
		wantSet[col] = true
	}

	var mismatches []string
	for _, col := range have {
		if !wantSet[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
