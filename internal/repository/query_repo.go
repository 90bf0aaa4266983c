package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AmrElsaadany/Jojo-Stock/internal/domain"
)

type postgresQueryRunner struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresQueryRunner(db *sql.DB, logger *logrus.Logger) domain.QueryExecutor {
	return &postgresQueryRunner{
		db:  db,
		log: logger,
	}
}

// ExecuteQuery runs a single read statement and renders the whole result set
// as text. Column types are not known up front, so every cell scans through
// sql.NullString and NULL comes back as "".
func (r *postgresQueryRunner) ExecuteQuery(ctx context.Context, query string) (*domain.QueryResult, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to execute query: %v", err)
		return nil, fmt.Errorf("could not execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		r.log.Errorf("Failed to read result columns: %v", err)
		return nil, fmt.Errorf("could not read result columns: %w", err)
	}

	result := &domain.QueryResult{
		Columns:     columns,
		Rows:        [][]string{},
		ColumnCount: len(columns),
	}

	values := make([]sql.NullString, len(columns))
	dests := make([]interface{}, len(columns))
	for i := range values {
		dests[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dests...); err != nil {
			r.log.Errorf("Failed to scan result row: %v", err)
			return nil, fmt.Errorf("error scanning result row: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during query result iteration: %v", err)
		return nil, fmt.Errorf("error iterating query results: %w", err)
	}

	result.RowCount = len(result.Rows)
	result.ElapsedMS = time.Since(start).Milliseconds()
	r.log.Infof("Query returned %d rows, %d columns in %dms", result.RowCount, result.ColumnCount, result.ElapsedMS)
	return result, nil
}
