package domain

import (
	"context"
	"time"
)

type ScriptInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// QueryResult is a generic result set for a read-only statement: every value
// rendered as text, NULL as the empty string.
type QueryResult struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	RowCount    int        `json:"row_count"`
	ColumnCount int        `json:"column_count"`
	ElapsedMS   int64      `json:"elapsed_ms"`
}

// RunStats summarizes the latency distribution of a script's executions.
type RunStats struct {
	Script string `json:"script"`
	NumOps int64  `json:"num_ops"`
	P50    string `json:"p50"`
	P95    string `json:"p95"`
	P99    string `json:"p99"`
	P100   string `json:"p100"`
}

type ScriptStore interface {
	ListScripts() ([]ScriptInfo, error)
	ReadScript(name string) (string, error)
}

type QueryExecutor interface {
	ExecuteQuery(ctx context.Context, query string) (*QueryResult, error)
}
