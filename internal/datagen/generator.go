package datagen

import (
	"github.com/pgEdge/pgedge-textilegen/internal/logging"
)

// BatchInsertConfig configures batch insert behavior.
type BatchInsertConfig struct {
	// BatchSize is the default number of sales rows per commit.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        3000,
		ProgressInterval: 30000,
	}
}

// ProgressReporter tracks and reports data generation progress.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
// A totalRows of zero means the total is unknown; progress is then logged
// without a percentage.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	if interval <= 0 {
		interval = DefaultBatchConfig().ProgressInterval
	}
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
// It reports whether a progress line was logged.
func (p *ProgressReporter) Update(rowsInserted int64) bool {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval <= oldRow/p.progressInterval {
		return false
	}

	event := logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow)
	if p.totalRows > 0 {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		event = event.Int64("total", p.totalRows).Float64("percent", pct)
	}
	event.Msg("Generating data")
	return true
}

// Rows returns the number of rows reported so far.
func (p *ProgressReporter) Rows() int64 {
	return p.currentRow
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}
