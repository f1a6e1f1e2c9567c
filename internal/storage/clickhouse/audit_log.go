package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage"
)

// AuditLog implements storage.AuditLog on ClickHouse. Rows are
// insert-only; the table is a MergeTree ordered by computed_at.
type AuditLog struct {
	conn *Conn
}

// NewAuditLog creates a ClickHouse-backed audit log.
func NewAuditLog(conn *Conn) *AuditLog {
	return &AuditLog{conn: conn}
}

// Compile-time interface check.
var _ storage.AuditLog = (*AuditLog)(nil)

// Record appends one classification audit record.
func (l *AuditLog) Record(ctx context.Context, rec *domain.AuditRecord) error {
	if rec == nil {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO classification_log (
			wallet, token, exit_type, confidence,
			winning_program_id, winning_score, pages_scanned,
			duration_ms, computed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := l.conn.Exec(ctx, query,
		rec.Wallet,
		rec.Token,
		rec.ExitType,
		string(rec.Confidence),
		rec.WinningProgramID,
		int32(rec.WinningScore),
		int32(rec.PagesScanned),
		rec.DurationMs,
		time.Unix(rec.ComputedAt, 0).UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert classification log: %w", err)
	}
	return nil
}

// CountByExitType returns how many classifications landed on each exit
// type, for offline analysis.
func (l *AuditLog) CountByExitType(ctx context.Context) (map[string]uint64, error) {
	query := `SELECT exit_type, count() FROM classification_log GROUP BY exit_type`

	rows, err := l.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query classification counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]uint64)
	for rows.Next() {
		var (
			exitType string
			n        uint64
		)
		if err := rows.Scan(&exitType, &n); err != nil {
			return nil, fmt.Errorf("scan classification count: %w", err)
		}
		counts[exitType] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classification counts: %w", err)
	}

	return counts, nil
}
