package notifiedstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DIMO-Network/messenger-maintenance-bot/internal/db/migrations"
)

const table = migrations.SchemaName + ".notified_senders"

// PostgresStore keeps the table in postgres so it survives restarts and is
// shared between replicas.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open connection. The schema must be migrated.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Has reports whether senderID has a row.
func (p *PostgresStore) Has(ctx context.Context, senderID string) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE sender_id = $1)`, senderID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up sender: %w", err)
	}
	return exists, nil
}

// MarkNotified inserts with ON CONFLICT DO NOTHING; one affected row means this
// call created the record.
func (p *PostgresStore) MarkNotified(ctx context.Context, senderID string) (bool, error) {
	res, err := p.db.ExecContext(ctx,
		`INSERT INTO `+table+` (sender_id) VALUES ($1) ON CONFLICT (sender_id) DO NOTHING`, senderID)
	if err != nil {
		return false, fmt.Errorf("failed to mark sender notified: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n == 1, nil
}

// Clear deletes every row and returns how many were deleted.
func (p *PostgresStore) Clear(ctx context.Context) (int, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM `+table)
	if err != nil {
		return 0, fmt.Errorf("failed to clear notified senders: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

// Count returns the number of rows.
func (p *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notified senders: %w", err)
	}
	return n, nil
}

// IDs lists every stored sender.
func (p *PostgresStore) IDs(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT sender_id FROM `+table+` ORDER BY notified_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notified senders: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan sender id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notified senders: %w", err)
	}
	return ids, nil
}
