package postgres

import (
	"context"
	"fmt"
)

// EnsureSchema создает таблицу, если ее нет. Для размещенной базы схемой владеет сервер.
func (a *PostgresStorageAdapter) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id            BIGSERIAL PRIMARY KEY,
		address       TEXT NOT NULL,
		type          TEXT,
		bedrooms      INTEGER,
		bathrooms     DOUBLE PRECISION,
		valuation     TEXT,
		estate_agent  TEXT,
		selling_agent TEXT,
		occupied      TEXT DEFAULT 'No'
	)`, a.table)
	if _, err := a.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("PostgresStorageAdapter: failed to ensure schema: %w", err)
	}
	return nil
}
