package postgres

import (
	"context"
	"errors"
	"fmt"

	"portfolio-service/internal/contextkeys"
	"portfolio-service/internal/core/domain"
	"portfolio-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const propertyColumns = `id, address, type, bedrooms, bathrooms, valuation, estate_agent, selling_agent, occupied`

// PostgresStorageAdapter реализует PropertyStorePort поверх пула pgx.
type PostgresStorageAdapter struct {
	pool  *pgxpool.Pool
	table string
}

func NewPostgresStorageAdapter(pool *pgxpool.Pool, table string) (*PostgresStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres pool cannot be nil")
	}
	if table == "" {
		table = "properties"
	}
	return &PostgresStorageAdapter{
		pool:  pool,
		table: pgx.Identifier{table}.Sanitize(),
	}, nil
}

func scanProperty(row pgx.CollectableRow) (domain.Property, error) {
	var (
		p        domain.Property
		propType *string
		occupied *string
	)
	err := row.Scan(&p.ID, &p.Address, &propType, &p.Bedrooms, &p.Bathrooms,
		&p.Valuation, &p.EstateAgent, &p.SellingAgent, &occupied)
	if propType != nil {
		p.Type = domain.PropertyType(*propType)
	}
	if occupied != nil {
		p.Occupied = domain.Occupancy(*occupied)
	}
	return p, err
}

func (a *PostgresStorageAdapter) queryRows(ctx context.Context, op, query string, args ...any) ([]domain.Property, error) {
	logger := contextkeys.ComponentLogger(ctx, "PostgresStorageAdapter", op)

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Query failed", err, nil)
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to %s properties: %w", op, describe(err))
	}
	result, err := pgx.CollectRows(rows, scanProperty)
	if err != nil {
		logger.Error("Failed to scan rows", err, nil)
		return nil, fmt.Errorf("PostgresStorageAdapter: failed to scan rows on %s: %w", op, describe(err))
	}
	logger.Debug("Query finished", port.Fields{"rows": len(result)})
	return result, nil
}

func (a *PostgresStorageAdapter) SelectAll(ctx context.Context) ([]domain.Property, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC`, propertyColumns, a.table)
	return a.queryRows(ctx, "select", query)
}

func (a *PostgresStorageAdapter) Insert(ctx context.Context, in domain.PropertyInput) ([]domain.Property, error) {
	query := fmt.Sprintf(`INSERT INTO %s (address, type, bedrooms, bathrooms, valuation, estate_agent, selling_agent, occupied)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, a.table, propertyColumns)
	return a.queryRows(ctx, "insert", query,
		in.Address, in.Type, in.Bedrooms, in.Bathrooms, in.Valuation, in.EstateAgent, in.SellingAgent, in.Occupied)
}

func (a *PostgresStorageAdapter) Update(ctx context.Context, id int64, in domain.PropertyInput) ([]domain.Property, error) {
	query := fmt.Sprintf(`UPDATE %s SET address = $2, type = $3, bedrooms = $4, bathrooms = $5,
		valuation = $6, estate_agent = $7, selling_agent = $8, occupied = $9
		WHERE id = $1
		RETURNING %s`, a.table, propertyColumns)
	return a.queryRows(ctx, "update", query,
		id, in.Address, in.Type, in.Bedrooms, in.Bathrooms, in.Valuation, in.EstateAgent, in.SellingAgent, in.Occupied)
}

// Delete не считает ошибкой отсутствие строки, как и удаление по фильтру в REST API.
func (a *PostgresStorageAdapter) Delete(ctx context.Context, id int64) error {
	logger := contextkeys.ComponentLogger(ctx, "PostgresStorageAdapter", "delete")

	tag, err := a.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, a.table), id)
	if err != nil {
		logger.Error("Delete failed", err, port.Fields{"property_id": id})
		return fmt.Errorf("PostgresStorageAdapter: failed to delete property %d: %w", id, describe(err))
	}
	logger.Debug("Delete finished", port.Fields{"property_id": id, "rows_affected": tag.RowsAffected()})
	return nil
}

// describe добавляет к ошибке сервера код SQLSTATE.
func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s (SQLSTATE %s): %w", pgErr.Message, pgErr.Code, err)
	}
	return err
}
