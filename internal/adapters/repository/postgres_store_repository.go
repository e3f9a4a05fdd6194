package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.StoreRepository = (*PostgresStoreRepository)(nil)

const storesSchema = `
CREATE TABLE IF NOT EXISTS stores (
    id             TEXT PRIMARY KEY,
    merchant_id    TEXT NOT NULL,
    marketplace_id TEXT NOT NULL,
    name           VARCHAR(100) NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stores_merchant_id ON stores (merchant_id);`

const storeColumns = `id, merchant_id, marketplace_id, name, created_at, updated_at`

type PostgresStoreRepository struct {
	db *sqlx.DB
}

func NewPostgresStoreRepository(db *sqlx.DB) *PostgresStoreRepository {
	return &PostgresStoreRepository{db: db}
}

// EnsureSchema creates the stores table when missing.
func (r *PostgresStoreRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, storesSchema); err != nil {
		return fmt.Errorf("failed to create stores schema: %w", err)
	}
	return nil
}

func (r *PostgresStoreRepository) Create(ctx context.Context, s *domain.Store) error {
	query := `
        INSERT INTO stores (` + storeColumns + `)
        VALUES (:id, :merchant_id, :marketplace_id, :name, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		return fmt.Errorf("failed to insert store: %w", err)
	}
	return nil
}

func (r *PostgresStoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	var s domain.Store
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &s, nil
}

func (r *PostgresStoreRepository) ListByMerchantID(ctx context.Context, merchantID string) ([]*domain.Store, error) {
	query := `
        SELECT ` + storeColumns + ` FROM stores
        WHERE merchant_id = $1
        ORDER BY created_at ASC, id ASC`

	stores := []*domain.Store{}
	if err := r.db.SelectContext(ctx, &stores, query, merchantID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return stores, nil
}

func (r *PostgresStoreRepository) ListByIDs(ctx context.Context, merchantID string, ids []string) ([]*domain.Store, error) {
	stores := []*domain.Store{}
	if len(ids) == 0 {
		return stores, nil
	}

	query := `
        SELECT ` + storeColumns + ` FROM stores
        WHERE merchant_id = $1 AND id = ANY($2)
        ORDER BY created_at ASC, id ASC`

	if err := r.db.SelectContext(ctx, &stores, query, merchantID, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return stores, nil
}

func (r *PostgresStoreRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}
