// Package records provides the PostgreSQL-backed repository for
// GUID-keyed records.
package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/guidstore/internal/common"
	"github.com/dmitrijs2005/guidstore/internal/dbx"
	"github.com/dmitrijs2005/guidstore/internal/server/models"
)

// pgUniqueViolation is the PostgreSQL error code for a unique
// constraint violation.
const pgUniqueViolation = "23505"

// PostgresRepository implements record storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {

	query :=
		`INSERT INTO records (guid, "user", expire)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, rec.GUID, rec.User, rec.Expire)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) Get(ctx context.Context, guid string) (*models.Record, error) {
	return r.get(ctx, guid, false)
}

// GetForUpdate locks the row for the duration of the enclosing
// transaction. Calling it outside a transaction gives no extra
// guarantee beyond Get.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, guid string) (*models.Record, error) {
	return r.get(ctx, guid, true)
}

func (r *PostgresRepository) get(ctx context.Context, guid string, forUpdate bool) (*models.Record, error) {
	query :=
		`SELECT guid, "user", expire FROM records
		 WHERE guid = $1
		 `
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rec := &models.Record{}
	err := r.db.QueryRowContext(ctx, query, guid).Scan(&rec.GUID, &rec.User, &rec.Expire)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {

	query :=
		`UPDATE records SET "user" = $2, expire = $3
		 WHERE guid = $1
		 `

	res, err := r.db.ExecContext(ctx, query, rec.GUID, rec.User, rec.Expire)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return rec, nil
	case 0:
		return nil, common.ErrorNotFound
	default:
		return nil, fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Delete(ctx context.Context, guid string) error {

	query :=
		`DELETE FROM records
		 WHERE guid = $1
		 `

	res, err := r.db.ExecContext(ctx, query, guid)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Record, error) {

	query := `SELECT guid, "user", expire FROM records`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		var item models.Record
		if err := rows.Scan(&item.GUID, &item.User, &item.Expire); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
