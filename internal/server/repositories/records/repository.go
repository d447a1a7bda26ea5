package records

import (
	"context"

	"github.com/dmitrijs2005/guidstore/internal/server/models"
)

// Repository is the durable keyed store for records. The database is
// the sole source of truth; connectivity failures propagate to the
// caller and fail the enclosing request.
type Repository interface {
	// Create persists a new record. A guid collision yields
	// common.ErrorAlreadyExists and leaves existing state untouched.
	Create(ctx context.Context, rec *models.Record) (*models.Record, error)

	// Get is a point lookup. A missing guid yields common.ErrorNotFound.
	Get(ctx context.Context, guid string) (*models.Record, error)

	// GetForUpdate is Get with a row lock; it must run inside a
	// transaction (see dbx.WithTx).
	GetForUpdate(ctx context.Context, guid string) (*models.Record, error)

	// Update writes the full row for rec.GUID. A missing guid yields
	// common.ErrorNotFound.
	Update(ctx context.Context, rec *models.Record) (*models.Record, error)

	// Delete removes the row. A missing guid yields common.ErrorNotFound.
	Delete(ctx context.Context, guid string) error

	// List returns every record, order unspecified. Full scan, no
	// pagination yet.
	List(ctx context.Context) ([]*models.Record, error)
}
