package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository hands out account numbering sequence values. Each scope
// key (one per account type prefix) has its own monotonically increasing
// counter, bumped atomically so concurrent account creations never collide.
type SequenceRepository interface {
	// NextValueInTx increments and returns the counter for scopeKey within a
	// database transaction. The first call for a new scope returns 1.
	NextValueInTx(ctx context.Context, tx pgx.Tx, scopeKey string) (int64, error)
}
