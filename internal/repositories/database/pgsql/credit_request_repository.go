package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MaxTecnology/rede-trade-back/internal/apperrors"
	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
	portsrepo "github.com/MaxTecnology/rede-trade-back/internal/core/ports/repositories"
	"github.com/MaxTecnology/rede-trade-back/internal/models"
)

// PgxCreditRequestRepository implements credit request persistence using pgx.
type PgxCreditRequestRepository struct {
	BaseRepository
}

var _ portsrepo.CreditRequestRepositoryWithTx = (*PgxCreditRequestRepository)(nil)

func newPgxCreditRequestRepository(pool *pgxpool.Pool) *PgxCreditRequestRepository {
	return &PgxCreditRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toDomainCreditRequest(m models.CreditRequest) domain.CreditRequest {
	return domain.CreditRequest{
		CreditRequestID:    m.CreditRequestID,
		RequesterAccountID: m.RequesterAccountID,
		RequesterUserID:    m.RequesterUserID,
		AmountRequested:    m.AmountRequested,
		Reason:             m.Reason,
		Status:             domain.CreditRequestStatus(m.Status),
		BranchComment:      m.BranchComment,
		HQComment:          m.HQComment,
		CreditLimitBefore:  m.CreditLimitBefore,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const creditRequestColumns = `credit_request_id, requester_account_id, requester_user_id,
	amount_requested, reason, status, branch_comment, hq_comment, credit_limit_before,
	created_at, created_by, last_updated_at, last_updated_by`

func scanCreditRequest(row pgx.Row) (models.CreditRequest, error) {
	var m models.CreditRequest
	err := row.Scan(
		&m.CreditRequestID, &m.RequesterAccountID, &m.RequesterUserID,
		&m.AmountRequested, &m.Reason, &m.Status, &m.BranchComment, &m.HQComment, &m.CreditLimitBefore,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCreditRequestRepository) SaveCreditRequest(ctx context.Context, request domain.CreditRequest) error {
	query := `
		INSERT INTO credit_requests (` + creditRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.Pool.Exec(ctx, query,
		request.CreditRequestID, request.RequesterAccountID, request.RequesterUserID,
		request.AmountRequested, request.Reason, string(request.Status),
		request.BranchComment, request.HQComment, request.CreditLimitBefore,
		request.CreatedAt, request.CreatedBy, request.LastUpdatedAt, request.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save credit request: %w", err)
	}
	return nil
}

// The expected-status predicate makes every workflow write a compare-and-set:
// a request decided by a concurrent actor matches zero rows instead of being
// silently overwritten.
const updateCreditRequestQuery = `
	UPDATE credit_requests
	SET status = $2, branch_comment = $3, hq_comment = $4, credit_limit_before = $5,
		last_updated_at = $6, last_updated_by = $7
	WHERE credit_request_id = $1 AND status = $8`

func (r *PgxCreditRequestRepository) UpdateCreditRequest(ctx context.Context, request domain.CreditRequest, expected domain.CreditRequestStatus) error {
	tag, err := r.Pool.Exec(ctx, updateCreditRequestQuery,
		request.CreditRequestID, string(request.Status),
		request.BranchComment, request.HQComment, request.CreditLimitBefore,
		request.LastUpdatedAt, request.LastUpdatedBy, string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update credit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit request %s is no longer %s",
			apperrors.ErrInvalidStateTransition, request.CreditRequestID, expected)
	}
	return nil
}

func (r *PgxCreditRequestRepository) UpdateCreditRequestInTx(ctx context.Context, tx pgx.Tx, request domain.CreditRequest, expected domain.CreditRequestStatus) error {
	tag, err := tx.Exec(ctx, updateCreditRequestQuery,
		request.CreditRequestID, string(request.Status),
		request.BranchComment, request.HQComment, request.CreditLimitBefore,
		request.LastUpdatedAt, request.LastUpdatedBy, string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update credit request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: credit request %s is no longer %s",
			apperrors.ErrInvalidStateTransition, request.CreditRequestID, expected)
	}
	return nil
}

func (r *PgxCreditRequestRepository) FindCreditRequestByID(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	query := `SELECT ` + creditRequestColumns + ` FROM credit_requests WHERE credit_request_id = $1`
	m, err := scanCreditRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit request by id: %w", err)
	}
	request := toDomainCreditRequest(m)
	return &request, nil
}

// ListCreditRequestsByStatus returns requests oldest first so approval queues
// are worked in submission order.
func (r *PgxCreditRequestRepository) ListCreditRequestsByStatus(ctx context.Context, status domain.CreditRequestStatus, limit int, offset int) ([]domain.CreditRequest, error) {
	query := `
		SELECT ` + creditRequestColumns + `
		FROM credit_requests
		WHERE status = $1
		ORDER BY created_at, credit_request_id
		LIMIT $2 OFFSET $3`

	return r.listCreditRequests(ctx, query, string(status), limit, offset)
}

func (r *PgxCreditRequestRepository) ListCreditRequestsByRequester(ctx context.Context, requesterUserID string, limit int, offset int) ([]domain.CreditRequest, error) {
	query := `
		SELECT ` + creditRequestColumns + `
		FROM credit_requests
		WHERE requester_user_id = $1
		ORDER BY created_at DESC, credit_request_id DESC
		LIMIT $2 OFFSET $3`

	return r.listCreditRequests(ctx, query, requesterUserID, limit, offset)
}

func (r *PgxCreditRequestRepository) listCreditRequests(ctx context.Context, query string, filter string, limit int, offset int) ([]domain.CreditRequest, error) {
	rows, err := r.Pool.Query(ctx, query, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.CreditRequest{}
	for rows.Next() {
		m, err := scanCreditRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit request row: %w", err)
		}
		requests = append(requests, toDomainCreditRequest(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credit request rows: %w", err)
	}
	return requests, nil
}
