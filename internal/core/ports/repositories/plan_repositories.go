package repositories

import (
	"context"

	"github.com/MaxTecnology/rede-trade-back/internal/core/domain"
)

// PlanRepository defines operations for commission plan data
type PlanRepository interface {
	// FindPlanByID retrieves a specific plan by its unique identifier.
	FindPlanByID(ctx context.Context, planID string) (*domain.Plan, error)

	// ListPlans retrieves all plans.
	ListPlans(ctx context.Context) ([]domain.Plan, error)

	// SavePlan persists a new plan.
	SavePlan(ctx context.Context, plan domain.Plan) error
}
