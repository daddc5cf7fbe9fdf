package domain

import "github.com/shopspring/decimal"

// Plan is a subscription plan; its commission rate (percent) is charged to the
// buyer of every trade.
type Plan struct {
	PlanID         string          `json:"planID"`
	Name           string          `json:"name"`
	CommissionRate decimal.Decimal `json:"commissionRate"` // percent, e.g. 5 => 5%
	AuditFields
}
