package models

import "github.com/shopspring/decimal"

// User is one marketplace participant row.
type User struct {
	UserID                string          `db:"user_id"`
	Name                  string          `db:"name"`
	Email                 string          `db:"email"`
	PasswordHash          string          `db:"password_hash"`
	CreatorUserID         string          `db:"creator_user_id"` // Nullable
	HeadquartersID        string          `db:"headquarters_id"`
	Blocked               bool            `db:"blocked"`
	ManagerCommissionRate decimal.Decimal `db:"manager_commission_rate"`
	AuditFields
}
