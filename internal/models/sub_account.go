package models

// SubAccount is one delegate row under a parent account.
type SubAccount struct {
	SubAccountID    string `db:"sub_account_id"`
	ParentAccountID string `db:"parent_account_id"`
	UserID          string `db:"user_id"`
	Name            string `db:"name"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}
