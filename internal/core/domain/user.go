package domain

import "github.com/shopspring/decimal"

// User is a marketplace participant. Accounts hang off users; the creator
// chain of users defines the organizational hierarchy.
type User struct {
	UserID         string `json:"userID"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordHash   string `json:"-"`
	CreatorUserID  string `json:"creatorUserID"`  // who onboarded this user, empty for headquarters
	HeadquartersID string `json:"headquartersID"` // resolved once at creation
	Blocked        bool   `json:"blocked"`
	// ManagerCommissionRate applies when this user acts as an account manager
	// and earns commission on billings of managed accounts (percent).
	ManagerCommissionRate decimal.Decimal `json:"managerCommissionRate"`
	AuditFields
}
