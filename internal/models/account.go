package models

// Account is the database representation of a chart-of-accounts row.
// ParentAccountID and SubType map to nullable columns.
type Account struct {
	AccountID       string `db:"account_id"`
	CompanyID       string `db:"company_id"`
	Code            string `db:"code"`
	Name            string `db:"name"`
	AccountType     string `db:"account_type"`
	SubType         string `db:"sub_type"`
	ParentAccountID string `db:"parent_account_id"`
	Description     string `db:"description"`
	IsActive        bool   `db:"is_active"`
	AuditFields
}
