package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every recognized account type.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValidAccountType reports whether t is one of the five recognized types.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountSubType refines an account type for statement grouping.
type AccountSubType string

const (
	CurrentAsset      AccountSubType = "CURRENT_ASSET"
	FixedAsset        AccountSubType = "FIXED_ASSET"
	OtherAsset        AccountSubType = "OTHER_ASSET"
	CurrentLiability  AccountSubType = "CURRENT_LIABILITY"
	LongTermLiability AccountSubType = "LONG_TERM_LIABILITY"
	OwnersEquity      AccountSubType = "OWNERS_EQUITY"
	RetainedEarnings  AccountSubType = "RETAINED_EARNINGS"
	OperatingRevenue  AccountSubType = "OPERATING_REVENUE"
	OtherRevenue      AccountSubType = "OTHER_REVENUE"
	CostOfGoodsSold   AccountSubType = "COST_OF_GOODS_SOLD"
	OperatingExpense  AccountSubType = "OPERATING_EXPENSE"
	OtherExpense      AccountSubType = "OTHER_EXPENSE"
)

// subTypesByType is the policy table of sub-types recognized for each type.
var subTypesByType = map[AccountType][]AccountSubType{
	Asset:     {CurrentAsset, FixedAsset, OtherAsset},
	Liability: {CurrentLiability, LongTermLiability},
	Equity:    {OwnersEquity, RetainedEarnings},
	Revenue:   {OperatingRevenue, OtherRevenue},
	Expense:   {CostOfGoodsSold, OperatingExpense, OtherExpense},
}

// SubTypesForType returns the sub-types recognized for the given account type.
func SubTypesForType(t AccountType) []AccountSubType {
	return subTypesByType[t]
}

// IsValidSubType reports whether sub is recognized for the given account type.
// An empty sub-type is always valid; it falls into the type's "Other" group.
func IsValidSubType(t AccountType, sub AccountSubType) bool {
	if sub == "" {
		return true
	}
	for _, s := range subTypesByType[t] {
		if s == sub {
			return true
		}
	}
	return false
}

// FallbackGroup names the statement group for accounts without a sub-type.
func FallbackGroup(t AccountType) string {
	switch t {
	case Asset:
		return "Other Asset"
	case Liability:
		return "Other Liability"
	case Equity:
		return "Other Equity"
	case Revenue:
		return "Other Revenue"
	case Expense:
		return "Other Expense"
	}
	return "Other"
}

// Account represents one account in a company's chart of accounts.
type Account struct {
	AccountID       string         `json:"accountID"`       // Primary Key (UUID)
	CompanyID       string         `json:"companyID"`       // FK -> companies.company_id
	Code            string         `json:"code"`            // User-facing code, unique per company
	Name            string         `json:"name"`            // User-defined name
	AccountType     AccountType    `json:"accountType"`     // ASSET, LIABILITY, etc.
	SubType         AccountSubType `json:"subType"`         // Optional refinement for statements
	ParentAccountID string         `json:"parentAccountID"` // Nullable self-reference
	Description     string         `json:"description"`
	IsActive        bool           `json:"isActive"` // Soft disable; accounts are never hard-deleted
	AuditFields
}
