package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is the per-account debit/credit rollup as of a date.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	SubType     AccountSubType  `json:"subType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"` // Debit minus Credit
}

// TrialBalanceReport is the full ledger rollup for a company.
// TotalDebits != TotalCredits can only result from a persistence-layer defect,
// never from user input; IntegrityWarning surfaces that condition without
// blocking the read.
type TrialBalanceReport struct {
	Rows             []TrialBalanceRow `json:"rows"`
	TotalDebits      decimal.Decimal   `json:"totalDebits"`
	TotalCredits     decimal.Decimal   `json:"totalCredits"`
	IsBalanced       bool              `json:"isBalanced"`
	IntegrityWarning string            `json:"integrityWarning,omitempty"`
}

// StatementLine is one account's contribution to a financial statement,
// signed by the normal balance convention of its type.
type StatementLine struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	SubType     AccountSubType  `json:"subType"`
	Amount      decimal.Decimal `json:"amount"`
}

// StatementSection groups statement lines under one sub-type with a subtotal.
type StatementSection struct {
	Group    string          `json:"group"` // sub-type, or the type's fallback group
	Lines    []StatementLine `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PAndLReport is a profit and loss statement for a date range.
type PAndLReport struct {
	Revenue       []StatementSection `json:"revenue"`
	Expenses      []StatementSection `json:"expenses"`
	TotalRevenue  decimal.Decimal    `json:"totalRevenue"`
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	NetIncome     decimal.Decimal    `json:"netIncome"`
}

// BalanceSheetReport is a balance sheet as of a date, cumulative from
// inception. Net income is not folded into retained earnings here; closing
// entries are a separate concern.
type BalanceSheetReport struct {
	Assets                    []StatementSection `json:"assets"`
	Liabilities               []StatementSection `json:"liabilities"`
	Equity                    []StatementSection `json:"equity"`
	TotalAssets               decimal.Decimal    `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal    `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal    `json:"totalEquity"`
	TotalLiabilitiesAndEquity decimal.Decimal    `json:"totalLiabilitiesAndEquity"`
}
