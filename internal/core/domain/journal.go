package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft  EntryStatus = "DRAFT"
	Posted EntryStatus = "POSTED"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple lines. Posted entries are immutable inputs to the ledger.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`     // Primary Key (UUID)
	CompanyID   string        `json:"companyID"`   // FK -> companies.company_id
	EntryNumber string        `json:"entryNumber"` // User-facing number, unique per company
	EntryDate   time.Time     `json:"entryDate"`   // Date the event occurred
	Description string        `json:"description"`
	Status      EntryStatus   `json:"status"`
	Lines       []JournalLine `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// JournalLine is a single debit or credit within a journal entry. Exactly one
// of Debit/Credit is non-zero; lines live and die with their entry.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (UUID)
	EntryID     string          `json:"entryID"` // FK -> journal_entries.entry_id
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	AuditFields
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the magnitude of the line regardless of side.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
