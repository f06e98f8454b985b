package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database representation of an entry header.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	CompanyID   string    `db:"company_id"`
	EntryNumber string    `db:"entry_number"`
	EntryDate   time.Time `db:"entry_date"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	AuditFields
}

// JournalLine is the database representation of a single debit or credit.
// Exactly one of Debit/Credit is non-zero; the table CHECK enforces it.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	AuditFields
}
