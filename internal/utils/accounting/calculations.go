package accounting

import (
	"fmt"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryTotals sums the debit and credit sides of a set of journal lines at
// full decimal precision.
func EntryTotals(lines []domain.JournalLine) (totalDebits, totalCredits decimal.Decimal) {
	totalDebits = decimal.Zero
	totalCredits = decimal.Zero
	for _, line := range lines {
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
	}
	return totalDebits, totalCredits
}

// SignedAmount converts a raw net balance (debit minus credit) into the
// normal balance convention of the account's type:
// ASSET/EXPENSE are debit-positive; LIABILITY/EQUITY/REVENUE credit-positive.
func SignedAmount(accountType domain.AccountType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	net := debit.Sub(credit)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// LineShapeValid reports whether a line is well-formed: both sides
// non-negative and exactly one of debit/credit non-zero.
func LineShapeValid(line domain.JournalLine) bool {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return false
	}
	return line.Debit.IsPositive() != line.Credit.IsPositive()
}
