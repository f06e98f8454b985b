package repositories

import (
	"context"
	"time"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

// ReportingRepository defines the single-pass aggregation queries behind the
// trial balance and the financial statements. Only POSTED entries contribute.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit sums over posted
	// lines with entry date <= asOf. Accounts with zero activity are included
	// with zero balances.
	GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetProfitAndLossData returns revenue and expense statement lines for
	// posted entries dated within [from, to].
	GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) (revenue []domain.StatementLine, expenses []domain.StatementLine, err error)

	// GetBalanceSheetData returns asset, liability and equity statement lines
	// cumulative to asOf.
	GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) (assets []domain.StatementLine, liabilities []domain.StatementLine, equity []domain.StatementLine, err error)
}
