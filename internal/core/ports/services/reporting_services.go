package services

import (
	"context"
	"time"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

// ReportingService is the ledger aggregator and statement generator.
type ReportingService interface {
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error)
	ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
}
