package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepr/bookkeeping_app/internal/apperrors"
	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeepr/bookkeeping_app/internal/platform/metrics"
	"github.com/bookkeepr/bookkeeping_app/internal/utils/accounting"
)

// reportingService is the ledger aggregator and statement generator. It is
// stateless: every call recomputes from the persisted ledger, never from a
// cache, so results always reflect the latest posted entries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting
// service.
type ReportingServiceOption func(*reportingService)

// WithReportingCompanyAuthorizer sets the company authorizer.
func WithReportingCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided
// options.
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{reportingRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance folds all posted lines up to asOf into per-account
// debit/credit balances. Every posted entry balances individually, so a
// ledger-wide mismatch here can only mean a persistence defect; it is
// surfaced as an integrity warning, never as a user validation error, and
// never blocks the read.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.TrialBalanceReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "User not authorized to view trial balance",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("company_id", companyID),
			slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for i := range rows {
		rows[i].Net = rows[i].Debit.Sub(rows[i].Credit)
		totalDebits = totalDebits.Add(rows[i].Debit)
		totalCredits = totalCredits.Add(rows[i].Credit)
	}

	report := &domain.TrialBalanceReport{
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		IsBalanced:   totalDebits.Equal(totalCredits),
	}

	if !report.IsBalanced {
		metrics.CountLedgerIntegrityWarning()
		report.IntegrityWarning = fmt.Sprintf("%s: ledger debits %s do not equal credits %s",
			apperrors.KindLedgerIntegrityWarning, totalDebits.String(), totalCredits.String())
		s.LogError(ctx, apperrors.ErrInternal, "LEDGER INTEGRITY WARNING: trial balance does not balance",
			slog.String("company_id", companyID),
			slog.String("as_of", asOf.Format(time.RFC3339)),
			slog.String("total_debits", totalDebits.String()),
			slog.String("total_credits", totalCredits.String()))
	}

	s.LogInfo(ctx, "Trial balance generated",
		slog.String("company_id", companyID),
		slog.String("as_of", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// ProfitAndLoss aggregates revenue and expense movement within [from, to].
// The window is not cumulative-to-date; only lines of posted entries dated in
// range contribute.
func (s *reportingService) ProfitAndLoss(ctx context.Context, companyID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if from.After(to) {
		verrs := &apperrors.ValidationErrors{}
		verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidDateRange,
			fmt.Sprintf("start date %s is after end date %s", from.Format("2006-01-02"), to.Format("2006-01-02"))))
		return nil, verrs
	}

	revenueLines, expenseLines, err := s.reportingRepo.GetProfitAndLossData(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve profit and loss data",
			slog.String("company_id", companyID),
			slog.String("from", from.Format(time.RFC3339)),
			slog.String("to", to.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	revenue, totalRevenue, err := s.buildSections(revenueLines)
	if err != nil {
		return nil, err
	}
	expenses, totalExpenses, err := s.buildSections(expenseLines)
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetIncome:     totalRevenue.Sub(totalExpenses),
	}

	s.LogInfo(ctx, "Profit and loss generated",
		slog.String("company_id", companyID),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

// BalanceSheet aggregates asset, liability and equity balances cumulative to
// asOf. Net income is not rolled into retained earnings here; closing entries
// are out of scope.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	assetLines, liabilityLines, equityLines, err := s.reportingRepo.GetBalanceSheetData(ctx, companyID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.String("company_id", companyID),
			slog.String("as_of", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	assets, totalAssets, err := s.buildSections(assetLines)
	if err != nil {
		return nil, err
	}
	liabilities, totalLiabilities, err := s.buildSections(liabilityLines)
	if err != nil {
		return nil, err
	}
	equity, totalEquity, err := s.buildSections(equityLines)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheetReport{
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalAssets:               totalAssets,
		TotalLiabilities:          totalLiabilities,
		TotalEquity:               totalEquity,
		TotalLiabilitiesAndEquity: totalLiabilities.Add(totalEquity),
	}

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("company_id", companyID),
		slog.String("total_assets", totalAssets.String()))
	return report, nil
}

// buildSections converts raw net balances (debit minus credit, as aggregated
// by the repository) into convention-signed statement lines grouped by
// sub-type. Accounts without a sub-type group under the type's fallback
// group. Each account appears in exactly one group, so nothing is
// double-counted.
func (s *reportingService) buildSections(lines []domain.StatementLine) ([]domain.StatementSection, decimal.Decimal, error) {
	grouped := make(map[string][]domain.StatementLine)
	for _, line := range lines {
		signed, err := accounting.SignedAmount(line.AccountType, line.Amount, decimal.Zero)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("failed to sign statement amount for account %s: %w", line.AccountID, err)
		}
		line.Amount = signed

		group := string(line.SubType)
		if group == "" {
			group = domain.FallbackGroup(line.AccountType)
		}
		grouped[group] = append(grouped[group], line)
	}

	groups := make([]string, 0, len(grouped))
	for group := range grouped {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	total := decimal.Zero
	sections := make([]domain.StatementSection, 0, len(groups))
	for _, group := range groups {
		sectionLines := grouped[group]
		sort.Slice(sectionLines, func(i, j int) bool {
			return sectionLines[i].AccountCode < sectionLines[j].AccountCode
		})

		subtotal := decimal.Zero
		for _, line := range sectionLines {
			subtotal = subtotal.Add(line.Amount)
		}
		total = total.Add(subtotal)

		sections = append(sections, domain.StatementSection{
			Group:    group,
			Lines:    sectionLines,
			Subtotal: subtotal,
		})
	}
	return sections, total, nil
}
