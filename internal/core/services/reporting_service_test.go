package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeepr/bookkeeping_app/internal/apperrors"
	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeepr/bookkeeping_app/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockReportingRepository) GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) ([]domain.StatementLine, []domain.StatementLine, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil && args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.StatementLine), args.Get(1).([]domain.StatementLine), args.Error(2)
}

func (m *MockReportingRepository) GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) ([]domain.StatementLine, []domain.StatementLine, []domain.StatementLine, error) {
	args := m.Called(ctx, companyID, asOf)
	if args.Get(0) == nil {
		return nil, nil, nil, args.Error(3)
	}
	return args.Get(0).([]domain.StatementLine), args.Get(1).([]domain.StatementLine), args.Get(2).([]domain.StatementLine), args.Error(3)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAuthorizer    *MockCompanyAuthorizer
	service           portssvc.ReportingService
	companyID         string
	userID            string
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.service = services.NewReportingService(suite.mockReportingRepo,
		services.WithReportingCompanyAuthorizer(suite.mockAuthorizer),
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
}

func (suite *ReportingServiceTestSuite) expectAuthorized() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Once()
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// --- TrialBalance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset, Debit: dec("100.00"), Credit: dec("0")},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountName: "Sales", AccountType: domain.Revenue, Debit: dec("0"), Credit: dec("100.00")},
	}

	suite.expectAuthorized()
	suite.mockReportingRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.IsBalanced)
	suite.Empty(report.IntegrityWarning)
	suite.True(report.TotalDebits.Equal(dec("100.00")))
	suite.True(report.TotalCredits.Equal(dec("100.00")))
	suite.True(report.Rows[0].Net.Equal(dec("100.00")))
	suite.True(report.Rows[1].Net.Equal(dec("-100.00")))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_Imbalance_WarnsWithoutBlocking() {
	ctx := context.Background()
	// every posted entry balances, so an unbalanced ledger can only mean
	// corrupted storage; the read must still succeed
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: dec("100.00"), Credit: dec("0")},
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountType: domain.Revenue, Debit: dec("0"), Credit: dec("99.00")},
	}

	suite.expectAuthorized()
	suite.mockReportingRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).Return(rows, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.False(report.IsBalanced)
	suite.NotEmpty(report.IntegrityWarning)
	suite.Contains(report.IntegrityWarning, "100")
	suite.Contains(report.IntegrityWarning, "99")
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_IsIdempotent() {
	ctx := context.Background()
	rows := []domain.TrialBalanceRow{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountType: domain.Asset, Debit: dec("42.42"), Credit: dec("0")},
		{AccountID: uuid.NewString(), AccountCode: "2000", AccountType: domain.Liability, Debit: dec("0"), Credit: dec("42.42")},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(nil).Twice()
	suite.mockReportingRepo.On("GetTrialBalanceData", mock.Anything, suite.companyID, suite.asOf).Return(rows, nil).Twice()

	first, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)
	suite.Require().NoError(err)
	second, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)
	suite.Require().NoError(err)

	suite.True(first.TotalDebits.Equal(second.TotalDebits))
	suite.True(first.TotalCredits.Equal(second.TotalCredits))
	suite.Equal(first.IsBalanced, second.IsBalanced)
}

// --- ProfitAndLoss ---

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_GroupsBySubTypeAndComputesNetIncome() {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	// repository amounts are raw debit-minus-credit sums
	revenueLines := []domain.StatementLine{
		{AccountID: uuid.NewString(), AccountCode: "4000", AccountName: "Sales", AccountType: domain.Revenue, SubType: domain.OperatingRevenue, Amount: dec("-100.00")},
		{AccountID: uuid.NewString(), AccountCode: "4900", AccountName: "Interest Income", AccountType: domain.Revenue, Amount: dec("-5.00")},
	}
	expenseLines := []domain.StatementLine{
		{AccountID: uuid.NewString(), AccountCode: "5000", AccountName: "Rent", AccountType: domain.Expense, SubType: domain.OperatingExpense, Amount: dec("40.00")},
	}

	suite.expectAuthorized()
	suite.mockReportingRepo.On("GetProfitAndLossData", mock.Anything, suite.companyID, from, to).Return(revenueLines, expenseLines, nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, suite.companyID, from, to, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.TotalRevenue.Equal(dec("105.00")))
	suite.True(report.TotalExpenses.Equal(dec("40.00")))
	suite.True(report.NetIncome.Equal(dec("65.00")))

	suite.Require().Len(report.Revenue, 2)
	groups := []string{report.Revenue[0].Group, report.Revenue[1].Group}
	suite.Contains(groups, string(domain.OperatingRevenue))
	suite.Contains(groups, "Other Revenue") // no sub-type falls back to the type group
	for _, section := range report.Revenue {
		for _, line := range section.Lines {
			suite.True(line.Amount.IsPositive(), "credit-normal balances are reported positive")
		}
	}
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss_InvalidDateRange() {
	ctx := context.Background()
	from := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.expectAuthorized()

	report, err := suite.service.ProfitAndLoss(ctx, suite.companyID, from, to, suite.userID)

	suite.Nil(report)
	suite.Require().Error(err)
	verrs, ok := err.(*apperrors.ValidationErrors)
	suite.Require().True(ok)
	suite.True(verrs.HasKind(apperrors.KindInvalidDateRange))
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetProfitAndLossData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- BalanceSheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Totals() {
	ctx := context.Background()
	assets := []domain.StatementLine{
		{AccountID: uuid.NewString(), AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset, SubType: domain.CurrentAsset, Amount: dec("100.00")},
	}
	liabilities := []domain.StatementLine{
		{AccountID: uuid.NewString(), AccountCode: "2000", AccountName: "Loan", AccountType: domain.Liability, SubType: domain.LongTermLiability, Amount: dec("-30.00")},
	}
	equity := []domain.StatementLine{
		{AccountID: uuid.NewString(), AccountCode: "3000", AccountName: "Owner Capital", AccountType: domain.Equity, SubType: domain.OwnersEquity, Amount: dec("-70.00")},
	}

	suite.expectAuthorized()
	suite.mockReportingRepo.On("GetBalanceSheetData", mock.Anything, suite.companyID, suite.asOf).Return(assets, liabilities, equity, nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(dec("100.00")))
	suite.True(report.TotalLiabilities.Equal(dec("30.00")))
	suite.True(report.TotalEquity.Equal(dec("70.00")))
	suite.True(report.TotalLiabilitiesAndEquity.Equal(report.TotalAssets))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_Unauthorized() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetBalanceSheetData", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
