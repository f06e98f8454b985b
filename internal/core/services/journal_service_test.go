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
	"github.com/bookkeepr/bookkeeping_app/internal/dto"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, entryID string, userID string, at time.Time) error {
	args := m.Called(ctx, entryID, userID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByNumber(ctx context.Context, companyID string, entryNumber string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, companyID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, companyID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedToken, args.Error(2)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock CompanyAuthorizer ---
type MockCompanyAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockCompanyAuthorizer)(nil)

func (m *MockCompanyAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error {
	args := m.Called(ctx, userID, companyID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockCompanyAuthorizer
	service         portssvc.JournalService
	companyID       string
	userID          string
	now             time.Time
	cashAccount     domain.Account
	revenueAccount  domain.Account
	expenseAccount  domain.Account
	inactiveAccount domain.Account
	foreignAccount  domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockCompanyAuthorizer)
	suite.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo,
		services.WithJournalCompanyAuthorizer(suite.mockAuthorizer),
		services.WithJournalClock(func() time.Time { return suite.now }),
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "5000",
		Name:        "Rent Expense",
		AccountType: domain.Expense,
		IsActive:    true,
	}
	suite.inactiveAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1900",
		Name:        "Retired Account",
		AccountType: domain.Asset,
		IsActive:    false,
	}
	suite.foreignAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   uuid.NewString(), // a different company
		Code:        "1000",
		Name:        "Someone Else's Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) expectAuthorized(role domain.UserCompanyRole) {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, role).Return(nil).Once()
}

func (suite *JournalServiceTestSuite) expectNoDuplicateNumber(entryNumber string) {
	suite.mockJournalRepo.On("FindEntryByNumber", mock.Anything, suite.companyID, entryNumber).Return(nil, apperrors.ErrNotFound).Once()
}

func (suite *JournalServiceTestSuite) expectAccounts(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[a.AccountID] = a
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, mock.AnythingOfType("[]string")).Return(accountsMap, nil).Once()
}

// requireValidationErrors asserts that err is a *apperrors.ValidationErrors
// containing the given kind and returns the matching error for inspection.
func (suite *JournalServiceTestSuite) requireValidationKind(err error, kind apperrors.Kind) *apperrors.ValidationError {
	suite.Require().Error(err)
	verrs, ok := err.(*apperrors.ValidationErrors)
	suite.Require().True(ok, "expected *apperrors.ValidationErrors, got %T: %v", err, err)
	suite.Require().True(verrs.HasKind(kind), "expected kind %s in %v", kind, verrs)
	for _, ve := range verrs.Errors {
		if ve.Kind == kind {
			return ve
		}
	}
	return nil
}

func (suite *JournalServiceTestSuite) balancedRequest(amount string) dto.CreateJournalEntryRequest {
	amt, err := decimal.NewFromString(amount)
	suite.Require().NoError(err)
	return dto.CreateJournalEntryRequest{
		EntryNumber: "JE-2024-001",
		Date:        suite.now.AddDate(0, 0, -1),
		Description: "Cash sale",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: amt},
			{AccountID: suite.revenueAccount.AccountID, Credit: amt},
		},
	}
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.EntryID)
	suite.Equal(suite.companyID, created.CompanyID)
	suite.Equal(domain.Draft, created.Status)
	suite.Equal(suite.userID, created.CreatedBy)
	suite.Len(created.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAuthorizer.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced_ReportsBothTotals() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	req.Lines[1].Credit = decimal.RequireFromString("99.99")

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)

	created, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Nil(created)
	ve := suite.requireValidationKind(err, apperrors.KindUnbalanced)
	suite.Require().NotNil(ve.Totals)
	suite.True(ve.Totals.TotalDebits.Equal(decimal.RequireFromString("100.00")))
	suite.True(ve.Totals.TotalCredits.Equal(decimal.RequireFromString("99.99")))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineWithBothSides_Malformed() {
	ctx := context.Background()
	req := suite.balancedRequest("50.00")
	req.Lines[0].Credit = decimal.RequireFromString("50.00") // debit and credit both set

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.revenueAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindMalformedLine)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SingleLine_Malformed() {
	ctx := context.Background()
	req := suite.balancedRequest("50.00")
	req.Lines = req.Lines[:1]

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindMalformedLine)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	req.Lines[1].AccountID = uuid.NewString() // never persisted

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount) // the unknown one is absent from the map

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindUnknownAccount)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_CrossTenantAccount() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	req.Lines[1].AccountID = suite.foreignAccount.AccountID

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.foreignAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	ve := suite.requireValidationKind(err, apperrors.KindCrossTenantAccount)
	suite.NotNil(ve)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount_Rejected() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	req.Lines[0].AccountID = suite.inactiveAccount.AccountID

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.inactiveAccount, suite.revenueAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindMalformedLine)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_FutureDated_RejectedByDefault() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	req.Date = suite.now.AddDate(0, 0, 7)

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindFutureDated)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_FutureDated_AllowedByPolicy() {
	ctx := context.Background()
	svc := services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo,
		services.WithJournalCompanyAuthorizer(suite.mockAuthorizer),
		services.WithJournalClock(func() time.Time { return suite.now }),
		services.WithJournalPolicy(services.JournalPolicy{AllowFutureDated: true, Precision: 2}),
	)
	req := suite.balancedRequest("100.00")
	req.Date = suite.now.AddDate(0, 0, 7)

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	created, err := svc.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(created)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_DuplicateEntryNumber() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	existing := &domain.JournalEntry{EntryID: uuid.NewString(), CompanyID: suite.companyID, EntryNumber: req.EntryNumber}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockJournalRepo.On("FindEntryByNumber", mock.Anything, suite.companyID, req.EntryNumber).Return(existing, nil).Once()
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindDuplicateEntryNumber)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_DuplicateEntryNumber_LostRace() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	// The pre-check passed but the unique constraint fired on insert.
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.requireValidationKind(err, apperrors.KindDuplicateEntryNumber)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_CollectsMultipleFailures() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")
	req.Date = suite.now.AddDate(0, 0, 7)
	req.Lines[1].Credit = decimal.RequireFromString("80.00")
	req.Lines[1].AccountID = uuid.NewString()

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount)

	_, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	verrs, ok := err.(*apperrors.ValidationErrors)
	suite.Require().True(ok)
	suite.True(verrs.HasKind(apperrors.KindUnbalanced))
	suite.True(verrs.HasKind(apperrors.KindUnknownAccount))
	suite.True(verrs.HasKind(apperrors.KindFutureDated))
}

func (suite *JournalServiceTestSuite) TestCreateEntry_RoundsToPrecisionBeforeBalanceCheck() {
	ctx := context.Background()
	req := suite.balancedRequest("10.01")
	req.Lines[0].Debit = decimal.RequireFromString("10.005") // rounds half away from zero to 10.01

	suite.expectAuthorized(domain.RoleMember)
	suite.expectNoDuplicateNumber(req.EntryNumber)
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockJournalRepo.On("SaveEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	created, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(created.Lines[0].Debit.Equal(decimal.RequireFromString("10.01")))
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unauthorized() {
	ctx := context.Background()
	req := suite.balancedRequest("100.00")

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.companyID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	created, err := suite.service.CreateEntry(ctx, suite.companyID, req, suite.userID)

	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- ReplaceDraftEntry ---

func (suite *JournalServiceTestSuite) TestReplaceDraftEntry_Success_SameNumberSkipsDuplicateCheck() {
	ctx := context.Background()
	req := suite.balancedRequest("200.00")
	current := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		EntryNumber: req.EntryNumber,
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{CreatedAt: suite.now.AddDate(0, 0, -3), CreatedBy: uuid.NewString()},
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, current.EntryID).Return(current, nil).Once()
	suite.expectAccounts(suite.cashAccount, suite.revenueAccount)
	suite.mockJournalRepo.On("ReplaceDraftEntry", mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	replaced, err := suite.service.ReplaceDraftEntry(ctx, suite.companyID, current.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(current.EntryID, replaced.EntryID)
	suite.Equal(current.CreatedBy, replaced.CreatedBy)
	suite.Equal(current.CreatedAt, replaced.CreatedAt)
	// the same entry number must not count as a duplicate of itself
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryByNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReplaceDraftEntry_PostedEntry_Conflict() {
	ctx := context.Background()
	req := suite.balancedRequest("200.00")
	current := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   suite.companyID,
		EntryNumber: req.EntryNumber,
		Status:      domain.Posted,
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, current.EntryID).Return(current, nil).Once()

	_, err := suite.service.ReplaceDraftEntry(ctx, suite.companyID, current.EntryID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReplaceDraftEntry_OtherCompany_NotFound() {
	ctx := context.Background()
	req := suite.balancedRequest("200.00")
	current := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: uuid.NewString(),
		Status:    domain.Draft,
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, current.EntryID).Return(current, nil).Once()

	_, err := suite.service.ReplaceDraftEntry(ctx, suite.companyID, current.EntryID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- PostEntry ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Status:    domain.Draft,
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("MarkEntryPosted", mock.Anything, entry.EntryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(suite.userID, posted.LastUpdatedBy)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AlreadyPosted_Conflict() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Status:    domain.Posted,
	}

	suite.expectAuthorized(domain.RoleMember)
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkEntryPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *JournalServiceTestSuite) TestGetEntryByID_OtherCompany_NotFound() {
	ctx := context.Background()
	entry := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: uuid.NewString(),
		Status:    domain.Posted,
	}

	suite.expectAuthorized(domain.RoleReadOnly)
	suite.mockJournalRepo.On("FindEntryByID", mock.Anything, entry.EntryID).Return(entry, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, suite.companyID, entry.EntryID, suite.userID)

	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesTokenThrough() {
	ctx := context.Background()
	entries := []domain.JournalEntry{
		{EntryID: uuid.NewString(), CompanyID: suite.companyID, EntryNumber: "JE-2", Status: domain.Posted},
		{EntryID: uuid.NewString(), CompanyID: suite.companyID, EntryNumber: "JE-1", Status: domain.Draft},
	}

	suite.expectAuthorized(domain.RoleReadOnly)
	suite.mockJournalRepo.On("ListEntriesByCompany", mock.Anything, suite.companyID, 20, (*string)(nil)).Return(entries, "next-page", nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.companyID, suite.userID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
