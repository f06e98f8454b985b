package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookkeepr/bookkeeping_app/internal/apperrors"
	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeepr/bookkeeping_app/internal/dto"
	"github.com/bookkeepr/bookkeeping_app/internal/platform/metrics"
	"github.com/bookkeepr/bookkeeping_app/internal/utils/accounting"
)

// JournalPolicy holds the configurable validation knobs. FutureDated
// rejection is a policy choice rather than an accounting law, so it is not
// hardcoded.
type JournalPolicy struct {
	AllowFutureDated bool
	// Precision is the number of decimal places amounts are normalized to
	// before the balance check and persistence.
	Precision int32
}

// DefaultJournalPolicy matches the shipped configuration defaults.
func DefaultJournalPolicy() JournalPolicy {
	return JournalPolicy{AllowFutureDated: false, Precision: 2}
}

// journalService validates journal entries against the double-entry rules and
// owns their lifecycle: DRAFT entries may be replaced wholesale, posting is a
// one-way transition, POSTED entries are immutable.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	policy      JournalPolicy
	now         func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal
// service.
type JournalServiceOption func(*journalService)

// WithJournalCompanyAuthorizer sets the company authorizer.
func WithJournalCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithJournalPolicy overrides the validation policy.
func WithJournalPolicy(policy JournalPolicy) JournalServiceOption {
	return func(s *journalService) {
		s.policy = policy
	}
}

// WithJournalClock overrides the time source used for the FutureDated check.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, options ...JournalServiceOption) portssvc.JournalService {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		policy:      DefaultJournalPolicy(),
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalService = (*journalService)(nil)

// normalizeLines rounds every amount to the configured precision. Validation
// runs on the normalized amounts so the balance invariant holds for exactly
// what gets persisted.
func (s *journalService) normalizeLines(reqLines []dto.CreateJournalLineRequest) []dto.CreateJournalLineRequest {
	normalized := make([]dto.CreateJournalLineRequest, len(reqLines))
	for i, line := range reqLines {
		normalized[i] = line
		normalized[i].Debit = line.Debit.Round(s.policy.Precision)
		normalized[i].Credit = line.Credit.Round(s.policy.Precision)
	}
	return normalized
}

// validateEntry runs every rule and collects every failure, so the caller
// sees the full list in one response. skipNumberCheck suppresses the
// duplicate-number rule when a draft is replaced under its existing number.
func (s *journalService) validateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, skipNumberCheck bool) ([]dto.CreateJournalLineRequest, *apperrors.ValidationErrors) {
	verrs := &apperrors.ValidationErrors{}

	if !skipNumberCheck {
		existing, err := s.journalRepo.FindEntryByNumber(ctx, companyID, req.EntryNumber)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check entry number uniqueness", slog.String("entry_number", req.EntryNumber))
			verrs.Add(apperrors.NewValidationError(apperrors.KindDuplicateEntryNumber,
				fmt.Sprintf("entry number %q could not be verified", req.EntryNumber)))
		}
		if existing != nil {
			verrs.Add(apperrors.NewValidationError(apperrors.KindDuplicateEntryNumber,
				fmt.Sprintf("entry number %q already exists in this company", req.EntryNumber)))
		}
	}

	lines := s.normalizeLines(req.Lines)

	if len(lines) < 2 {
		verrs.Add(apperrors.NewValidationError(apperrors.KindMalformedLine,
			"a journal entry requires at least two lines"))
	}

	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	accountIDs := make([]string, 0, len(lines))
	for i, line := range lines {
		shape := domain.JournalLine{Debit: line.Debit, Credit: line.Credit}
		if !accounting.LineShapeValid(shape) {
			verrs.Add(apperrors.NewValidationError(apperrors.KindMalformedLine,
				fmt.Sprintf("line %d must carry exactly one non-negative side, debit or credit", i+1)))
			continue
		}
		totalDebits = totalDebits.Add(line.Debit)
		totalCredits = totalCredits.Add(line.Credit)
		accountIDs = append(accountIDs, line.AccountID)
	}

	if len(accountIDs) > 0 {
		accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch accounts for entry validation", slog.String("company_id", companyID))
			verrs.Add(apperrors.NewValidationError(apperrors.KindUnknownAccount,
				"referenced accounts could not be verified"))
		} else {
			for _, id := range uniqueStrings(accountIDs) {
				account, found := accountsMap[id]
				if !found {
					verrs.Add(apperrors.NewValidationError(apperrors.KindUnknownAccount,
						fmt.Sprintf("account %s does not exist", id)))
					continue
				}
				if account.CompanyID != companyID {
					verrs.Add(apperrors.NewValidationError(apperrors.KindCrossTenantAccount,
						fmt.Sprintf("account %s does not belong to this company", id)))
					continue
				}
				if !account.IsActive {
					verrs.Add(apperrors.NewValidationError(apperrors.KindMalformedLine,
						fmt.Sprintf("account %s is inactive", id)))
				}
			}
		}
	}

	if !totalDebits.Equal(totalCredits) {
		verrs.Add(apperrors.NewUnbalancedError(
			fmt.Sprintf("total debits %s do not equal total credits %s", totalDebits.String(), totalCredits.String()),
			totalDebits, totalCredits))
	}

	if !s.policy.AllowFutureDated && req.Date.After(s.now()) {
		verrs.Add(apperrors.NewValidationError(apperrors.KindFutureDated,
			fmt.Sprintf("entry date %s is in the future", req.Date.Format("2006-01-02"))))
	}

	return lines, verrs
}

// buildEntry materializes the validated draft into domain records ready for
// one atomic write.
func (s *journalService) buildEntry(companyID string, req dto.CreateJournalEntryRequest, lines []dto.CreateJournalLineRequest, userID string) (domain.JournalEntry, []domain.JournalLine) {
	now := s.now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		CompanyID:   companyID,
		EntryNumber: req.EntryNumber,
		EntryDate:   req.Date,
		Description: req.Description,
		Status:      domain.Draft,
		AuditFields: audit,
	}

	domainLines := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		domainLines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   line.AccountID,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			AuditFields: audit,
		}
	}
	return entry, domainLines
}

// CreateEntry validates a draft and persists the entry with all of its lines
// atomically. Any rule violation rejects the whole entry; no partial write is
// ever observable.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogWarn(ctx, "Authorization failed for CreateEntry",
			slog.String("user_id", userID), slog.String("company_id", companyID))
		return nil, err
	}

	lines, verrs := s.validateEntry(ctx, companyID, req, false)
	if verrs.HasErrors() {
		return nil, verrs
	}

	entry, domainLines := s.buildEntry(companyID, req, lines, userID)

	if err := s.journalRepo.SaveEntry(ctx, entry, domainLines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost the race on entry_number; the storage constraint is the
			// authoritative guard, the pre-check only an optimization.
			verrs.Add(apperrors.NewValidationError(apperrors.KindDuplicateEntryNumber,
				fmt.Sprintf("entry number %q already exists in this company", req.EntryNumber)))
			return nil, verrs
		}
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("entry_id", entry.EntryID), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	metrics.CountEntryCreated(string(domain.Draft))
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("company_id", companyID))

	entry.Lines = domainLines
	return &entry, nil
}

// ReplaceDraftEntry re-validates and swaps a draft entry and its full line
// set as one unit. Posted entries cannot be replaced.
func (s *journalService) ReplaceDraftEntry(ctx context.Context, companyID string, entryID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	current, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if current.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if current.Status != domain.Draft {
		return nil, fmt.Errorf("%w: only draft entries can be replaced", apperrors.ErrConflict)
	}

	skipNumberCheck := current.EntryNumber == req.EntryNumber
	lines, verrs := s.validateEntry(ctx, companyID, req, skipNumberCheck)
	if verrs.HasErrors() {
		return nil, verrs
	}

	entry, domainLines := s.buildEntry(companyID, req, lines, userID)
	entry.EntryID = current.EntryID
	entry.CreatedAt = current.CreatedAt
	entry.CreatedBy = current.CreatedBy
	for i := range domainLines {
		domainLines[i].EntryID = entry.EntryID
	}

	if err := s.journalRepo.ReplaceDraftEntry(ctx, entry, domainLines); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			verrs.Add(apperrors.NewValidationError(apperrors.KindDuplicateEntryNumber,
				fmt.Sprintf("entry number %q already exists in this company", req.EntryNumber)))
			return nil, verrs
		}
		s.LogError(ctx, err, "Failed to replace draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to replace draft entry: %w", err)
	}

	s.LogInfo(ctx, "Draft entry replaced", slog.String("entry_id", entryID))
	entry.Lines = domainLines
	return &entry, nil
}

// PostEntry transitions a draft entry to POSTED. The transition is one-way;
// posted entries become immutable inputs to the aggregator.
func (s *journalService) PostEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: entry status is %s, expected %s", apperrors.ErrConflict, entry.Status, domain.Draft)
	}

	now := s.now().UTC()
	if err := s.journalRepo.MarkEntryPosted(ctx, entryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, err
	}

	metrics.CountEntryCreated(string(domain.Posted))
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID), slog.String("company_id", companyID))

	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	return entry, nil
}

// GetEntryByID retrieves an entry with its lines, scoped to the company.
func (s *journalService) GetEntryByID(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of the company's entries, optionally with
// lines.
func (s *journalService) ListEntries(ctx context.Context, companyID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByCompany(ctx, companyID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i, entry := range entries {
		if params.IncludeLines {
			lines, err := s.journalRepo.FindLinesByEntryID(ctx, entry.EntryID)
			if err != nil {
				s.LogWarn(ctx, "Failed to fetch lines for listed entry", "entry_id", entry.EntryID, "error", err.Error())
			} else {
				entry.Lines = lines
			}
		}
		responses[i] = dto.ToJournalEntryResponse(&entry)
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// ListLinesByAccount retrieves a page of an account's posted lines.
func (s *journalService) ListLinesByAccount(ctx context.Context, companyID string, accountID string, userID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, companyID, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list lines by account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve lines: %w", err)
	}

	return &dto.ListLinesResponse{
		Lines:     dto.ToJournalLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the
// input, preserving first-seen order.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
