package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bookkeepr/bookkeeping_app/internal/apperrors"
	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/bookkeeping_app/internal/core/ports/services"
	"github.com/bookkeepr/bookkeeping_app/internal/dto"
)

// accountService is the account registry: it owns the chart-of-accounts
// taxonomy and the referential rules guarding it.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// AccountServiceOption is a functional option for configuring the account
// service.
type AccountServiceOption func(*accountService)

// WithAccountCompanyAuthorizer sets the company authorizer.
func WithAccountCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewAccountService creates a new AccountService with the provided options.
func NewAccountService(repo portsrepo.AccountRepository, options ...AccountServiceOption) portssvc.AccountService {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountService = (*accountService)(nil)

// validateTaxonomy checks type and sub-type against the policy table,
// collecting every failure.
func (s *accountService) validateTaxonomy(accountType domain.AccountType, subType domain.AccountSubType, verrs *apperrors.ValidationErrors) {
	if !domain.IsValidAccountType(accountType) {
		verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidType,
			fmt.Sprintf("account type %q is not one of %v", accountType, domain.AccountTypes)))
		return
	}
	if !domain.IsValidSubType(accountType, subType) {
		verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidSubType,
			fmt.Sprintf("sub-type %q is not recognized for account type %s", subType, accountType)))
	}
}

// validateParent checks that the parent exists and shares the company.
func (s *accountService) validateParent(ctx context.Context, companyID, parentID string, verrs *apperrors.ValidationErrors) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidParent,
				fmt.Sprintf("parent account %s does not exist", parentID)))
			return
		}
		s.LogError(ctx, err, "Failed to look up parent account", slog.String("parent_id", parentID))
		verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidParent,
			fmt.Sprintf("parent account %s could not be verified", parentID)))
		return
	}
	if parent.CompanyID != companyID {
		// Same NotFound shape as a missing parent, to obscure existence.
		verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidParent,
			fmt.Sprintf("parent account %s does not exist", parentID)))
	}
}

// CreateAccount validates and persists a new account for the company.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		s.LogWarn(ctx, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	verrs := &apperrors.ValidationErrors{}

	subType := domain.AccountSubType("")
	if req.SubType != nil {
		subType = domain.AccountSubType(*req.SubType)
	}
	s.validateTaxonomy(req.AccountType, subType, verrs)

	// Code uniqueness within the company. The DB constraint remains the
	// authoritative guard; this pre-check exists to report DuplicateCode
	// alongside the other failures.
	existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		verrs.Add(apperrors.NewValidationError(apperrors.KindDuplicateCode,
			fmt.Sprintf("account code %q already exists in this company", req.Code)))
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		s.validateParent(ctx, companyID, parentID, verrs)
	}

	if verrs.HasErrors() {
		return nil, verrs
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		SubType:         subType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent create; same kind as the pre-check.
			verrs.Add(apperrors.NewValidationError(apperrors.KindDuplicateCode,
				fmt.Sprintf("account code %q already exists in this company", req.Code)))
			return nil, verrs
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("company_id", companyID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID))
	return &account, nil
}

// GetAccountByID fetches an account within the company scope. The caller must
// be at least a read-only member of the company; accounts from other
// companies are reported as NotFound, never leaked.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "User not authorized to read account",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}
	return s.findAccountScoped(ctx, companyID, accountID)
}

// findAccountScoped fetches an account and enforces the company scope. Callers
// have already authorized the requesting user.
func (s *accountService) findAccountScoped(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.CompanyID != companyID {
		s.LogDebug(ctx, "Account found but belongs to different company",
			slog.String("account_id", accountID),
			slog.String("account_company", account.CompanyID),
			slog.String("requested_company", companyID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts lists the company's chart of accounts for a member.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, userID string, limit int, offset int) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, "User not authorized to list accounts",
			slog.String("user_id", userID),
			slog.String("company_id", companyID))
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts for company %s: %w", companyID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies partial updates. Code and type are immutable here;
// re-parenting triggers an ancestor walk so no cycle can be introduced.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.findAccountScoped(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	verrs := &apperrors.ValidationErrors{}
	updated := false

	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.SubType != nil {
		subType := domain.AccountSubType(*req.SubType)
		if !domain.IsValidSubType(account.AccountType, subType) {
			verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidSubType,
				fmt.Sprintf("sub-type %q is not recognized for account type %s", subType, account.AccountType)))
		} else {
			account.SubType = subType
			updated = true
		}
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentAccountID != nil {
		newParentID := *req.ParentAccountID
		if newParentID == "" {
			account.ParentAccountID = ""
			updated = true
		} else {
			s.validateParent(ctx, companyID, newParentID, verrs)
			if !verrs.HasKind(apperrors.KindInvalidParent) {
				if err := s.checkNoCycle(ctx, accountID, newParentID); err != nil {
					verrs.Add(apperrors.NewValidationError(apperrors.KindInvalidParent,
						fmt.Sprintf("parent account %s would create a cycle", newParentID)))
				} else {
					account.ParentAccountID = newParentID
					updated = true
				}
			}
		}
	}

	if verrs.HasErrors() {
		return nil, verrs
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// checkNoCycle walks the ancestor chain from the proposed parent and fails if
// it reaches the account being re-parented.
func (s *accountService) checkNoCycle(ctx context.Context, accountID, newParentID string) error {
	current := newParentID
	for current != "" {
		if current == accountID {
			return fmt.Errorf("%w: account %s is an ancestor of itself", apperrors.ErrValidation, accountID)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil // broken chain cannot cycle
			}
			return err
		}
		current = parent.ParentAccountID
	}
	return nil
}

// DeactivateAccount soft-disables an account. Rows are never removed, so
// historical entries keep resolving.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return err
	}

	account, err := s.findAccountScoped(ctx, companyID, accountID)
	if err != nil {
		return err
	}

	account.IsActive = false
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
