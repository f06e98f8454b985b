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
)

// companyService manages companies (tenants) and user membership, and acts
// as the authorizer every other service consults for company scope.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepository
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepository) portssvc.CompanyService {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanyService = (*companyService)(nil)

// AuthorizeUserAction verifies the user holds at least the required role in
// the company, merging the caller's global role with the company membership.
// Missing membership is reported as NotFound to obscure the company's
// existence from outsiders; a global admin passes regardless of membership.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error {
	companyRole := domain.RoleRemoved
	membership, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to resolve membership: %w", err)
	}
	if err == nil {
		companyRole = membership.Role
	}

	if domain.EffectivePermission(domain.GlobalRoleFromCtx(ctx), companyRole, domain.RequiredPermission(requiredRole)) {
		return nil
	}
	if companyRole == domain.RoleRemoved {
		return apperrors.ErrNotFound
	}
	return fmt.Errorf("%w: requires %s role", apperrors.ErrForbidden, requiredRole)
}

// CreateCompany creates a company and makes the creator its admin, in one
// atomic write.
func (s *companyService) CreateCompany(ctx context.Context, name, description, creatorUserID string) (*domain.Company, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: company name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	membership := domain.UserCompany{
		UserID:    creatorUserID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleAdmin,
		JoinedAt:  now,
	}

	if err := s.companyRepo.SaveCompany(ctx, company, membership); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("company_name", name))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.LogInfo(ctx, "Company created successfully", slog.String("company_id", company.CompanyID))
	return &company, nil
}

// GetCompanyByID fetches a company the user belongs to.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company", slog.String("company_id", companyID))
		}
		return nil, err
	}
	return company, nil
}

// ListUserCompanies returns every company the user is a member of.
func (s *companyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list companies for user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	if companies == nil {
		companies = []domain.Company{}
	}
	return companies, nil
}

// AddUserToCompany grants a user a role in a company. Requires MANAGE_COMPANY,
// which only admins hold.
func (s *companyService) AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error {
	adderRole := domain.RoleRemoved
	adder, err := s.companyRepo.FindUserCompanyRole(ctx, addingUserID, companyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to resolve membership: %w", err)
	}
	if err == nil {
		adderRole = adder.Role
	}
	if !domain.EffectivePermission(domain.GlobalRoleFromCtx(ctx), adderRole, domain.PermManageCompany) {
		if adderRole == domain.RoleRemoved {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: managing members requires the %s permission", apperrors.ErrForbidden, domain.PermManageCompany)
	}

	membership := domain.UserCompany{
		UserID:    targetUserID,
		CompanyID: companyID,
		Role:      role,
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to company",
			slog.String("target_user_id", targetUserID),
			slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user to company: %w", err)
	}

	s.LogInfo(ctx, "User added to company",
		slog.String("target_user_id", targetUserID),
		slog.String("company_id", companyID),
		slog.String("role", string(role)))
	return nil
}

// DeactivateCompany soft-disables a company. Historical data stays intact.
func (s *companyService) DeactivateCompany(ctx context.Context, companyID string, userID string) error {
	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return err
	}

	company.IsActive = false
	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = userID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to deactivate company", slog.String("company_id", companyID))
		return fmt.Errorf("failed to deactivate company: %w", err)
	}

	s.LogInfo(ctx, "Company deactivated", slog.String("company_id", companyID))
	return nil
}
