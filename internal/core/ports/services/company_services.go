package services

import (
	"context"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

// CompanyAuthorizerSvc resolves whether a user may act within a company.
// The ledger engine itself performs no permission checks; this is the
// boundary that produces the already-authorized company context.
type CompanyAuthorizerSvc interface {
	AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanyService manages companies (tenants) and user membership.
type CompanyService interface {
	CompanyAuthorizerSvc
	CreateCompany(ctx context.Context, name, description, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string, userID string) (*domain.Company, error)
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)
	AddUserToCompany(ctx context.Context, addingUserID, targetUserID, companyID string, role domain.UserCompanyRole) error
	DeactivateCompany(ctx context.Context, companyID string, userID string) error
}
