package repositories

import (
	"context"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

// CompanyRepository defines persistence operations for companies (tenants)
// and user membership.
type CompanyRepository interface {
	// SaveCompany inserts a company and the creator's ADMIN membership in one
	// transaction.
	SaveCompany(ctx context.Context, company domain.Company, creatorMembership domain.UserCompany) error

	// UpdateCompany persists changes to an existing company.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// FindCompanyByID fetches one company by primary key.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// AddUserToCompany upserts a membership row.
	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error

	// FindUserCompanyRole fetches the membership of a user in a company.
	FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error)

	// ListCompaniesByUser returns the companies a user belongs to.
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	// ListCompanyUsers returns a company's memberships.
	ListCompanyUsers(ctx context.Context, companyID string) ([]domain.UserCompany, error)
}
