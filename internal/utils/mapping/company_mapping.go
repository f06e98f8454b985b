package mapping

import (
	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	"github.com/bookkeepr/bookkeeping_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of model Companies to domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}

// ToModelUserCompany converts a domain membership to a model membership
func ToModelUserCompany(d domain.UserCompany) models.UserCompany {
	return models.UserCompany{
		UserID:    d.UserID,
		CompanyID: d.CompanyID,
		Role:      string(d.Role),
		JoinedAt:  d.JoinedAt,
	}
}

// ToDomainUserCompany converts a model membership to a domain membership
func ToDomainUserCompany(m models.UserCompany) domain.UserCompany {
	return domain.UserCompany{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      domain.UserCompanyRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}

// ToDomainUserCompanySlice converts a slice of model memberships to domain memberships
func ToDomainUserCompanySlice(ms []models.UserCompany) []domain.UserCompany {
	ds := make([]domain.UserCompany, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUserCompany(m)
	}
	return ds
}
