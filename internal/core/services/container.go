package services

import (
	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/bookkeepr/bookkeeping_app/internal/core/ports/services"
)

// NewContainer wires the service layer together. The company service doubles
// as the authorizer for the other services, so it is built first.
func NewContainer(repos *portsrepo.Container, policy JournalPolicy) *portssvc.Container {
	company := NewCompanyService(repos.Company)
	authorizer := company.(portssvc.CompanyAuthorizerSvc)

	return &portssvc.Container{
		Company: company,
		Account: NewAccountService(repos.Account,
			WithAccountCompanyAuthorizer(authorizer),
		),
		Journal: NewJournalService(repos.Journal, repos.Account,
			WithJournalCompanyAuthorizer(authorizer),
			WithJournalPolicy(policy),
		),
		Reporting: NewReportingService(repos.Reporting,
			WithReportingCompanyAuthorizer(authorizer),
		),
	}
}
