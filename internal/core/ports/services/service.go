package services

// Container bundles every service implementation handed to the handlers.
type Container struct {
	Account   AccountService
	Journal   JournalService
	Reporting ReportingService
	Company   CompanyService
}
