package repositories

// Container bundles every repository implementation handed to the service
// layer.
type Container struct {
	Account   AccountRepository
	Journal   JournalRepository
	Reporting ReportingRepository
	Company   CompanyRepository
}
