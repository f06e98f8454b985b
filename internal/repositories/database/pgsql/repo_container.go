package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
)

// NewRepositoryContainer builds the full Postgres-backed repository set over
// one shared connection pool.
func NewRepositoryContainer(dbPool *pgxpool.Pool) *portsrepo.Container {
	return &portsrepo.Container{
		Account:   newPgxAccountRepository(dbPool),
		Journal:   newPgxJournalRepository(dbPool),
		Reporting: newReportingRepository(dbPool),
		Company:   newPgxCompanyRepository(dbPool),
	}
}
