package repositories

import (
	"context"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

// AccountRepository defines persistence operations for the chart of accounts.
type AccountRepository interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when
	// the (company_id, code) uniqueness constraint is violated.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID fetches one account by primary key.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode fetches one account by its company-scoped code.
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// FindAccountsByIDs fetches a batch of accounts keyed by ID.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns the company's accounts, inactive ones included.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
}
