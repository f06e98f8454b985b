package services

import (
	"context"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	"github.com/bookkeepr/bookkeeping_app/internal/dto"
)

// AccountService is the account registry: chart-of-accounts CRUD with the
// taxonomy and referential validation rules.
type AccountService interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, companyID string, accountID string, userID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, companyID string, userID string, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error
}
