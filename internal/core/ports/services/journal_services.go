package services

import (
	"context"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	"github.com/bookkeepr/bookkeeping_app/internal/dto"
)

// JournalService validates and persists journal entries and exposes the read
// paths over them. Validation failures come back as
// *apperrors.ValidationErrors carrying every failed rule at once.
type JournalService interface {
	CreateEntry(ctx context.Context, companyID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	ReplaceDraftEntry(ctx context.Context, companyID string, entryID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	PostEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, companyID string, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
	ListLinesByAccount(ctx context.Context, companyID string, accountID string, userID string, params dto.ListLinesParams) (*dto.ListLinesResponse, error)
}
