package repositories

import (
	"context"
	"time"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

// JournalRepository defines persistence operations for journal entries and
// their lines. Entries and lines are written atomically as one unit; a
// partial write (entry without lines, or the reverse) must never be
// observable.
type JournalRepository interface {
	// SaveEntry inserts an entry with all of its lines in one transaction.
	// Returns apperrors.ErrDuplicate when (company_id, entry_number) is taken;
	// the storage constraint is the authoritative guard against races.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// ReplaceDraftEntry swaps the entry header and the full line set of a
	// draft entry in one transaction. Returns apperrors.ErrConflict when the
	// entry is no longer a draft.
	ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// MarkEntryPosted transitions a draft entry to POSTED. Returns
	// apperrors.ErrConflict when the entry is not in DRAFT status.
	MarkEntryPosted(ctx context.Context, entryID string, userID string, at time.Time) error

	// FindEntryByID fetches one entry header by primary key.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindEntryByNumber fetches one entry header by its company-scoped number.
	FindEntryByNumber(ctx context.Context, companyID string, entryNumber string) (*domain.JournalEntry, error)

	// FindLinesByEntryID fetches all lines of one entry.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntriesByCompany returns entries newest-first with token pagination.
	ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListLinesByAccountID returns an account's lines newest-first with token
	// pagination, posted entries only.
	ListLinesByAccountID(ctx context.Context, companyID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error)
}
