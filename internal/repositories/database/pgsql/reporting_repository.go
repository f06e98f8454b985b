package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/bookkeepr/bookkeeping_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface. All of
// its queries aggregate in a single pass over POSTED lines; balances are
// never read from a stored column.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData retrieves per-account debit and credit sums as of a
// specific date. The LEFT JOIN keeps zero-activity accounts in the result so
// the full chart shows on the trial balance.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.sub_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.status = 'POSTED' AND e.entry_date <= $1
		) l ON l.account_id = a.account_id
		WHERE a.company_id = $2
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.sub_type
		ORDER BY a.code
	`

	rows, err := r.Pool.Query(ctx, query, asOf, companyID)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		var subType sql.NullString

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&subType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		row.SubType = domain.AccountSubType(subType.String)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// statementQuery aggregates raw net movement (debit minus credit) per account
// for the given types. Sign conversion to the normal-balance convention
// happens in the service layer.
const statementQuery = `
	SELECT
		a.account_id,
		a.code,
		a.name,
		a.account_type,
		a.sub_type,
		SUM(l.debit - l.credit) AS net
	FROM journal_entry_lines l
	JOIN accounts a ON a.account_id = l.account_id
	JOIN journal_entries e ON e.entry_id = l.entry_id
	WHERE a.company_id = $1
		AND e.status = 'POSTED'
		AND e.entry_date >= $2
		AND e.entry_date <= $3
		AND a.account_type = ANY($4)
	GROUP BY a.account_id, a.code, a.name, a.account_type, a.sub_type
	ORDER BY a.code
`

// queryStatementLines runs statementQuery and buckets the rows by type.
func (r *reportingRepository) queryStatementLines(ctx context.Context, companyID string, from, to time.Time, types []string) (map[domain.AccountType][]domain.StatementLine, error) {
	rows, err := r.Pool.Query(ctx, statementQuery, companyID, from, to, types)
	if err != nil {
		return nil, fmt.Errorf("error querying statement data: %w", err)
	}
	defer rows.Close()

	byType := make(map[domain.AccountType][]domain.StatementLine)
	for rows.Next() {
		var line domain.StatementLine
		var accountType string
		var subType sql.NullString

		if err := rows.Scan(
			&line.AccountID,
			&line.AccountCode,
			&line.AccountName,
			&accountType,
			&subType,
			&line.Amount,
		); err != nil {
			return nil, fmt.Errorf("error scanning statement row: %w", err)
		}

		line.AccountType = domain.AccountType(accountType)
		line.SubType = domain.AccountSubType(subType.String)
		byType[line.AccountType] = append(byType[line.AccountType], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", err)
	}
	return byType, nil
}

// GetProfitAndLossData retrieves revenue and expense movement within the
// period.
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, companyID string, from, to time.Time) ([]domain.StatementLine, []domain.StatementLine, error) {
	byType, err := r.queryStatementLines(ctx, companyID, from, to,
		[]string{string(domain.Revenue), string(domain.Expense)})
	if err != nil {
		return nil, nil, err
	}
	return byType[domain.Revenue], byType[domain.Expense], nil
}

// GetBalanceSheetData retrieves asset, liability and equity balances
// cumulative to asOf. The lower bound is left open because balance sheet
// accounts accumulate from the beginning of the ledger.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, companyID string, asOf time.Time) ([]domain.StatementLine, []domain.StatementLine, []domain.StatementLine, error) {
	var epoch time.Time // zero time, no lower bound in practice
	byType, err := r.queryStatementLines(ctx, companyID, epoch, asOf,
		[]string{string(domain.Asset), string(domain.Liability), string(domain.Equity)})
	if err != nil {
		return nil, nil, nil, err
	}
	return byType[domain.Asset], byType[domain.Liability], byType[domain.Equity], nil
}
