package dto

import (
	"time"

	"github.com/bookkeepr/bookkeeping_app/internal/core/domain"
)

const dateLayout = "2006-01-02"

// TrialBalanceParams defines query parameters for the trial balance report.
type TrialBalanceParams struct {
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}

// ProfitAndLossParams defines query parameters for the P&L report.
type ProfitAndLossParams struct {
	From string `form:"from" binding:"required"` // YYYY-MM-DD
	To   string `form:"to" binding:"required"`   // YYYY-MM-DD
}

// BalanceSheetParams defines query parameters for the balance sheet report.
type BalanceSheetParams struct {
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}

// ParseReportDate parses a YYYY-MM-DD query value to the start of that day in
// UTC, defaulting to now when empty.
func ParseReportDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	return time.Parse(dateLayout, value)
}

// ParseReportDateEnd parses a YYYY-MM-DD cutoff to the last instant of that
// day in UTC. Entries carry full timestamps, so an inclusive cutoff has to
// cover the whole named day, not just its midnight. Defaults to the end of
// the current day when empty.
func ParseReportDateEnd(value string) (time.Time, error) {
	day := time.Now().UTC()
	if value != "" {
		var err error
		day, err = time.Parse(dateLayout, value)
		if err != nil {
			return time.Time{}, err
		}
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// TrialBalanceResponse wraps the trial balance report for the API.
type TrialBalanceResponse struct {
	AsOf   string                     `json:"asOf"`
	Report *domain.TrialBalanceReport `json:"report"`
}

// ProfitAndLossResponse wraps the P&L report for the API.
type ProfitAndLossResponse struct {
	From   string              `json:"from"`
	To     string              `json:"to"`
	Report *domain.PAndLReport `json:"report"`
}

// BalanceSheetResponse wraps the balance sheet report for the API.
type BalanceSheetResponse struct {
	AsOf   string                     `json:"asOf"`
	Report *domain.BalanceSheetReport `json:"report"`
}

// FormatReportDate renders a report timestamp as YYYY-MM-DD.
func FormatReportDate(t time.Time) string {
	return t.Format(dateLayout)
}
