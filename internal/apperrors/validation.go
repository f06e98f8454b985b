package apperrors

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies a specific ledger validation failure. Handlers map kinds to
// user-facing messages; services never collapse them into generic errors.
type Kind string

const (
	KindDuplicateCode          Kind = "DUPLICATE_CODE"
	KindInvalidType            Kind = "INVALID_TYPE"
	KindInvalidSubType         Kind = "INVALID_SUB_TYPE"
	KindInvalidParent          Kind = "INVALID_PARENT"
	KindDuplicateEntryNumber   Kind = "DUPLICATE_ENTRY_NUMBER"
	KindMalformedLine          Kind = "MALFORMED_LINE"
	KindUnknownAccount         Kind = "UNKNOWN_ACCOUNT"
	KindCrossTenantAccount     Kind = "CROSS_TENANT_ACCOUNT"
	KindUnbalanced             Kind = "UNBALANCED"
	KindFutureDated            Kind = "FUTURE_DATED"
	KindInvalidDateRange       Kind = "INVALID_DATE_RANGE"
	KindLedgerIntegrityWarning Kind = "LEDGER_INTEGRITY_WARNING"
)

// UnbalancedTotals carries both sides of a failed balance check so the caller
// can display them.
type UnbalancedTotals struct {
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
}

// ValidationError is a single kind-tagged validation failure.
type ValidationError struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Totals  *UnbalancedTotals `json:"totals,omitempty"` // set only for KindUnbalanced
}

func (e *ValidationError) Error() string {
	return string(e.Kind) + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a kind-tagged validation error.
func NewValidationError(kind Kind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// NewUnbalancedError creates the Unbalanced failure carrying both totals.
func NewUnbalancedError(message string, totalDebits, totalCredits decimal.Decimal) *ValidationError {
	return &ValidationError{
		Kind:    KindUnbalanced,
		Message: message,
		Totals:  &UnbalancedTotals{TotalDebits: totalDebits, TotalCredits: totalCredits},
	}
}

// ValidationErrors aggregates every failure found while validating one
// request, so the caller receives the full list in a single response.
type ValidationErrors struct {
	Errors []*ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Unwrap() error {
	return ErrValidation
}

// Add appends a failure to the collection.
func (e *ValidationErrors) Add(ve *ValidationError) {
	e.Errors = append(e.Errors, ve)
}

// HasErrors reports whether any failure was collected.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasKind reports whether a failure of the given kind was collected.
func (e *ValidationErrors) HasKind(kind Kind) bool {
	for _, ve := range e.Errors {
		if ve.Kind == kind {
			return true
		}
	}
	return false
}
