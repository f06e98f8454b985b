package dto

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Account codes sort lexically in the chart of accounts, so they must start
// with an alphanumeric and stick to a printable, separator-safe alphabet.
var accountCodeRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// RegisterCustomValidators installs ledger-specific binding rules into gin's
// validator engine. Must be called once before routes are served.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("account_code", func(fl validator.FieldLevel) bool {
		return accountCodeRe.MatchString(fl.Field().String())
	})
}
