package library

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Field rules shared by the entity constructors.
const (
	ruleRequired = "required"
	ruleEmail    = "required,contains=@"
	rulePositive = "gt=0"
	ruleNonNeg   = "gte=0"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// check runs a single validator rule against value and turns the first
// failure into a *ValidationError naming field.
func check(field string, value any, rule string) error {
	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid(field, err.Error())
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(field, "must not be empty")
	case "contains":
		return invalid(field, fmt.Sprintf("must contain %q", fe.Param()))
	case "gt":
		return invalid(field, "must be greater than "+fe.Param())
	case "gte":
		return invalid(field, "must be at least "+fe.Param())
	default:
		return invalid(field, "failed "+fe.Tag())
	}
}
