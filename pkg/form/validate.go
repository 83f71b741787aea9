package form

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// check validates a submission struct. Any empty field wins over a
// mismatch so the "fill in" message always comes first.
func check(submission any) error {
	err := validate.Struct(submission)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing, mismatched []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "eqfield":
			mismatched = append(mismatched, fe.Field())
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Kind: ErrMissingFields, Fields: missing}
	}
	return &ValidationError{Kind: ErrPasswordMismatch, Fields: mismatched}
}
