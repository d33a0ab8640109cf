package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "numeric" admits signs and decimal points; phone fields want 0-9 only
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	return v
}

// ValidateStruct runs validator tags in declaration order and returns the
// first violation as a user-facing message. Used for the contact funnel and
// other schema-tagged request bodies.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return errors.New(ValidationMessage(err))
	}
	return nil
}

// ValidationMessage converts a validator error into a readable message for
// the notification channel. Only the first field error is surfaced; the
// form stays open so the user fixes one thing at a time.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	e := verrs[0]
	field := strings.ToLower(e.Field()[:1]) + e.Field()[1:]
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "numeric", "digits":
		return fmt.Sprintf("%s must contain digits only", field)
	case "min":
		return fmt.Sprintf("%s is too short", field)
	case "max":
		return fmt.Sprintf("%s is too long", field)
	case "oneof":
		return fmt.Sprintf("%s has an unsupported value", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
