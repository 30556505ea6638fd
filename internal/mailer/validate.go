package mailer

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks req the way Send does, returning the first problem as a
// *ValidationError. Recipients are checked first, then the template, then
// the variables.
func Validate(req Request) error {
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return &ValidationError{Message: err.Error()}
		}
		return translate(fieldErrs[0])
	}

	for _, v := range req.Variables {
		if v.Content == nil {
			return &ValidationError{Field: "variables", Message: msgVariablesInvalid}
		}
	}
	return nil
}

func translate(fe validator.FieldError) *ValidationError {
	switch fe.StructField() {
	case "Recipients":
		return &ValidationError{Field: "recipients", Message: msgRecipientsMissing}
	case "Email":
		return &ValidationError{Field: "recipients", Message: msgEmailMissing}
	case "Template":
		return &ValidationError{Field: "template", Message: msgTemplateMissing}
	case "Name":
		return &ValidationError{Field: "variables", Message: msgVariablesInvalid}
	default:
		return &ValidationError{Field: fe.Field(), Message: fe.Error()}
	}
}
