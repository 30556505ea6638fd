package mailer

import (
	"errors"
	"fmt"
)

// Titles under which swallowed provider failures are recorded.
const (
	TitleAPIError = "Mailchimp: API Error"
	TitleError    = "Mailchimp: Error"
)

// Validation messages.
const (
	msgRecipientsMissing = "Recipients must be defined"
	msgEmailMissing      = "Email must be specified"
	msgTemplateMissing   = "Template name missing"
	msgVariablesInvalid  = "Template Content invalid. Make sure 'name' and 'content' are specified"
)

// ErrKeyLookup wraps a settings backend failure. It is distinct from a
// ConfigurationError: the key may exist but could not be read.
var ErrKeyLookup = errors.New("mailer: resolve api key")

// ValidationError reports a malformed request. It is always returned before
// any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError reports that the API key could not be resolved. It is
// always returned to the caller regardless of the error policy.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("mailer: configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
