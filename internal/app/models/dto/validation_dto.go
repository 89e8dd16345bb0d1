package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a request binding error into an ErrorDetail.
// Field-level validator failures name the offending field; anything else is
// reported as a malformed request.
func HandleValidationError(err error) *ErrorDetail {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldError := validationErrors[0]
		errorDetail := NewErrorDetail(ErrorCodeValidationFailed, "Validation failed")
		errorDetail = errorDetail.WithField(strings.ToLower(fieldError.Field()[:1]) + fieldError.Field()[1:])
		errorDetail = errorDetail.WithDetails(fmt.Sprintf("field failed on the '%s' rule", fieldError.Tag()))
		return errorDetail
	}

	errorDetail := NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format")
	errorDetail = errorDetail.WithDetails(err.Error())
	return errorDetail
}
