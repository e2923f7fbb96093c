package greenscore

import "errors"

var (
	// ErrValidation marks a request with a missing or empty input field.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a business name with no matching company.
	ErrNotFound = errors.New("company not found")
	// ErrDependency marks a failure of the company store or the classifier.
	ErrDependency = errors.New("dependency error")
)
