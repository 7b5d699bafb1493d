package domain

import "fmt"

// ValidationError reports a rejected mutation due to a missing required
// field. The mutation performs no state change when this is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// ValidateEntryFields checks the required entry fields. Project and
// description must be non-empty; everything else is optional.
func ValidateEntryFields(project, description string) error {
	if project == "" {
		return &ValidationError{Field: "project"}
	}
	if description == "" {
		return &ValidationError{Field: "description"}
	}
	return nil
}
