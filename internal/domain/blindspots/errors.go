package blindspots

import "errors"

var (
	// ErrNotFound is returned when an analysis does not exist or belongs to another user.
	ErrNotFound = errors.New("analysis not found")
	// ErrExportDisabled indicates no report store is configured.
	ErrExportDisabled = errors.New("report export is not configured")
)

// ValidationError reports invalid caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
