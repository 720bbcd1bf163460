package fetch

import "fmt"

// ResolutionError reports a name that did not resolve to any station.
// No itinerary query is sent when resolution fails.
type ResolutionError struct {
	Field string // "Start", "Destination" or "Station"
	Query string // The name as typed
}

// Error implements the error interface
func (e *ResolutionError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("%s is empty", e.Field)
	}
	return fmt.Sprintf("no station found for %s %q", e.Field, e.Query)
}
