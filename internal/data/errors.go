package data

import "fmt"

// UpstreamError reports a failed or incomplete response from an external
// collaborator (weather, prices, geocoding). The simulation core never sees
// one; callers resolve all series before invoking it.
type UpstreamError struct {
	Source     string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}
