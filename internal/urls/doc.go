// Package urls holds the web links printed by the planner and the one-shot
// commands, so they can be updated in one place.
//
// Usage:
//
//	import "github.com/muurk/mvg/internal/urls"
//
//	fmt.Printf("Check current disruptions: %s\n", urls.ServiceStatus)
package urls
