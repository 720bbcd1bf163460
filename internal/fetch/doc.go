// Package fetch runs route searches in the background.
//
// The render loop enqueues app.Request values on a bounded channel and never waits
// for them. A Coordinator drains that channel one request at a time: it resolves the
// Start and Destination names to stations concurrently, queries the connections
// between them and writes the outcome back through the state's ApplyResults or
// ApplyFailure. Exactly one of the two is called per request, so the busy flag
// raised at submission is always cleared.
//
// A name without any station candidate fails the request with a *ResolutionError
// instead of sending a query that cannot succeed. Each request is bounded by
// RequestTimeout.
package fetch
