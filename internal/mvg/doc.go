// Package mvg provides an HTTP client for the MVG (Münchner Verkehrsgesellschaft)
// journey-planning API.
//
// The client covers the four read-only endpoints the application needs:
//   - Locations: free-text search returning stations, addresses and points of interest
//   - Connections: itineraries between two station global ids
//   - Departures: upcoming departures at a station
//   - Notifications: current service disruption tickers
//
// # Usage Example
//
//	client := mvg.NewClient()
//
//	locations, err := client.Locations(ctx, "Dachau")
//	if err != nil {
//	    return err
//	}
//	from, ok := mvg.FirstStation(locations)
//	if !ok {
//	    return fmt.Errorf("no station named Dachau")
//	}
//
//	connections, err := client.Connections(ctx, mvg.ConnectionQuery{
//	    OriginID:      from.GlobalID,
//	    DestinationID: "de:09162:6",
//	    When:          time.Now(),
//	})
//
// # Retries and Caching
//
// Retryable failures (timeouts, refused connections, HTTP 5xx and 429) are retried
// with exponential backoff. Location lookups are cached per query for CacheDuration.
// Every call honours its context, including the waits between retries.
//
// # Error Handling
//
// All failures are returned as *APIError with a classified ErrorType. Use
// ShortMessage and TroubleshootingHint to present them to users.
//
// # Thread Safety
//
// Client instances are safe for concurrent use.
package mvg
