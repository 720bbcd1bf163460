package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/mvg/internal/app"
	"github.com/muurk/mvg/internal/logging"
	"github.com/muurk/mvg/internal/mvg"
)

// DefaultRequestTimeout bounds one search: both name lookups plus the itinerary query
const DefaultRequestTimeout = 20 * time.Second

// DefaultQueueSize is the capacity of the request queue between render loop and coordinator
const DefaultQueueSize = 1

// Planner is the subset of the MVG client the coordinator needs
type Planner interface {
	Locations(ctx context.Context, query string) ([]mvg.Location, error)
	Connections(ctx context.Context, q mvg.ConnectionQuery) ([]mvg.Connection, error)
}

// cacheInvalidator is implemented by planners that cache name lookups
type cacheInvalidator interface {
	InvalidateCache()
}

var _ cacheInvalidator = (*mvg.Client)(nil)

// Sink receives the outcome of each search. *app.State implements it.
type Sink interface {
	ApplyResults(results []mvg.Connection)
	ApplyFailure(err error)
}

// Coordinator drains the search queue in the background, one request at a time
type Coordinator struct {
	planner Planner
	sink    Sink
	queue   <-chan app.Request

	// RequestTimeout bounds each request (0 = no limit)
	RequestTimeout time.Duration

	// OnUpdate, if set, runs after every write-back, outside the state lock
	OnUpdate func()
}

// New creates a coordinator reading from queue and writing outcomes to sink
func New(planner Planner, sink Sink, queue <-chan app.Request) *Coordinator {
	return &Coordinator{
		planner:        planner,
		sink:           sink,
		queue:          queue,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Run processes requests until ctx is cancelled or the queue is closed.
// It returns ctx.Err() on cancellation and nil when the queue is closed.
func (c *Coordinator) Run(ctx context.Context) error {
	logging.Debug("Fetch coordinator started")
	defer logging.Debug("Fetch coordinator stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-c.queue:
			if !ok {
				return nil
			}
			c.handle(ctx, req)
		}
	}
}

// handle runs one request and writes exactly one outcome back
func (c *Coordinator) handle(ctx context.Context, req app.Request) {
	start := time.Now()
	results, err := c.Plan(ctx, req)
	logging.LogFetch(req.Start, req.Destination, len(results), time.Since(start), err)

	if err != nil {
		c.sink.ApplyFailure(err)
	} else {
		c.sink.ApplyResults(results)
	}

	if c.OnUpdate != nil {
		c.OnUpdate()
	}
}

// Plan resolves both names and queries the itineraries between them.
// The lookups run concurrently; the first one to fail cancels the other.
func (c *Coordinator) Plan(ctx context.Context, req app.Request) ([]mvg.Connection, error) {
	if c.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.RequestTimeout)
		defer cancel()
	}

	var from, to mvg.Location
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		from, err = c.Resolve(gctx, "Start", req.Start)
		return err
	})
	g.Go(func() error {
		var err error
		to, err = c.Resolve(gctx, "Destination", req.Destination)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Debug("Resolved stations",
		zap.String("from", from.GlobalID),
		zap.String("to", to.GlobalID),
	)

	results, err := c.planner.Connections(ctx, req.Query(from.GlobalID, to.GlobalID))
	if err != nil {
		// A rejected query may carry a stale global id; look the names up again next time
		if mvg.IsHTTPError(err) && !mvg.IsRetryable(err) {
			if inv, ok := c.planner.(cacheInvalidator); ok {
				logging.Debug("Dropping cached station lookups", zap.Error(err))
				inv.InvalidateCache()
			}
		}
		return nil, fmt.Errorf("query connections: %w", err)
	}
	return results, nil
}

// Resolve looks up name and returns its first station candidate.
// Addresses and points of interest are skipped.
func (c *Coordinator) Resolve(ctx context.Context, field, name string) (mvg.Location, error) {
	if strings.TrimSpace(name) == "" {
		return mvg.Location{}, &ResolutionError{Field: field}
	}

	locations, err := c.planner.Locations(ctx, name)
	if err != nil {
		return mvg.Location{}, fmt.Errorf("look up %s: %w", strings.ToLower(field), err)
	}

	station, ok := mvg.FirstStation(locations)
	if !ok {
		return mvg.Location{}, &ResolutionError{Field: field, Query: name}
	}
	return station, nil
}

// IsResolutionError reports whether err is a failed name lookup with no station candidate
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}
