package route

import (
	"cmp"
	"context"
	"encoding/json"
	stderrors "errors"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/starroute/pkg/cache"
	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/config"
	"github.com/matzehuels/starroute/pkg/dag"
	"github.com/matzehuels/starroute/pkg/errors"
	"github.com/matzehuels/starroute/pkg/observability"
	"github.com/matzehuels/starroute/pkg/optimize"
)

// Runner computes routes with caching.
// Both the CLI and the HTTP server use it.
//
// The Runner holds no per-request state, so multiple goroutines can share
// one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Input is everything a route is computed from.
type Input struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Options Options
}

// Prepared is a validated input ready for the optimizer.
type Prepared struct {
	Problem optimize.Problem
	Catalog *catalog.Catalog   // thresholds adjusted, 100 coin stars added
	Times   map[string]float64 // average time per star, before exclusions
	Options Options            // with defaults applied
}

// Prepare validates in and builds the optimization problem.
func Prepare(in Input) (*Prepared, error) {
	if in.Config == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no config")
	}
	if in.Catalog == nil {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "no catalog")
	}
	opts := in.Options
	if err := opts.ValidateAndSetDefaults(in.Catalog); err != nil {
		return nil, err
	}
	if err := in.Config.Validate(in.Catalog); err != nil {
		return nil, err
	}

	times := in.Config.AverageTimes()
	alternates := in.Config.Alternates()

	_, rootOK := times[catalog.RootStar]
	rootOK = rootOK && !opts.excluded(catalog.RootStar)
	_, altOK := times[catalog.RootAlternate]
	altOK = altOK && alternates[catalog.RootStar] == catalog.RootAlternate && !opts.excluded(catalog.RootAlternate)
	if !rootOK && !altOK {
		return nil, errors.New(errors.ErrCodeInvalidExcluded,
			"times exist for %s (or its 100 coin alternative) but all have been excluded", catalog.RootStar)
	}

	adjusted, err := in.Catalog.PropagateThresholds(in.Config.Prerequisites).WithAlternates(alternates)
	if err != nil {
		return nil, err
	}

	var costs []optimize.Cost
	for id, t := range times {
		if !opts.excluded(id) {
			costs = append(costs, optimize.Cost{Seconds: t, ID: id})
		}
	}
	slices.SortFunc(costs, func(a, b optimize.Cost) int { return cmp.Compare(a.ID, b.ID) })

	return &Prepared{
		Problem: optimize.Problem{
			Costs:      costs,
			Target:     opts.Stars,
			Quota:      opts.Quota(),
			Restricted: catalog.UpperLevels,
			Root:       catalog.RootStar,
			Graph:      dag.FromPrerequisites(in.Config.Prerequisites),
			Alternates: alternates,
			Locations:  adjusted.StarLocations(),
			Thresholds: adjusted.Thresholds(),
		},
		Catalog: adjusted,
		Times:   times,
		Options: opts,
	}, nil
}

// Run computes the optimal route for in. The cache is consulted first
// unless Options.Refresh is set.
func (r *Runner) Run(ctx context.Context, in Input) (*Route, error) {
	p, err := Prepare(in)
	if err != nil {
		return nil, err
	}

	res, hit, err := r.Optimize(ctx, p.Problem, p.Options.Refresh)
	if err != nil {
		return nil, err
	}

	route := NewRoute(res, p)
	route.Cached = hit
	r.Logger.Info("found route",
		"stars", route.Units,
		"time", FormatDuration(route.Time),
		"cached", hit)
	return route, nil
}

// Optimize runs the optimizer with caching and reports whether the result
// came from the cache.
func (r *Runner) Optimize(ctx context.Context, p optimize.Problem, refresh bool) (*optimize.Result, bool, error) {
	hash, err := cache.HashJSON(p)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash problem")
	}
	key := r.Keyer.RouteKey(hash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			var res optimize.Result
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, "route")
				return &res, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "route")
	}

	observability.Route().OnOptimizeStart(ctx, p.Target, len(p.Costs))
	start := time.Now()
	res, err := optimize.Optimize(ctx, p, optimize.Options{Logger: r.Logger})
	partitions := 0
	if res != nil {
		partitions = res.Partitions
	}
	observability.Route().OnOptimizeComplete(ctx, partitions, time.Since(start), err)
	if err != nil {
		return nil, false, classify(err, p)
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.RouteTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "route", len(data))
		}
	}
	return res, false, nil
}

// classify maps optimizer errors to error codes.
func classify(err error, p optimize.Problem) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case stderrors.Is(err, optimize.ErrNoValidRoute):
		return errors.Wrap(errors.ErrCodeNoValidRoute, err,
			"no valid %d star route with at most %d upper level stars", p.Target, p.Quota)
	case stderrors.Is(err, optimize.ErrRootHasAncestors):
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s cannot have prerequisites", p.Root)
	case stderrors.Is(err, optimize.ErrInvalidProblem):
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid route options")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "optimize %d stars", p.Target)
}
