// Package route turns a runner's config into an optimized star route.
//
// [Runner.Run] validates the config against a [catalog.Catalog], averages
// the recorded times, drops excluded courses and stars, and hands the
// resulting [optimize.Problem] to the optimizer. Results are cached by a
// hash of the problem, so rerunning with unchanged inputs is instant.
//
// The returned [Route] is a self-contained report: the chosen stars with
// their names and locations, the total time, and per-location and
// per-course star counts. [ExportJSON] writes it under a timestamped name.
//
//	runner := route.NewRunner(cache.NewNullCache(), nil, logger)
//	r, err := runner.Run(ctx, cfg, cat, route.Options{Stars: 70})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(route.FormatDuration(r.Time))
package route
