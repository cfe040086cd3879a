package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/config"
	"github.com/matzehuels/starroute/pkg/route"
)

// optimizeFlags holds flag values for the optimize command.
type optimizeFlags struct {
	cacheFlags
	config         string
	catalog        string
	stars          int
	maxUpperLevel  int
	excludeCourses []string
	excludeStars   []string
	outputDir      string
	noExport       bool
	refresh        bool
	interactive    bool
}

// options converts the flags to route options. The upper level limit is
// only set when the flag was given.
func (f optimizeFlags) options(quotaSet bool) route.Options {
	opts := route.Options{
		Stars:            f.stars,
		ExcludeCourseIDs: f.excludeCourses,
		ExcludeStarIDs:   f.excludeStars,
		Refresh:          f.refresh,
	}
	if quotaSet {
		q := f.maxUpperLevel
		opts.MaxUpperLevelStars = &q
	}
	return opts
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var flags optimizeFlags

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Compute the fastest route from your star times",
		Long: `Compute the route with the lowest total time.

Star times, 100 coin star combinations and prerequisites are read from the
config file. The route always contains DDD1 (or its 100 coin alternative) and
is written as JSON to the output directory.`,
		Example: `  # 70 star route from config.toml
  starroute optimize

  # 16 stars without Tick Tock Clock, at most 2 stars upstairs or in the tippy
  starroute optimize --stars 16 --exclude-course-ids TTC --max-upper-level-stars 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quotaSet := cmd.Flags().Changed("max-upper-level-stars")
			return c.runOptimize(cmd.Context(), flags, flags.options(quotaSet))
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", config.DefaultPath, "star times config (TOML or YAML)")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "course catalog YAML (default: built-in)")
	cmd.Flags().IntVarP(&flags.stars, "stars", "n", catalog.DefaultRouteSize, "number of stars in the route")
	cmd.Flags().IntVar(&flags.maxUpperLevel, "max-upper-level-stars", 0, "maximum stars from upstairs and the tippy (default: no limit)")
	cmd.Flags().StringSliceVar(&flags.excludeCourses, "exclude-course-ids", nil, "courses to leave out (e.g. TTC,RR)")
	cmd.Flags().StringSliceVar(&flags.excludeStars, "exclude-star-ids", nil, "stars to leave out (e.g. BOB_100,WF3)")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", route.DefaultOutputDir, "directory for the exported route")
	cmd.Flags().BoolVar(&flags.noExport, "no-export", false, "do not write the route to the output directory")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even if the route is cached")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse the route interactively")
	flags.cacheFlags.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("exclude-course-ids", completeCourseIDs)

	return cmd
}

func (c *CLI) runOptimize(ctx context.Context, flags optimizeFlags, opts route.Options) error {
	logger := loggerFromContext(ctx)

	cfg, cat, err := loadInputs(flags.config, flags.catalog)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, flags.cacheFlags)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Optimizing %d star route...", opts.Stars))
	spinner.Start()
	rt, err := runner.Run(ctx, route.Input{Config: cfg, Catalog: cat, Options: opts})
	if err != nil {
		spinner.StopWithError("No route")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Optimized %d star route", rt.Units))

	var path string
	if !flags.noExport {
		if path, err = route.ExportJSON(rt, flags.outputDir); err != nil {
			return err
		}
	}

	if flags.interactive {
		if err := browseRoute(ctx, rt); err != nil {
			return err
		}
	} else {
		printRouteSummary(os.Stdout, rt)
	}

	printSuccess("Route time %s", StyleNumber.Render(route.FormatDuration(rt.Time)))
	printRouteStats(rt)
	printKeyValue("Config", flags.config)
	printKeyValue("Upper level", fmt.Sprintf("%d of at most %d", rt.UpperLevelUnits(), rt.Options.Quota()))
	if rt.Cached {
		printWarning("Loaded from cache; pass --refresh to recompute")
	}
	if path != "" {
		printFile(path)
	}
	printNextStep("Render the prerequisite graph", fmt.Sprintf("%s graph --config %s --selected %s", appName, flags.config, joinIDs(rt.IDs())))
	return nil
}

// completeCourseIDs completes course ids from the built-in catalog.
func completeCourseIDs(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cat.CourseIDs(true), cobra.ShellCompDirectiveNoFileComp
}
