package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starroute/pkg/config"
	"github.com/matzehuels/starroute/pkg/route"
)

// graphFlags holds flag values for the graph command.
type graphFlags struct {
	cacheFlags
	config   string
	catalog  string
	format   string
	selected []string
	output   string
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var flags graphFlags

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the prerequisite graph",
		Long: `Render the prerequisites and 100 coin star combinations of a config as a
Graphviz graph. Selected stars, for example those of a computed route, are
highlighted.`,
		Example: `  starroute graph -o prerequisites.svg
  starroute graph --format dot --selected DDD1,DDD2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", config.DefaultPath, "star times config (TOML or YAML)")
	cmd.Flags().StringVar(&flags.catalog, "catalog", "", "course catalog YAML (default: built-in)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", route.FormatSVG, "output format: dot or svg")
	cmd.Flags().StringSliceVar(&flags.selected, "selected", nil, "stars to highlight")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: stdout)")
	flags.cacheFlags.register(cmd)

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{route.FormatDOT, route.FormatSVG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, flags graphFlags) error {
	cfg, cat, err := loadInputs(flags.config, flags.catalog)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, flags.cacheFlags)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	data, cached, err := runner.Graph(ctx, cfg, cat, flags.format, flags.selected)
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(flags.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	status := iconFresh
	if cached {
		status = iconCached
	}
	printSuccess("Rendered prerequisite graph %s", StyleDim.Render("("+status+")"))
	printFile(flags.output)
	return nil
}
