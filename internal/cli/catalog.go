package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// catalogCommand creates the catalog command.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		path          string
		includeCastle bool
		dump          bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List courses and stars",
		Long: `List every star with its location and the number of stars required to
reach it. Use --dump to print the catalog as YAML, a starting point for a
custom --catalog file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(path)
			if err != nil {
				return err
			}
			if dump {
				enc := yaml.NewEncoder(os.Stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(cat)
			}
			fmt.Println(courseTable(cat, includeCastle))
			printDetail("%d courses, %d stars, %d 100 coin stars",
				len(cat.CourseIDs(includeCastle)), len(cat.StarIDs(includeCastle)), len(cat.HundredCoinIDs()))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "course catalog YAML (default: built-in)")
	cmd.Flags().BoolVar(&includeCastle, "castle", true, "include castle stars")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the catalog as YAML")

	return cmd
}
