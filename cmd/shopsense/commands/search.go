package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search over the product catalog",
		Long: `Search the product index by meaning, without preference re-ranking.

Examples:
  shopsense search "noise cancelling headphones for travel"
  shopsense search --k 10 "budget laptop for students"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if k < 1 {
				return fmt.Errorf("--k must be at least 1")
			}

			a, cleanup, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tables, err := a.catalog.Tables()
			if err != nil {
				return err
			}

			snap, err := a.index.BuildOrLoad(cmd.Context(), &tables.Products, false)
			if err != nil {
				return err
			}

			results, err := a.retriever.Search(cmd.Context(), snap, args[0], k)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Println("No results.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPRICE\tSIMILARITY")
			for i := range results {
				r := &results[i]
				md := r.Meta()
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\n",
					r.ProductID(), md.Title, md.Category, md.Price, r.Similarity())
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&k, "k", 5, "Number of results")
	return cmd
}
