package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopsense/shopsense/internal/domain/prefs"
)

// NewRecommendCmd creates the recommend command.
func NewRecommendCmd() *cobra.Command {
	var (
		k        int
		category string
		minPrice float64
		maxPrice float64
		keywords string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Recommend products for a query and preference set",
		Long: `Run the full pipeline: semantic retrieval, preference re-ranking,
summary, spec comparison, and a review sentiment sample.

Examples:
  shopsense recommend "headphones for long flights"
  shopsense recommend --category Headphones --max-price 20000 "noise cancelling"
  shopsense recommend --keywords "wireless, waterproof" "earbuds for running"`,
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

			if !cmd.Flags().Changed("max-price") {
				// An unset upper bound must not exclude anything. The
				// inverted band disables the price criterion entirely.
				maxPrice = -1
			}
			p := prefs.New(category, minPrice, maxPrice, keywords)

			rec, err := a.recommend.Recommend(cmd.Context(), args[0], p, k)
			if err != nil {
				return err
			}

			fmt.Println(rec.Summary)

			if verbose {
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "\nID\tSIMILARITY\tPREFERENCE\tFINAL")
				for i := range rec.Items {
					r := &rec.Items[i]
					fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n",
						r.ProductID(), r.Similarity(), r.PreferenceScore(), r.FinalScore())
				}
				w.Flush()

				printComparison(rec.Comparison)

				if len(rec.ReviewSample) > 0 {
					fmt.Println("\nReview sample:")
					for _, sr := range rec.ReviewSample {
						fmt.Printf("  [%s] %d stars, sentiment %+.2f: %s\n",
							sr.Review.ProductID, sr.Review.Stars, sr.Sentiment, sr.Review.Text)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&k, "k", 5, "Number of recommendations")
	cmd.Flags().StringVar(&category, "category", "", "Preferred category (empty or 'any' matches all)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price (unset means no upper bound)")
	cmd.Flags().StringVar(&keywords, "keywords", "", "Comma separated feature keywords")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print scores, comparison, and review sample")
	return cmd
}
