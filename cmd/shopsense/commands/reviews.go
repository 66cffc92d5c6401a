package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopsense/shopsense/internal/domain"
)

// NewReviewsCmd creates the reviews command.
func NewReviewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews <product-id>",
		Short: "Show a product's reviews with sentiment scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tables, err := a.catalog.Tables()
			if err != nil {
				return err
			}

			p, ok := tables.Products.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, args[0])
			}

			reviews := tables.Reviews.ForProducts([]string{p.ID()})
			if len(reviews) == 0 {
				fmt.Printf("No reviews for %s (%s).\n", p.ID(), p.Title())
				return nil
			}

			fmt.Printf("Reviews for %s (%s):\n", p.ID(), p.Title())
			for _, r := range reviews {
				fmt.Printf("  %d stars, sentiment %+.2f: %s\n",
					r.Stars, a.sentiment.Score(r.Text), r.Text)
			}
			return nil
		},
	}
	return cmd
}
