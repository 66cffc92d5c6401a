package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewIndexCmd creates the index command.
func NewIndexCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or refresh the product vector index",
		Long: `Build the vector index from the products table, or load the
persisted snapshot when its build signature still matches the data.

Use --force to re-embed everything regardless of the signature.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, cleanup, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			tables, err := a.catalog.Tables()
			if err != nil {
				return err
			}

			snap, err := a.index.BuildOrLoad(cmd.Context(), &tables.Products, force)
			if err != nil {
				return err
			}

			fmt.Printf("Index ready: %d entries, %d dimensions\n", snap.Len(), snap.Dimensions())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild even when the snapshot is current")
	return cmd
}
