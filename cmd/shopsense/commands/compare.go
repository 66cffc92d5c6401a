package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopsense/shopsense/internal/usecase/compare"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <product-id>...",
		Short: "Compare products attribute by attribute",
		Long: `Build a side-by-side comparison of catalog attributes and spec rows
for the given product ids. Only the first few ids are compared; attributes
with no value show as unavailable.

Example:
  shopsense compare P001 P002 P003`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.recommend.CompareByIDs(args)
			if err != nil {
				return err
			}
			printComparison(res)
			return nil
		},
	}
	return cmd
}

func printComparison(res compare.Result) {
	if len(res.Rows) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprint(w, "\nID\tTITLE\tCATEGORY\tPRICE")
	for _, col := range res.SpecColumns {
		fmt.Fprintf(w, "\t%s", col)
	}
	fmt.Fprintln(w)
	for _, row := range res.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s", row.ProductID, row.Title, row.Category, row.Price)
		for _, col := range res.SpecColumns {
			fmt.Fprintf(w, "\t%s", row.Specs[col])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
