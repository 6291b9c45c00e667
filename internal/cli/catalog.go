package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func catalogCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the neighborhood catalog",
	}

	c.AddCommand(catalogSearchCmd(opts))
	return c
}

func catalogSearchCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Fuzzy search neighborhoods by name, district or id",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts, nil)
			if err != nil {
				return err
			}

			results := sess.catalog.Search(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "(no matches)")
				return nil
			}
			for i, n := range results {
				if limit > 0 && i >= limit {
					break
				}
				fmt.Fprintf(out, "%-16s %s (%s)  nearby %d\n", n.ID, n.Name, n.District, sess.catalog.NearbyCount(n.ID))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results (0 for all)")
	return cmd
}
