package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"citizensera.com/sera/internal/catalog"
	"citizensera.com/sera/internal/store"
)

func newCatalogCmd() *cobra.Command {
	var (
		category string
		query    string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the benefit catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := catalog.Category(strings.ToLower(category))
			if !catalog.ValidCategory(c) {
				return fmt.Errorf("unknown category %q", category)
			}
			order, ok := store.ParseSortOrder(sortBy)
			if !ok {
				return fmt.Errorf("unknown sort %q (want match, value or deadline)", sortBy)
			}

			s, err := store.NewSQLiteStore(":memory:")
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.LoadBenefits(cmd.Context(), catalog.Benefits()); err != nil {
				return err
			}

			benefits, err := s.ListBenefits(cmd.Context(), store.BenefitFilter{Category: c, Query: query, Sort: order})
			if err != nil {
				return err
			}
			return printCatalog(cmd.OutOrStdout(), benefits)
		},
	}

	cmd.Flags().StringVar(&category, "category", string(catalog.CategoryAll), "filter by category")
	cmd.Flags().StringVarP(&query, "query", "q", "", "search titles and descriptions")
	cmd.Flags().StringVar(&sortBy, "sort", string(store.SortByMatch), "sort by match, value or deadline")
	return cmd
}

func printCatalog(out io.Writer, benefits []catalog.Benefit) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tMATCH\tVALUE\tDEADLINE")
	for _, b := range benefits {
		value, deadline := "-", "-"
		if b.EstimatedValue > 0 {
			value = catalog.FormatAUD(b.EstimatedValue)
		}
		if b.Deadline != "" {
			deadline = b.Deadline
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\t%s\n", b.ID, b.Title, b.Category, b.EligibilityMatch, value, deadline)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d benefits, total estimated value %s\n", len(benefits), catalog.FormatAUD(store.TotalValue(benefits)))
	return err
}
