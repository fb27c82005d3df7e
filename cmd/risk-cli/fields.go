package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"retention-workers/internal/models"
)

func fieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the attributes of a student record and their allowed values",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "FIELD\tGROUP\tDOMAIN\tDEFAULT")
			for _, f := range models.FormFields() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", f.Name, f.Group, domainOf(f), f.Default)
			}
			return w.Flush()
		},
	}
}

func domainOf(f models.FieldSpec) string {
	switch {
	case len(f.Options) > 0:
		return strings.Join(f.Options, " | ")
	case f.Control == models.ControlCheckbox:
		return "true | false"
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("%g..%g", *f.Min, *f.Max)
	default:
		return "-"
	}
}
