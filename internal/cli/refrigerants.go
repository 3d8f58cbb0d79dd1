package cli

import (
	"github.com/spf13/cobra"

	"github.com/refcycle/vcrc/internal/report"
)

func newRefrigerantsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refrigerants",
		Short: "List the refrigerant catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.WriteRefrigerants(cmd.OutOrStdout())
		},
	}
}
