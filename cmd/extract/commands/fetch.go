package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func fetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <app id or url>",
		Short: "Print the reconciled record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			state, err := refresh(cmd.Context(), e, args[0], opts.refresh)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(state)
		},
	}
}
