package commands

import (
	"fmt"
	"os"
	"os/signal"

	"steam-extract/pkg/pipeline"
	"steam-extract/pkg/scrapers/steamdb"
	"steam-extract/pkg/subject"

	"github.com/spf13/cobra"
)

func watchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <app id or url>",
		Short: "Re-read the catalog page until interrupted, printing section counts on change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := subject.Detect(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}

			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			// the catalog is read by the observer below, not by Refresh
			base, err := pipeline.NewService(e.client, nil).Refresh(ctx, appID, opts.refresh)
			if err != nil {
				return err
			}

			src, closeSrc, err := steamdb.SourceFor(ctx, e.loader, appID)
			if err != nil {
				return err
			}
			defer closeSrc()

			out := cmd.OutOrStdout()
			steamdb.Observe(ctx, src, e.cfg.ObserveInterval, func(snap steamdb.Snapshot) {
				state := pipeline.Apply(base, snap)
				fmt.Fprintf(out, "app %s: %d dlc, %d achievements, %d depots\n",
					state.AppID, len(state.Dlc), len(state.Achievements), len(state.Depots))
			})
			return nil
		},
	}
}
