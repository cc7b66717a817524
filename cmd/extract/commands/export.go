package commands

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"steam-extract/pkg/export"

	"github.com/spf13/cobra"
)

func exportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <format> <app id or url>",
		Short: "Write an export document",
		Long:  "Formats: " + strings.Join(export.Names(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.Lookup(args[0])
			if err != nil {
				return fmt.Errorf("%q: %w (available: %s)", args[0], err, strings.Join(export.Names(), ", "))
			}

			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			state, err := refresh(cmd.Context(), e, args[1], opts.refresh)
			if err != nil {
				return err
			}
			if state.Error != "" {
				log.Printf("Store record unavailable, exporting scraped data only: %s", state.Error)
			}

			doc, err := format.Render(state.ExportInput())
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), output, format.Filename, doc)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "." for the format's default name, empty for stdout`)
	return cmd
}

func write(stdout io.Writer, output, defaultName, doc string) error {
	switch output {
	case "":
		_, err := io.WriteString(stdout, doc)
		return err
	case ".":
		output = defaultName
	}
	if err := os.WriteFile(output, []byte(doc), 0644); err != nil {
		return err
	}
	log.Printf("Saved %s", output)
	return nil
}
