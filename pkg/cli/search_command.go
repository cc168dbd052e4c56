package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/github/gh-bundles/pkg/registry"
)

func newSearchCommand(app *App) *cobra.Command {
	var (
		sourceID string
		tag      string
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search bundles across every registered source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			}

			results, err := app.Manager.SearchBundles(cmd.Context(), registry.SearchQuery{
				SourceID: sourceID,
				Tag:      tag,
				Text:     text,
			})
			if err != nil {
				return fmt.Errorf("searching bundles: %w", err)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no bundles found")
				return nil
			}

			for _, c := range results {
				size := ""
				if c.Bundle.Size > 0 {
					size = " (" + humanize.Bytes(uint64(c.Bundle.Size)) + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s %-10s %s%s\n", c.Bundle.ID, c.Bundle.Version, c.Bundle.Description, size)
				if len(c.Versions) > 1 {
					versions := make([]string, 0, len(c.Versions))
					for _, v := range c.Versions {
						versions = append(versions, v.Version)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "    other versions: %v\n", versions)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceID, "source", "", "restrict results to one source")
	cmd.Flags().StringVar(&tag, "tag", "", "restrict results to bundles carrying this tag")
	return cmd
}
