package main

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available tours",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closer, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		guide, cleanup, err := cli.NewGuide(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		out := cmd.OutOrStdout()
		for _, id := range guide.Tours() {
			spec, err := guide.Inspect(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-20s %d steps\n", id, len(spec.Steps))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
