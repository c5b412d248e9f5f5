package main

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <tour>",
	Short: "Export a tour as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph LR) of the tour steps and the routes requested between them.`,
	Args:  cobra.ExactArgs(1),
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

		out, err := guide.Graph(args[0])
		if err != nil {
			if hint := guide.Suggest(args[0]); hint != "" {
				return fmt.Errorf("%w (did you mean '%s'?)", err, hint)
			}
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
