package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/pkg/tours"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [tour]",
	Short: "Walk through a tour in the terminal",
	Long: `Starts a tour in the terminal. Press enter to advance, p to go back and q to leave.
Without arguments the first-run setup tour is started.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closer, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		tourID := tours.Setup
		if len(args) > 0 {
			tourID = args[0]
		}
		width, _ := cmd.Flags().GetInt("width")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		if interactive {
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w < width {
				width = w
			}
		}

		return cli.RunTour(ctx, cfg, logger, tourID, cli.RunOptions{
			In:          os.Stdin,
			Out:         os.Stdout,
			Interactive: interactive,
			Width:       width,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("width", 72, "Popover width in columns")
}
