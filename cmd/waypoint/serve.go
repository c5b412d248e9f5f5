package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP bridge",
	Long: `Exposes tours over HTTP for browser front-ends. The browser polls or streams (/events)
the bridge state, performs the requested navigation and answers confirmation prompts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, closer, err := setup(cmd)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Serve(ctx, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	_ = v.BindPFlag("http.port", serveCmd.Flags().Lookup("port"))
}
