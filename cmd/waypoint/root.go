package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/spf13/cobra"
)

var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "waypoint",
	Short: "Waypoint runs guided onboarding tours",
	Long: `Waypoint walks new users through an application one step at a time.
Tours ship with the binary and can be extended with YAML files or Markdown documents.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("tours", "", "YAML file or directory with extra tours")
	rootCmd.PersistentFlags().String("markdown", "", "Markdown repository with extra tours")

	// Flags override the config file and WAYPOINT_* variables when set.
	_ = v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("tours.dir", rootCmd.PersistentFlags().Lookup("tours"))
	_ = v.BindPFlag("tours.markdown", rootCmd.PersistentFlags().Lookup("markdown"))
}

// setup loads the configuration and the logger shared by every command.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, io.Closer, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWith(v, path)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closer := cli.NewLogger(cfg.Log)
	return cfg, logger, closer, nil
}
