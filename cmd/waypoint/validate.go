package main

import (
	"fmt"

	loamAdapter "github.com/aretw0/waypoint/pkg/adapters/loam"
	"github.com/aretw0/waypoint/pkg/adapters/file"
	"github.com/aretw0/waypoint/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check tour definitions",
	Long: `Validates tour definitions without running them. path is a YAML file, a directory of
YAML files or, with --markdown-repo, a Markdown repository. Every problem is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		markdown, _ := cmd.Flags().GetBool("markdown-repo")

		var specs []schema.TourSpec
		var err error
		if markdown {
			var loader *loamAdapter.Loader
			loader, err = loamAdapter.Open(args[0])
			if err == nil {
				specs, err = loader.Tours(cmd.Context())
			}
		} else {
			specs, err = file.Load(args[0])
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, spec := range specs {
			if err := schema.Validate(spec); err != nil {
				failed++
				fmt.Fprintf(out, "✗ %s\n", spec.ID)
				for _, e := range schema.ValidationErrors(err) {
					fmt.Fprintf(out, "    %v\n", e)
				}
				continue
			}
			fmt.Fprintf(out, "✓ %s (%d steps)\n", spec.ID, len(spec.Steps))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d tours are invalid", failed, len(specs))
		}
		fmt.Fprintln(out, "Tours are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("markdown-repo", false, "Treat path as a Markdown repository")
}
