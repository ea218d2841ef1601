package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <book-id>",
	Short: "Run the workflow for a single book",
	Long: `Run one book through the generation workflow and print the final
event. Gating flags in the datastore decide how far the run gets.

Examples:
  inkwell run 1f1e9a3c-2f64-4a5a-9d5d-6f6c1f2a7b90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		event, err := a.engine.Run(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(event)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
