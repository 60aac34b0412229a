package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/aiforms/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <form>",
	Short: "Fill a form interactively",
	Long: `Asks the questions of a form on the terminal. The form is a YAML file or the
name of a form in the forms directory. Type 'exit' to leave early.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cli.RunOptions{Form: args[0]}
		opts.Headless, _ = cmd.Flags().GetBool("headless")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Debug, _ = cmd.Flags().GetBool("debug")
		opts.Progress, _ = cmd.Flags().GetBool("progress")
		opts.Context, _ = cmd.Flags().GetString("context")

		return cli.Execute(cmd.Context(), cfg, opts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, plain output)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("debug", false, "Log every conversation step to stderr")
	runCmd.Flags().Bool("progress", false, "Show a progress bar before each question")
	runCmd.Flags().String("context", "", "Initial context as a JSON object (e.g. '{\"source\": \"cli\"}')")
}
