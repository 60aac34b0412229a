package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/aiforms/internal/cli"
)

var orderCmd = &cobra.Command{
	Use:   "order <form>",
	Short: "Print the order the questions will be asked in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.PrintOrder(cmd.OutOrStdout(), cfg, args[0])
	},
}

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <form>",
	Short: "Export the form's dependency graph",
	Long:  `Outputs a Mermaid diagram (graph TD) of the form's fields, numbered in question order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return cli.PrintGraph(cmd.OutOrStdout(), cfg, args[0])
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [form...]",
	Short: "Check forms for consistency",
	Long: `Parses each form and checks that its dependencies can be ordered. Without
arguments every form of the forms directory is checked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cli.Validate(cmd.OutOrStdout(), cfg, args); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All forms are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(orderCmd, graphCmd, validateCmd)
}
