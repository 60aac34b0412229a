package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/aiforms"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aiforms",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aiforms version %s\n", strings.TrimSpace(aiforms.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
