//go:build !(js && wasm)

package main

import (
	"os"

	"github.com/cottand/coeffects/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "coeffects [subcommand]",
	Short:        "coeffects solves type and coeffect constraints",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.SolveCmd)
}
