// Command process transforms raw RGB data files (bleed, greyscale, XOR) and
// counts occurrences of a search palette before and after the transform.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:           "process",
	Short:         "raw image transform and palette search pipeline",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// PROCESS_SCHEDULE, PROCESS_THREADS, PROCESS_CHUNK, PROCESS_TILE select
	// the dispatch strategy without recompiling, like OMP_SCHEDULE did for
	// the original experiments. Flags win over environment.
	viper.SetEnvPrefix("process")
	viper.AutomaticEnv()

	rootCmd.AddCommand(runCmd, convertCmd, paletteCmd, printCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
