package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
)

var printCmd = &cobra.Command{
	Use:   "print <file>",
	Short: "dump a raw file to the terminal in (RRR,GGG,BBB) form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		linesize, _ := cmd.Flags().GetInt("linesize")
		img, err := rawimage.Load(args[0], linesize)
		if err != nil {
			return err
		}
		rawimage.Fprint(os.Stdout, img)
		return nil
	},
}

func init() {
	printCmd.Flags().Int("linesize", 0, "split into lines of this many pixels (0 = single line)")
}
