package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
	"github.com/XIBRO7247/CSC4010-Coursework-1/scheduler"
	"github.com/XIBRO7247/CSC4010-Coursework-1/search"
)

var runCmd = &cobra.Command{
	Use:   "run <input> <output> <search>",
	Short: "transform a raw file and report search palette matches",
	Args:  cobra.ExactArgs(3),
	RunE:  runPipeline,
}

func init() {
	f := runCmd.Flags()
	f.String("schedule", scheduler.ScheduleSequential,
		"dispatch strategy: sequential|static|dynamic|guided|atomic|tasks|tiles")
	f.Int("threads", 0, "worker count (0 = all CPUs)")
	f.Int("chunk", 0, "lines per claim for static/dynamic/guided (0 = kind default)")
	f.Int("tile", 0, "palette indices per tile for the tiles schedule (0 = default)")
	f.Int("linesize", 0, "split input into lines of this many pixels (0 = single line)")

	viper.BindPFlag("schedule", f.Lookup("schedule"))
	viper.BindPFlag("threads", f.Lookup("threads"))
	viper.BindPFlag("chunk", f.Lookup("chunk"))
	viper.BindPFlag("tile", f.Lookup("tile"))
}

func runPipeline(cmd *cobra.Command, args []string) error {
	inPath, outPath, searchPath := args[0], args[1], args[2]
	linesize, _ := cmd.Flags().GetInt("linesize")

	dispatcher, err := scheduler.New(scheduler.Config{
		Schedule: viper.GetString("schedule"),
		Threads:  viper.GetInt("threads"),
		Chunk:    viper.GetInt("chunk"),
		Tile:     viper.GetInt("tile"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Loading file %s\n", inPath)
	img, err := rawimage.Load(inPath, linesize)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded file with %d pixels, a line length of %d and a line count of %d.\n",
		img.Length, img.LineSize, img.Lines())

	fmt.Printf("Loading file %s\n", searchPath)
	pal, err := search.LoadPalette(searchPath)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d search term pixels\n", len(pal))

	fmt.Println("Processing Bleeding, Greyscale, XOR and Searching")
	start := time.Now()
	counts := dispatcher.Run(img, pal)
	fmt.Printf("%s: %.2f\n", dispatcher.Name(), time.Since(start).Seconds())

	fmt.Printf("Saving file %s\n", outPath)
	if err := rawimage.Save(outPath, img); err != nil {
		return err
	}

	fmt.Println("Search Results:")
	search.Report(os.Stdout, pal, counts)
	return nil
}
