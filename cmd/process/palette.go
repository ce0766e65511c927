package main

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
)

var paletteCmd = &cobra.Command{
	Use:   "palette <output>",
	Short: "generate a search palette of distinct colours",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalette,
}

func init() {
	paletteCmd.Flags().Int("count", 16, "number of palette entries")
	paletteCmd.Flags().String("style", "soft", "palette style: soft|happy|warm")
}

func runPalette(cmd *cobra.Command, args []string) error {
	outPath := args[0]
	count, _ := cmd.Flags().GetInt("count")
	style, _ := cmd.Flags().GetString("style")
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	var colors []colorful.Color
	var err error
	switch style {
	case "soft":
		colors, err = colorful.SoftPalette(count)
	case "happy":
		colors, err = colorful.HappyPalette(count)
	case "warm":
		colors, err = colorful.WarmPalette(count)
	default:
		return fmt.Errorf("unknown palette style %q", style)
	}
	if err != nil {
		return fmt.Errorf("generate %s palette: %w", style, err)
	}

	img := rawimage.New(len(colors), 0)
	for i, c := range colors {
		r, g, b := c.RGB255()
		img.Pixels[0][i] = rawimage.Pixel{Red: int32(r), Green: int32(g), Blue: int32(b)}
	}

	if err := rawimage.Save(outPath, img); err != nil {
		return err
	}
	fmt.Printf("Wrote %d search term pixels to %s\n", len(colors), outPath)
	return nil
}
