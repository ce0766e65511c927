package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	// register WebP decoding for imaging.Open
	_ "golang.org/x/image/webp"

	"github.com/XIBRO7247/CSC4010-Coursework-1/rawimage"
)

var convertCmd = &cobra.Command{
	Use:   "convert <image> <output>",
	Short: "convert a PNG/JPEG/GIF/WebP image into raw pixel records",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().String("resize", "", "resize to WxH before converting")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	src, err := imaging.Open(inPath)
	if err != nil {
		return fmt.Errorf("cannot open %s for reading: %w", inPath, err)
	}

	if size, _ := cmd.Flags().GetString("resize"); size != "" {
		var w, h int
		if _, err := fmt.Sscanf(strings.ToLower(size), "%dx%d", &w, &h); err != nil || w < 1 || h < 1 {
			return fmt.Errorf("invalid --resize %q, want WxH", size)
		}
		src = imaging.Resize(src, w, h, imaging.Lanczos)
	}

	nrgba := imaging.Clone(src)
	width := nrgba.Rect.Dx()
	height := nrgba.Rect.Dy()
	img := rawimage.New(width*height, width)

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < height; y++ {
		y := y
		g.Go(func() error {
			line := img.Pixels[y]
			for x := 0; x < width; x++ {
				off := y*nrgba.Stride + x*4
				line[x] = rawimage.Pixel{
					Red:   int32(nrgba.Pix[off]),
					Green: int32(nrgba.Pix[off+1]),
					Blue:  int32(nrgba.Pix[off+2]),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := rawimage.Save(outPath, img); err != nil {
		return err
	}
	fmt.Printf("Converted %s (%dx%d) to %s\n", inPath, width, height, outPath)
	return nil
}
