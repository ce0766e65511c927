// Package rawimage loads, transforms and stores raw RGB pixel data files.
//
// A raw file is a headerless sequence of fixed-size pixel records, each three
// little-endian int32 channel values, written row-major. Files whose name ends
// in ".zst" are read and written through zstd.
package rawimage

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// PixelSize is the on-disk size of one pixel record in bytes.
const PixelSize = 12

// Pixel is one RGB sample. Channels are logically 8-bit but carried as int32
// so that averaging arithmetic can swing outside [0,255] without clamping,
// matching the record format on disk.
type Pixel struct {
	Red, Green, Blue int32
}

// Image is raw pixel data split into lines of equal size.
type Image struct {
	Length   int // total pixels including any zero padding on the last line
	LineSize int
	Pixels   [][]Pixel
}

// Lines returns the line count.
func (img *Image) Lines() int { return len(img.Pixels) }

// New allocates a zeroed image for length pixels split into lines of
// linesize. linesize 0 puts everything on a single line. When linesize does
// not divide length evenly a final padded line is added, so Length is always
// lines*linesize.
func New(length, linesize int) *Image {
	lines := 1
	if linesize == 0 {
		linesize = length
	} else {
		lines = length / linesize
		if rem := length - lines*linesize; rem > 0 {
			lines++
			length += linesize - rem
		}
	}

	img := &Image{Length: length, LineSize: linesize, Pixels: make([][]Pixel, lines)}
	for l := range img.Pixels {
		img.Pixels[l] = make([]Pixel, linesize)
	}
	return img
}

// NewRandom allocates an image filled from rng, one value in [0,255) per
// channel. Used by benchmarks and equivalence tests.
func NewRandom(length, linesize int, rng *rand.Rand) *Image {
	img := New(length, linesize)
	for l := range img.Pixels {
		for p := range img.Pixels[l] {
			img.Pixels[l][p] = Pixel{
				Red:   rng.Int31n(255),
				Green: rng.Int31n(255),
				Blue:  rng.Int31n(255),
			}
		}
	}
	return img
}

// Load reads a raw file into an image split into lines of linesize
// (0 means a single line). A trailing partial line is zero-padded.
func Load(path string, linesize int) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for reading: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader for %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	length := len(data) / PixelSize
	img := New(length, linesize)

	loaded := 0
	for l := range img.Pixels {
		for p := range img.Pixels[l] {
			if loaded >= length {
				break // remainder of the line stays zero
			}
			off := loaded * PixelSize
			img.Pixels[l][p] = Pixel{
				Red:   int32(binary.LittleEndian.Uint32(data[off:])),
				Green: int32(binary.LittleEndian.Uint32(data[off+4:])),
				Blue:  int32(binary.LittleEndian.Uint32(data[off+8:])),
			}
			loaded++
		}
	}
	return img, nil
}

// Save writes every pixel of the image, padding included, as raw records.
func Save(path string, img *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot open %s for writing: %w", path, err)
	}
	defer f.Close()

	var w io.Writer
	var bw *bufio.Writer
	var zw *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("zstd writer for %s: %w", path, err)
		}
		w = zw
	} else {
		bw = bufio.NewWriter(f)
		w = bw
	}

	var rec [PixelSize]byte
	for _, line := range img.Pixels {
		for _, px := range line {
			binary.LittleEndian.PutUint32(rec[0:], uint32(px.Red))
			binary.LittleEndian.PutUint32(rec[4:], uint32(px.Green))
			binary.LittleEndian.PutUint32(rec[8:], uint32(px.Blue))
			if _, err := w.Write(rec[:]); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finish %s: %w", path, err)
		}
	} else if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// FormatRGBValue renders a channel value padded to three columns, the layout
// the search report and terminal dump both use. Values below 100 and below 10
// each gain one leading space, so negatives pad as if the sign were free:
// -7 becomes "  -7", not " -7".
func FormatRGBValue(v int32) string {
	pad := ""
	if v < 100 {
		pad += " "
	}
	if v < 10 {
		pad += " "
	}
	return pad + strconv.FormatInt(int64(v), 10)
}

// Fprint dumps the image to w in (RRR,GGG,BBB) form, one line per line.
// Caution on big images.
func Fprint(w io.Writer, img *Image) {
	for _, line := range img.Pixels {
		for _, px := range line {
			fmt.Fprintf(w, "(%s,%s,%s) ",
				FormatRGBValue(px.Red), FormatRGBValue(px.Green), FormatRGBValue(px.Blue))
		}
		fmt.Fprintln(w)
	}
}
