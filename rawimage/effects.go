package rawimage

// BleedWindow is the number of pixels to the left that bleed into each pixel.
const BleedWindow = 10

// XORKey is the value every channel is XORed against after greyscaling.
const XORKey = 13

// Bleed blends pixel p of line towards the mean of up to BleedWindow pixels
// to its left, each channel moving by a third of the difference with
// truncating integer division. Pixel 0 has no window and is left unchanged.
//
// The window reads whatever values its pixels hold right now, so callers must
// process a line strictly left to right: pixel p sees its predecessors after
// their own bleed and colour transform, never before.
func Bleed(line []Pixel, p int) {
	if p == 0 {
		return
	}

	pixlen := BleedWindow
	start := 0
	if p > pixlen {
		start = p - pixlen
	} else {
		pixlen = p
	}

	var rav, gav, bav int32
	for i := start; i < p; i++ {
		rav += line[i].Red
		gav += line[i].Green
		bav += line[i].Blue
	}
	rav /= int32(pixlen)
	gav /= int32(pixlen)
	bav /= int32(pixlen)

	px := &line[p]
	px.Red += (rav - px.Red) / 3
	px.Green += (gav - px.Green) / 3
	px.Blue += (bav - px.Blue) / 3
}

// Greyscale replaces all three channels with their truncated integer mean.
func Greyscale(px *Pixel) {
	avg := (px.Red + px.Green + px.Blue) / 3
	px.Red = avg
	px.Green = avg
	px.Blue = avg
}

// XOR flips each channel of the pixel against val.
func XOR(px *Pixel, val int32) {
	px.Red ^= val
	px.Green ^= val
	px.Blue ^= val
}

// Transform applies the post-bleed colour transform: greyscale then XOR with
// XORKey. Pure per-pixel, safe on any goroutine once the pixel's bleed is
// done.
func Transform(px *Pixel) {
	Greyscale(px)
	XOR(px, XORKey)
}
