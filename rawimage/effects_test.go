package rawimage

import "testing"

func TestBleedFirstPixelUnchanged(t *testing.T) {
	line := []Pixel{{Red: 200, Green: 50, Blue: 0}, {Red: 1, Green: 2, Blue: 3}}
	Bleed(line, 0)
	if line[0] != (Pixel{Red: 200, Green: 50, Blue: 0}) {
		t.Fatalf("pixel 0 changed: %v", line[0])
	}
}

func TestBleedShortWindow(t *testing.T) {
	// p=1: window is exactly pixel 0.
	line := []Pixel{{Red: 10, Green: 10, Blue: 10}, {Red: 200, Green: 50, Blue: 0}}
	Bleed(line, 1)
	// red: 200 + (10-200)/3 = 200 - 63 = 137 (truncation toward zero)
	// green: 50 + (10-50)/3 = 50 - 13 = 37
	// blue: 0 + (10-0)/3 = 3
	want := Pixel{Red: 137, Green: 37, Blue: 3}
	if line[1] != want {
		t.Fatalf("got %v want %v", line[1], want)
	}
}

func TestBleedWindowBounds(t *testing.T) {
	// A lone bright pixel at index 0 and zeros elsewhere distinguishes
	// windows that do and do not reach back to it.
	freshLine := func() []Pixel {
		line := make([]Pixel, 16)
		line[0] = Pixel{Red: 255, Green: 255, Blue: 255}
		return line
	}

	// p=10: window [0,10) of length 10 still includes pixel 0.
	line := freshLine()
	Bleed(line, 10)
	// avg = 255/10 = 25, 0 + 25/3 = 8
	if want := (Pixel{Red: 8, Green: 8, Blue: 8}); line[10] != want {
		t.Fatalf("p=10: got %v want %v", line[10], want)
	}

	// p=11: window [1,11) has slid past pixel 0.
	line = freshLine()
	Bleed(line, 11)
	if line[11] != (Pixel{}) {
		t.Fatalf("p=11: got %v want zero pixel", line[11])
	}
}

func TestBleedWindowLengthEqualsP(t *testing.T) {
	// For p in [1,10) the window is all p predecessors.
	for p := 1; p < 10; p++ {
		line := make([]Pixel, 12)
		for i := 0; i < p; i++ {
			line[i] = Pixel{Red: 30, Green: 30, Blue: 30}
		}
		Bleed(line, p)
		// avg = 30, 0 + 30/3 = 10 regardless of window length
		if want := (Pixel{Red: 10, Green: 10, Blue: 10}); line[p] != want {
			t.Fatalf("p=%d: got %v want %v", p, line[p], want)
		}
	}
}

func TestGreyscale(t *testing.T) {
	for _, tc := range []struct {
		in   Pixel
		want int32
	}{
		{in: Pixel{Red: 10, Green: 20, Blue: 34}, want: 21}, // 64/3 truncates
		{in: Pixel{Red: 10, Green: 10, Blue: 10}, want: 10},
		{in: Pixel{Red: 0, Green: 0, Blue: 0}, want: 0},
		{in: Pixel{Red: -1, Green: 0, Blue: 0}, want: 0}, // truncation toward zero
	} {
		px := tc.in
		Greyscale(&px)
		if px.Red != tc.want || px.Green != tc.want || px.Blue != tc.want {
			t.Errorf("Greyscale(%v) = %v, want all channels %d", tc.in, px, tc.want)
		}
	}
}

func TestXOR(t *testing.T) {
	px := Pixel{Red: 10, Green: 59, Blue: 0}
	XOR(&px, 13)
	if want := (Pixel{Red: 7, Green: 54, Blue: 13}); px != want {
		t.Fatalf("got %v want %v", px, want)
	}
	XOR(&px, 13)
	if want := (Pixel{Red: 10, Green: 59, Blue: 0}); px != want {
		t.Fatalf("double XOR not identity: %v", px)
	}
}

func TestTransform(t *testing.T) {
	px := Pixel{Red: 137, Green: 37, Blue: 3}
	Transform(&px)
	// grey: 177/3 = 59, then 59^13 = 54
	if want := (Pixel{Red: 54, Green: 54, Blue: 54}); px != want {
		t.Fatalf("got %v want %v", px, want)
	}
}
