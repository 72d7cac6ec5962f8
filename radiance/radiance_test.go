package radiance_test

import (
	"bytes"
	"fmt"
	"testing"

	"rgbe/radiance"
	"rgbe/texel"
)

func header(width, height int, extra string) []byte {
	buf := new(bytes.Buffer)
	buf.WriteString("#?RADIANCE\n")
	buf.WriteString("# made with a text editor\n")
	buf.WriteString(extra)
	buf.WriteString("FORMAT=32-bit_rle_rgbe\n\n")
	fmt.Fprintf(buf, "-Y %d +X %d\n", height, width)
	return buf.Bytes()
}

func decodeAll(t *testing.T, data []byte) (*radiance.Decoder, []texel.RGBE8) {
	t.Helper()
	dec, err := radiance.NewDecoder(bytes.NewBuffer(data))
	if err != nil {
		t.Fatal(err)
	}
	out := make([]texel.RGBE8, dec.Width()*dec.Height())
	err = dec.Read(func(i int, px texel.RGBE8) {
		out[i] = px
	})
	if err != nil {
		t.Fatal(err)
	}
	return dec, out
}

func TestDecodeFlat(t *testing.T) {
	// width 4 is below the adaptive RLE minimum, so scanlines are flat
	data := header(4, 2, "")
	pixels := []texel.RGBE8{
		{R: 10, G: 20, B: 30, E: 128},
		{R: 0, G: 0, B: 0, E: 0},
		{R: 255, G: 128, B: 64, E: 140},
		{R: 5, G: 5, B: 5, E: 120},
		{R: 90, G: 80, B: 70, E: 129},
		{R: 1, G: 2, B: 3, E: 131},
		{R: 200, G: 100, B: 50, E: 127},
		{R: 7, G: 8, B: 9, E: 126},
	}
	for _, px := range pixels {
		data = append(data, px.R, px.G, px.B, px.E)
	}

	dec, out := decodeAll(t, data)
	if dec.Width() != 4 || dec.Height() != 2 {
		t.Fatalf("size should be 4x2 but was %dx%d", dec.Width(), dec.Height())
	}
	for i, px := range pixels {
		if out[i] != px {
			t.Errorf("texel %d should be %+v but was %+v", i, px, out[i])
		}
	}
}

func TestDecodeOldRLE(t *testing.T) {
	data := header(6, 1, "")
	// one literal texel, then a (1,1,1,5) repeat record
	data = append(data, 10, 20, 30, 128)
	data = append(data, 1, 1, 1, 5)

	_, out := decodeAll(t, data)
	want := texel.RGBE8{R: 10, G: 20, B: 30, E: 128}
	for i := 0; i < 6; i++ {
		if out[i] != want {
			t.Errorf("texel %d should be %+v but was %+v", i, want, out[i])
		}
	}
}

func TestDecodeAdaptiveRLE(t *testing.T) {
	const width = 8
	data := header(width, 2, "EXPOSURE=2.0\n")

	// scanline of runs: every component plane is one 8-long run
	data = append(data, 2, 2, 0, width)
	for _, v := range []byte{10, 20, 30, 128} {
		data = append(data, 128+width, v)
	}

	// scanline of dumps: every component plane is 8 literals
	data = append(data, 2, 2, 0, width)
	for c := 0; c < 4; c++ {
		data = append(data, width)
		for x := 0; x < width; x++ {
			data = append(data, byte(c*width+x))
		}
	}

	dec, out := decodeAll(t, data)
	if dec.Exposure() != 2.0 {
		t.Errorf("exposure should be 2.0 but was %g", dec.Exposure())
	}

	want := texel.RGBE8{R: 10, G: 20, B: 30, E: 128}
	for x := 0; x < width; x++ {
		if out[x] != want {
			t.Errorf("texel %d should be %+v but was %+v", x, want, out[x])
		}
	}
	for x := 0; x < width; x++ {
		want := texel.RGBE8{
			R: byte(x),
			G: byte(width + x),
			B: byte(2*width + x),
			E: byte(3*width + x),
		}
		if out[width+x] != want {
			t.Errorf("texel %d should be %+v but was %+v", width+x, want, out[width+x])
		}
	}
}

func TestDecodeBadHeader(t *testing.T) {
	cases := [][]byte{
		[]byte("PNG\n"),
		[]byte("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n"),
		[]byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n+X 1 -Y 1\n"),
		[]byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 0 +X 4\n"),
	}
	for i, data := range cases {
		if _, err := radiance.NewDecoder(bytes.NewBuffer(data)); err == nil {
			t.Errorf("case %d should fail to decode", i)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := header(4, 2, "")
	data = append(data, 10, 20, 30, 128)

	dec, err := radiance.NewDecoder(bytes.NewBuffer(data))
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Read(func(i int, px texel.RGBE8) {}); err == nil {
		t.Fatal("decoding truncated scanlines should fail")
	}
}
