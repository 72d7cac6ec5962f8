package texpak_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"rgbe/texel"
	"rgbe/texpak"
)

func randomTexels(count int) []texel.RGB9E5 {
	rng := rand.New(rand.NewSource(0))
	ret := make([]texel.RGB9E5, count)
	for i := range ret {
		ret[i] = texel.PackRGB9E5([3]float32{
			rng.Float32() * 100,
			rng.Float32() * 100,
			rng.Float32() * 100,
		})
	}
	return ret
}

func TestEncodeDecode(t *testing.T) {
	tex := texpak.NewTex(randomTexels(64*32), 64, 32)

	buf := new(bytes.Buffer)
	if err := texpak.Encode(buf, tex); err != nil {
		t.Fatal(err)
	}

	// header plus one word per texel
	if want := 20 + 64*32*4; buf.Len() != want {
		t.Errorf("uncompressed size should be %d but was %d", want, buf.Len())
	}

	got, err := texpak.Decode(buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Width != tex.Width || got.Height != tex.Height {
		t.Fatalf("decoded size should be %dx%d but was %dx%d", tex.Width, tex.Height, got.Width, got.Height)
	}

	for i := range tex.Texels {
		if got.Texels[i] != tex.Texels[i] {
			t.Fatalf("texel %d should be 0x%08X but was 0x%08X", i, uint32(tex.Texels[i]), uint32(got.Texels[i]))
		}
	}
}

func TestEncodeDecodeCompressed(t *testing.T) {
	tex := texpak.NewTex(randomTexels(64*64), 64, 64)

	for _, level := range []int{0, 1, 9} {
		buf := new(bytes.Buffer)
		if err := texpak.Encode(buf, tex, texpak.OptCompress(level)); err != nil {
			t.Fatal(err)
		}

		got, err := texpak.Decode(buf)
		if err != nil {
			t.Fatal(err)
		}

		for i := range tex.Texels {
			if got.Texels[i] != tex.Texels[i] {
				t.Fatalf("level %d texel %d should be 0x%08X but was 0x%08X",
					level, i, uint32(tex.Texels[i]), uint32(got.Texels[i]))
			}
		}
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tex := texpak.NewTex(randomTexels(16), 4, 4)
	buf := new(bytes.Buffer)
	if err := texpak.Encode(buf, tex); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	data[0] ^= 0xFF

	_, err := texpak.Decode(bytes.NewBuffer(data))
	if err == nil {
		t.Fatal("decoding a corrupt header should fail")
	}
	if !strings.Contains(err.Error(), "corrupt") {
		t.Errorf("error should mention corruption but was: %v", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	tex := texpak.NewTex(randomTexels(16), 4, 4)
	buf := new(bytes.Buffer)
	if err := texpak.Encode(buf, tex); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if _, err := texpak.Decode(bytes.NewBuffer(data[:len(data)-8])); err == nil {
		t.Fatal("decoding a truncated payload should fail")
	}
}
