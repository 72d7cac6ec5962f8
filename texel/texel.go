// Package texel implements the shared-exponent HDR texel formats RGBE8 and
// RGB9E5 and conversions between them, plain float32 triples, and
// half-precision RGBA16F.
//
// All conversions are total: every input, including zero, negative, or
// out-of-range channels, clamps to a defined output. Nothing in this
// package returns an error or panics.
package texel

import (
	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// RGBE8 is the Radiance picture texel: three 8-bit mantissas and a shared
// exponent with a bias of 128. Each channel decodes to mantissa/256 *
// 2^(E-128). The byte order r,g,b,e matches the Radiance file layout, so a
// texel slice can double as raw RGBA8 pixel data with the exponent stored
// in the alpha channel.
type RGBE8 struct {
	R, G, B, E uint8
}

// RGB9E5 is the rgb9e5ufloat GPU texture texel packed into one 32-bit
// word. Field order is LSB to MSB: 9 bits each of R, G, and B mantissa,
// then 5 bits of shared exponent with a bias of 15. Each channel decodes
// to mantissa/512 * 2^(E-15).
type RGB9E5 uint32

// RGBA16F is the rgba16float staging texel, four IEEE-754 half floats.
// The alpha channel is carried but ignored by conversions to the
// shared-exponent formats.
type RGBA16F struct {
	R, G, B, A float16.Float16
}

const (
	// Largest float magnitude representable by a 9-bit mantissa at the
	// maximum RGB9E5 exponent: 0x1FF/512 * 2^16.
	maxRGB9E5 = float32(0x1FF << 7)
	// Smallest max-channel value that still yields exponent field 0.
	minNormRGB9E5 = float32(1.0) / float32(1<<16)
)

// smallest positive normal float32
var minNormFloat32 = math32.Float32frombits(0x00800000)

// PackRGB9E5 clamps and packs a triple of RGB float values into an RGB9E5
// texel.
//
// Ported from the C++ example in the DirectX docs (MIT licensed)
// https://github.com/microsoft/DirectX-Graphics-Samples/blob/master/MiniEngine/Core/Color.cpp
func PackRGB9E5(rgb [3]float32) RGB9E5 {
	r := math32.Min(math32.Max(rgb[0], 0), maxRGB9E5)
	g := math32.Min(math32.Max(rgb[1], 0), maxRGB9E5)
	b := math32.Min(math32.Max(rgb[2], 0), maxRGB9E5)

	// The shared exponent comes from the maximum channel, no less than
	// 1.0*2^-16 so that an all-zero input still has a defined exponent.
	maxChannel := math32.Max(minNormRGB9E5, math32.Max(r, math32.Max(g, b)))

	// Add 15 to the max channel's exponent and 0x4000 (half a 9-bit-mantissa
	// ULP) to its mantissa so that rounding reaches the final exponent
	// before the mantissa is cleared.
	biasBits := (math32.Float32bits(maxChannel) + 0x07804000) & 0x7F800000
	bias := math32.Float32frombits(biasBits)

	// Adding the bias shifts each channel's implicit 1.0 bit and first 8
	// mantissa bits into the low 9 bits, rounding the truncated bits. A
	// channel with a smaller exponent than the max shifts further right,
	// which is exactly the alignment the shared exponent requires.
	rm := math32.Float32bits(r+bias) & 0x1FF
	gm := math32.Float32bits(g+bias) & 0x1FF
	bm := math32.Float32bits(b+bias) & 0x1FF

	// Move the bias exponent into the top 5 bits and correct for the
	// implicit bit. The add wraps to an exponent field of 0 at the minimum.
	e := (biasBits << 4) + 0x10000000

	// The channel sums carry junk above bit 8. Green and blue shift theirs
	// out to the left; only red needs an explicit mask.
	return RGB9E5(e | bm<<18 | gm<<9 | rm)
}

// Unpack expands the packed texel to individual floats. Packing rounds;
// unpacking is exact.
func (v RGB9E5) Unpack() [3]float32 {
	scale := math32.Ldexp(1.0, int((uint32(v)&0xF8000000)>>27)-15)
	r := float32(uint32(v)&0x1FF) * scale / 512.0
	g := float32((uint32(v)>>9)&0x1FF) * scale / 512.0
	b := float32((uint32(v)>>18)&0x1FF) * scale / 512.0
	return [3]float32{r, g, b}
}

// RGBA16F unpacks the texel and narrows it to half precision with alpha
// forced to 1.0. Every RGB9E5 value is exactly representable in half
// precision, so this direction is lossless.
func (v RGB9E5) RGBA16F() RGBA16F {
	rgb := v.Unpack()
	return RGBA16F{
		R: float16.Fromfloat32(rgb[0]),
		G: float16.Fromfloat32(rgb[1]),
		B: float16.Fromfloat32(rgb[2]),
		A: float16.Fromfloat32(1.0),
	}
}

// PackRGBE8 packs a triple of RGB float values into an RGBE8 texel.
// It is not as optimized as PackRGB9E5 since it is meant for tooling
// rather than asset loading.
func PackRGBE8(rgb [3]float32) RGBE8 {
	maxChannel := math32.Max(minNormFloat32, math32.Max(rgb[0], math32.Max(rgb[1], rgb[2])))
	// Round the max channel to 8 bits of precision, then take the next
	// power of two above it as the shared bias.
	biasBits := (math32.Float32bits(maxChannel) + 0x00808000) & 0x7F800000
	bias := math32.Float32frombits(biasBits)

	r := uint8(math32.Min(math32.Max(math32.Round(rgb[0]/bias*256.0), 0), 255))
	g := uint8(math32.Min(math32.Max(math32.Round(rgb[1]/bias*256.0), 0), 255))
	b := uint8(math32.Min(math32.Max(math32.Round(rgb[2]/bias*256.0), 0), 255))

	// The +1 together with the /256 channel scale implements the 128 bias
	// with mantissas in [0,1) of the exponent's range instead of [1,2).
	e := (biasBits >> 23) + 1
	if e > 255 {
		e = 255
	}

	return RGBE8{R: r, G: g, B: b, E: uint8(e)}
}

// Unpack expands the texel to individual floats. Packing rounds;
// unpacking is exact.
func (v RGBE8) Unpack() [3]float32 {
	scale := math32.Ldexp(1.0, int(v.E)-128)
	r := float32(v.R) / 256.0 * scale
	g := float32(v.G) / 256.0 * scale
	b := float32(v.B) / 256.0 * scale
	return [3]float32{r, g, b}
}

// RepackRGB9E5 converts the texel to RGB9E5. When the exponent lies in the
// overlap of the two formats the mantissas transplant directly: each 8-bit
// mantissa shifts left by one into its 9-bit field and the exponent is
// rebiased. Outside that range it falls back to unpack-then-pack, which
// saturates exponents RGB9E5 cannot represent.
func (v RGBE8) RepackRGB9E5() RGB9E5 {
	e := int32(v.E) - 128
	if e >= -15 && e <= 15 {
		e5 := uint32(e + 15)
		return RGB9E5(e5<<27 | uint32(v.B)<<19 | uint32(v.G)<<10 | uint32(v.R)<<1)
	}
	return PackRGB9E5(v.Unpack())
}

// RGBA16FFromFloats narrows a float RGBA quadruple to half precision.
func RGBA16FFromFloats(rgba [4]float32) RGBA16F {
	return RGBA16F{
		R: float16.Fromfloat32(rgba[0]),
		G: float16.Fromfloat32(rgba[1]),
		B: float16.Fromfloat32(rgba[2]),
		A: float16.Fromfloat32(rgba[3]),
	}
}

// Floats widens the texel to full float32 precision.
func (v RGBA16F) Floats() [4]float32 {
	return [4]float32{v.R.Float32(), v.G.Float32(), v.B.Float32(), v.A.Float32()}
}

// RGB9E5 widens the color channels, discards alpha and packs.
func (v RGBA16F) RGB9E5() RGB9E5 {
	return PackRGB9E5([3]float32{v.R.Float32(), v.G.Float32(), v.B.Float32()})
}

// RGBE8 widens the color channels, discards alpha and packs.
func (v RGBA16F) RGBE8() RGBE8 {
	return PackRGBE8([3]float32{v.R.Float32(), v.G.Float32(), v.B.Float32()})
}
