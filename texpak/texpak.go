// Package texpak reads and writes .r9e5 files: flat RGB9E5 texel blobs
// with a small header, optionally lz4 compressed. The format exists so an
// asset pipeline can cache GPU-ready textures next to their RGBE8 PNG
// sources and upload them without any per-texel work.
package texpak

import "rgbe/texel"

const MagicNumberR9E5 = 0x39453552

type TexVersion uint32

const (
	TexVersion1_000_000 = TexVersion(1_000_000)
)

type TexCompression uint32

const (
	TexCompressionNone = TexCompression(iota)
	TexCompressionLZ4Fast
	TexCompressionLZ4
)

type TexHeader struct {
	Check       uint32
	Version     TexVersion
	Compression TexCompression
	Width       uint32
	Height      uint32
}

// Tex is a width*height texel blob in row-major order.
type Tex struct {
	Width, Height int
	Texels        []texel.RGB9E5
}

func NewTex(texels []texel.RGB9E5, width, height int) *Tex {
	return &Tex{
		Width:  width,
		Height: height,
		Texels: texels,
	}
}
