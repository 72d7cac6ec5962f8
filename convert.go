package rgbe

import (
	"runtime"

	"rgbe/texel"

	"golang.org/x/sync/errgroup"
)

// Texels are independent, so bulk conversion splits the buffer into
// segments and converts them concurrently. The segment size keeps
// scheduling overhead negligible next to the per-texel work.
const convertSegment = 1 << 16

func convertParallel[S, D Texel](src []S, dst []D, fn func(S) D) {
	if len(src) <= convertSegment {
		for i, v := range src {
			dst[i] = fn(v)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for start := 0; start < len(src); start += convertSegment {
		end := start + convertSegment
		if end > len(src) {
			end = len(src)
		}
		s, d := src[start:end], dst[start:end]
		g.Go(func() error {
			for i, v := range s {
				d[i] = fn(v)
			}
			return nil
		})
	}
	// conversions are total, the group carries no errors
	_ = g.Wait()
}

// Repack converts an RGBE8 image to RGB9E5, taking the mantissa-transplant
// fast path wherever the exponents allow.
func Repack(src *Image[texel.RGBE8]) *Image[texel.RGB9E5] {
	dst := NewImage[texel.RGB9E5](src.Width, src.Height)
	convertParallel(src.Pix, dst.Pix, texel.RGBE8.RepackRGB9E5)
	return dst
}

// Expand converts an RGB9E5 image to RGBA16F with alpha 1.0. This
// direction is lossless.
func Expand(src *Image[texel.RGB9E5]) *Image[texel.RGBA16F] {
	dst := NewImage[texel.RGBA16F](src.Width, src.Height)
	convertParallel(src.Pix, dst.Pix, texel.RGB9E5.RGBA16F)
	return dst
}

// PackRGB9E5 converts an RGBA16F image to RGB9E5, discarding alpha.
func PackRGB9E5(src *Image[texel.RGBA16F]) *Image[texel.RGB9E5] {
	dst := NewImage[texel.RGB9E5](src.Width, src.Height)
	convertParallel(src.Pix, dst.Pix, texel.RGBA16F.RGB9E5)
	return dst
}

// PackRGBE8 converts an RGBA16F image to RGBE8, discarding alpha.
func PackRGBE8(src *Image[texel.RGBA16F]) *Image[texel.RGBE8] {
	dst := NewImage[texel.RGBE8](src.Width, src.Height)
	convertParallel(src.Pix, dst.Pix, texel.RGBA16F.RGBE8)
	return dst
}
