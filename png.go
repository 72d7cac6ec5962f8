package rgbe

import (
	"fmt"
	goimg "image"
	"image/png"
	"io"
	"os"

	"rgbe/texel"
)

// EncodePNG writes an RGBE8 image as an RGBA8 PNG, with the shared
// exponent stored in the alpha channel. Loaded as a normal PNG the result
// preserves chroma but distorts luminance, which keeps thumbnailers
// somewhat useful for identification.
//
// PNG compression is slow, so this is meant for asset creation.
func EncodePNG(w io.Writer, img *Image[texel.RGBE8]) error {
	out := goimg.NewNRGBA(goimg.Rect(0, 0, img.Width, img.Height))
	for i, px := range img.Pix {
		out.Pix[i*4+0] = px.R
		out.Pix[i*4+1] = px.G
		out.Pix[i*4+2] = px.B
		out.Pix[i*4+3] = px.E
	}

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, out)
}

// DecodePNG reads an RGBA8 PNG written by EncodePNG back into RGBE8
// texels.
func DecodePNG(r io.Reader) (*Image[texel.RGBE8], error) {
	decoded, err := png.Decode(r)
	if err != nil {
		return nil, err
	}

	// 8-bit RGBA PNGs decode to NRGBA; opaque ones to RGBA, where an alpha
	// of 255 makes the premultiplied bytes identical anyway
	var pix []uint8
	switch in := decoded.(type) {
	case *goimg.NRGBA:
		pix = in.Pix
	case *goimg.RGBA:
		pix = in.Pix
	default:
		return nil, fmt.Errorf("png color layout %T does not hold rgbe texels", decoded)
	}

	bounds := decoded.Bounds()
	img := NewImage[texel.RGBE8](bounds.Dx(), bounds.Dy())
	for i := range img.Pix {
		img.Pix[i] = texel.RGBE8{
			R: pix[i*4+0],
			G: pix[i*4+1],
			B: pix[i*4+2],
			E: pix[i*4+3],
		}
	}
	return img, nil
}

// SavePNGFile writes an RGBE8 image to an RGBA8 PNG file.
func SavePNGFile(path string, img *Image[texel.RGBE8]) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := EncodePNG(file, img); err != nil {
		file.Close()
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	return file.Close()
}

// LoadPNGFile loads an RGBE8-format PNG file.
func LoadPNGFile(path string) (*Image[texel.RGBE8], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := DecodePNG(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, nil
}

// LoadPNGFileRGB9E5 loads an RGBE8-format PNG file repacked to RGB9E5.
// This is the intended path for loading HDR textures for use on the GPU.
func LoadPNGFileRGB9E5(path string) (*Image[texel.RGB9E5], error) {
	img, err := LoadPNGFile(path)
	if err != nil {
		return nil, err
	}
	return Repack(img), nil
}
