package rgbe

import (
	"fmt"
	"io"
	"os"

	"rgbe/radiance"
	"rgbe/texel"
)

// DecodeRadiance reads a Radiance picture stream as an RGBE8 image.
func DecodeRadiance(r io.Reader) (*Image[texel.RGBE8], error) {
	dec, err := radiance.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	img := NewImage[texel.RGBE8](dec.Width(), dec.Height())
	err = dec.Read(func(i int, px texel.RGBE8) {
		img.Pix[i] = px
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeRadianceRGB9E5 reads a Radiance picture stream as a GPU-ready
// RGB9E5 image, repacking texels as they are decoded.
func DecodeRadianceRGB9E5(r io.Reader) (*Image[texel.RGB9E5], error) {
	dec, err := radiance.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	img := NewImage[texel.RGB9E5](dec.Width(), dec.Height())
	err = dec.Read(func(i int, px texel.RGBE8) {
		img.Pix[i] = px.RepackRGB9E5()
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// LoadRadianceFile loads a Radiance .hdr file.
func LoadRadianceFile(path string) (*Image[texel.RGBE8], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := DecodeRadiance(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, nil
}

// LoadRadianceFileRGB9E5 loads a Radiance .hdr file converted to RGB9E5.
func LoadRadianceFileRGB9E5(path string) (*Image[texel.RGB9E5], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := DecodeRadianceRGB9E5(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return img, nil
}
