package rgbe

import "rgbe/texel"

// Texel is any of the fixed-size texel encodings.
type Texel interface {
	texel.RGBE8 | texel.RGB9E5 | texel.RGBA16F
}

// Image is a flat row-major texel buffer. len(Pix) == Width*Height is the
// caller's obligation when constructing one by hand.
type Image[T Texel] struct {
	Width, Height int
	Pix           []T
}

func NewImage[T Texel](width, height int) *Image[T] {
	return &Image[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// Index returns the flat index of the texel at (x, y).
func (img *Image[T]) Index(x, y int) int {
	return x + y*img.Width
}

func (img *Image[T]) Count() int {
	return img.Width * img.Height
}
