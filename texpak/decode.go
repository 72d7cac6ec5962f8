package texpak

import (
	"encoding/binary"
	"fmt"
	"io"

	"rgbe/libio"
	"rgbe/texel"

	"github.com/pierrec/lz4/v4"
)

func Decode(r io.Reader) (tex *Tex, err error) {
	var br *libio.BinaryReader
	var ok bool

	if br, ok = r.(*libio.BinaryReader); !ok {
		br = &libio.BinaryReader{
			Src:   r,
			Order: binary.LittleEndian,
		}

		defer func() {
			if br.Err != nil {
				if err == nil {
					err = br.Err
				} else {
					err = fmt.Errorf("%v: %w", err, br.Err)
				}
			}
		}()
	}

	header := TexHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected r9e5 header; byte 0x%08x", br.LastIndex)
	}

	if header.Check != MagicNumberR9E5 {
		return nil, fmt.Errorf("r9e5 header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != TexVersion1_000_000 {
		return nil, fmt.Errorf("r9e5 version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	pixr := br.Src
	if header.Compression == TexCompressionLZ4 || header.Compression == TexCompressionLZ4Fast {
		pixr = lz4.NewReader(br.Src)
	} else if header.Compression != TexCompressionNone {
		return nil, fmt.Errorf("r9e5 compression id %d unsupported; byte 0x%08x", header.Compression, br.LastIndex)
	}

	pixels := int(header.Width) * int(header.Height)
	data := make([]byte, pixels*4)
	_, err = io.ReadFull(pixr, data)
	if err != nil {
		return nil, fmt.Errorf("expected %d texels; %w", pixels, err)
	}

	texels := make([]texel.RGB9E5, pixels)
	for i := range texels {
		texels[i] = texel.RGB9E5(binary.LittleEndian.Uint32(data[i*4:]))
	}

	return NewTex(texels, int(header.Width), int(header.Height)), nil
}
