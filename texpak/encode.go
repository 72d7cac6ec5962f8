package texpak

import (
	"encoding/binary"
	"fmt"
	"io"

	"rgbe/libio"
	"rgbe/texel"

	"github.com/pierrec/lz4/v4"
)

type EncodeContext struct {
	Compression TexCompression
	Writer      io.Writer
}

type EncodeOption func(ctx *EncodeContext) error

// OptCompress compresses the texel payload with lz4. Level 0 selects the
// fast encoder, 1 through 9 the corresponding compression levels. A
// negative level is a no-op.
func OptCompress(level int) EncodeOption {
	levels := []lz4.CompressionLevel{lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9}
	if level < 0 {
		return nil
	}

	if level >= len(levels) {
		level = len(levels) - 1
	}

	return func(ctx *EncodeContext) error {
		if ctx.Compression != TexCompressionNone {
			return fmt.Errorf("compression already configured")
		}
		lzw := lz4.NewWriter(ctx.Writer)
		lzw.Apply(lz4.CompressionLevelOption(levels[level]))
		if level == 0 {
			ctx.Compression = TexCompressionLZ4Fast
		} else {
			ctx.Compression = TexCompressionLZ4
		}
		ctx.Writer = lzw
		return nil
	}
}

func Encode(w io.Writer, tex *Tex, options ...EncodeOption) (err error) {
	var bw *libio.BinaryWriter
	var ok bool

	if bw, ok = w.(*libio.BinaryWriter); !ok {
		bw = &libio.BinaryWriter{
			Dst:   w,
			Order: binary.LittleEndian,
		}

		defer func() {
			if bw.Err != nil {
				if err == nil {
					err = bw.Err
				} else {
					err = fmt.Errorf("%v: %w", err, bw.Err)
				}
			}
		}()
	}

	ctx := EncodeContext{
		Writer: bw.Dst,
	}

	for _, opt := range options {
		if opt != nil {
			err = opt(&ctx)
			if err != nil {
				return err
			}
		}
	}

	header := TexHeader{
		Check:       MagicNumberR9E5,
		Version:     TexVersion1_000_000,
		Compression: ctx.Compression,
		Width:       uint32(tex.Width),
		Height:      uint32(tex.Height),
	}
	if !bw.WriteRef(&header) {
		return fmt.Errorf("could not write r9e5 header: %w", bw.Err)
	}

	if err := writeTexels(ctx.Writer, tex.Texels); err != nil {
		return fmt.Errorf("could not write r9e5 texels: %w", err)
	}

	if closer, ok := (ctx.Writer).(io.WriteCloser); ok {
		err = closer.Close()
		if err != nil {
			return err
		}
	}

	return nil
}

// writeTexels serializes texel words little-endian in 16 KiB chunks.
func writeTexels(w io.Writer, texels []texel.RGB9E5) error {
	const chunk = 4096
	buf := make([]byte, chunk*4)

	for i := 0; i < len(texels); i += chunk {
		j := i + chunk
		if j > len(texels) {
			j = len(texels)
		}

		n := 0
		for _, t := range texels[i:j] {
			binary.LittleEndian.PutUint32(buf[n:], uint32(t))
			n += 4
		}

		if _, err := w.Write(buf[:n]); err != nil {
			return err
		}
	}
	return nil
}
