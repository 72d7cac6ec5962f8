// Package radiance decodes Radiance picture (.hdr) streams into RGBE8
// texels. Only the common 32-bit_rle_rgbe format with the -Y +X scanline
// ordering is supported; flat, old-style and adaptive run-length scanlines
// are all accepted.
//
// See: https://www.graphics.cornell.edu/~bjw/rgbe/rgbe.c
package radiance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rgbe/texel"
)

type Decoder struct {
	br       *bufio.Reader
	width    int
	height   int
	exposure float32
}

// NewDecoder reads the header, leaving the stream positioned at the first
// scanline.
func NewDecoder(r io.Reader) (*Decoder, error) {
	d := &Decoder{
		br:       bufio.NewReader(r),
		exposure: 1,
	}

	sig, err := readHeaderLine(d.br)
	if err != nil {
		return nil, fmt.Errorf("could not read radiance signature: %w", err)
	}
	if !strings.HasPrefix(sig, "#?") {
		return nil, fmt.Errorf("not a radiance picture; signature %q", sig)
	}

	format := ""
	for {
		line, err := readHeaderLine(d.br)
		if err != nil {
			return nil, fmt.Errorf("could not read radiance header: %w", err)
		}
		if line == "" {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if v, ok := strings.CutPrefix(line, "FORMAT="); ok {
			format = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(line, "EXPOSURE="); ok {
			e, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
			if err != nil {
				return nil, fmt.Errorf("bad exposure %q: %w", v, err)
			}
			// cumulative over multiple EXPOSURE lines
			d.exposure *= float32(e)
		}
		// other header variables don't affect decoding
	}

	if format != "32-bit_rle_rgbe" {
		return nil, fmt.Errorf("radiance format %q unsupported", format)
	}

	res, err := readHeaderLine(d.br)
	if err != nil {
		return nil, fmt.Errorf("could not read resolution line: %w", err)
	}
	if _, err := fmt.Sscanf(res, "-Y %d +X %d", &d.height, &d.width); err != nil {
		return nil, fmt.Errorf("resolution %q unsupported", res)
	}
	if d.width <= 0 || d.height <= 0 {
		return nil, fmt.Errorf("resolution %q invalid", res)
	}

	return d, nil
}

func (d *Decoder) Width() int { return d.width }

func (d *Decoder) Height() int { return d.height }

// Exposure is the cumulative EXPOSURE header value, 1 when absent. Texels
// are returned unscaled; dividing by it recovers absolute radiance.
func (d *Decoder) Exposure() float32 { return d.exposure }

// Read decodes all scanlines, calling fn once per texel in row-major
// order. i is the flat texel index. Read consumes the stream and can only
// be called once.
func (d *Decoder) Read(fn func(i int, px texel.RGBE8)) error {
	scan := make([]byte, d.width*4)
	for y := 0; y < d.height; y++ {
		if err := d.readScanline(scan); err != nil {
			return fmt.Errorf("scanline %d: %w", y, err)
		}
		base := y * d.width
		for x := 0; x < d.width; x++ {
			fn(base+x, texel.RGBE8{
				R: scan[x*4+0],
				G: scan[x*4+1],
				B: scan[x*4+2],
				E: scan[x*4+3],
			})
		}
	}
	return nil
}

func (d *Decoder) readScanline(scan []byte) error {
	var head [4]byte
	if _, err := io.ReadFull(d.br, head[:]); err != nil {
		return err
	}

	// adaptive RLE is only defined for widths in [8, 0x7fff]
	if head[0] == 2 && head[1] == 2 && head[2]&0x80 == 0 && d.width >= 8 && d.width <= 0x7fff {
		if w := int(head[2])<<8 | int(head[3]); w != d.width {
			return fmt.Errorf("encoded length %d does not match width %d", w, d.width)
		}
		return d.readComponents(scan)
	}

	return d.readFlat(scan, head)
}

// readComponents decodes an adaptive run-length scanline: four separately
// encoded component planes of runs and dumps.
func (d *Decoder) readComponents(scan []byte) error {
	for c := 0; c < 4; c++ {
		for x := 0; x < d.width; {
			n, err := d.br.ReadByte()
			if err != nil {
				return err
			}
			if n > 128 {
				// a run of the next byte
				v, err := d.br.ReadByte()
				if err != nil {
					return err
				}
				count := int(n) - 128
				if x+count > d.width {
					return fmt.Errorf("run of %d overflows scanline", count)
				}
				for i := 0; i < count; i++ {
					scan[(x+i)*4+c] = v
				}
				x += count
			} else {
				count := int(n)
				if count == 0 {
					return fmt.Errorf("zero length dump")
				}
				if x+count > d.width {
					return fmt.Errorf("dump of %d overflows scanline", count)
				}
				for i := 0; i < count; i++ {
					v, err := d.br.ReadByte()
					if err != nil {
						return err
					}
					scan[(x+i)*4+c] = v
				}
				x += count
			}
		}
	}
	return nil
}

// readFlat decodes uncompressed texels, honoring old-style (1,1,1,n)
// repeat records. head is the already consumed first texel.
func (d *Decoder) readFlat(scan []byte, head [4]byte) error {
	px := head
	shift := 0
	for x := 0; x < d.width; {
		if px[0] == 1 && px[1] == 1 && px[2] == 1 {
			if x == 0 {
				return fmt.Errorf("repeat record with no previous texel")
			}
			count := int(px[3]) << shift
			if x+count > d.width {
				return fmt.Errorf("repeat of %d overflows scanline", count)
			}
			prev := scan[(x-1)*4 : x*4 : x*4]
			for i := 0; i < count; i++ {
				copy(scan[(x+i)*4:], prev)
			}
			x += count
			shift += 8
		} else {
			copy(scan[x*4:], px[:])
			x++
			shift = 0
		}

		if x < d.width {
			if _, err := io.ReadFull(d.br, px[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// readHeaderLine reads one newline-terminated header line without the
// terminator. Radiance headers are short; an unreasonably long line means
// the input is not a header at all.
func readHeaderLine(br *bufio.Reader) (string, error) {
	const maxLine = 256
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	if len(line) > maxLine {
		return "", fmt.Errorf("header line too long")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
