// hdr2rgbepng converts Radiance HDR images to RGBE8-format PNG files, and
// optionally to lz4-compressed RGB9E5 texture blobs for GPU loading.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"rgbe"
	"rgbe/texpak"
)

var (
	gpuFlag      = flag.Bool("gpu", false, "also write a repacked .r9e5 texture blob")
	compressFlag = flag.Int("compress", 1, "lz4 level for .r9e5 output, 0 fast to 9 best, -1 none")
)

const usageStr = `hdr2rgbepng converts Radiance HDR images to RGBE8-format PNG files.

Usage:

    hdr2rgbepng [flags] path.hdr

The RGBE8 PNG is written next to the input as path.rgbe.png, storing the
shared exponent in the alpha channel.

Flags:

    -gpu           also write path.r9e5, the texels repacked to the
                   RGB9E5 GPU texture format
    -compress=N    lz4 compression for the .r9e5 blob, 0 (fast) to
                   9 (best), or -1 for none (default 1)
`

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	if flag.NArg() != 1 {
		return errors.New("exactly one input filename is required")
	}
	path := flag.Arg(0)
	base := strings.TrimSuffix(path, ".hdr")

	img, err := rgbe.LoadRadianceFile(path)
	if err != nil {
		return err
	}

	if err := rgbe.SavePNGFile(base+".rgbe.png", img); err != nil {
		return err
	}

	if !*gpuFlag {
		return nil
	}

	gpu := rgbe.Repack(img)
	file, err := os.Create(base + ".r9e5")
	if err != nil {
		return err
	}

	tex := texpak.NewTex(gpu.Pix, gpu.Width, gpu.Height)
	if err := texpak.Encode(file, tex, texpak.OptCompress(*compressFlag)); err != nil {
		file.Close()
		return fmt.Errorf("could not encode %s.r9e5: %w", base, err)
	}
	return file.Close()
}
