package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Format identifies an output image encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ParseFormat resolves a format name, or the extension of a file name, to a Format
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimPrefix(ext, ".")
	}
	switch Format(name) {
	case FormatPNG, FormatPPM:
		return Format(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Vec3ToColor converts a linear color to 8-bit RGBA using gamma 2
// and the [0, 0.999] clamp of the PPM writer, so both encoders agree
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(colorVec.X),
		G: quantize(colorVec.Y),
		B: quantize(colorVec.Z),
		A: 255,
	}
}

// quantize applies gamma 2 then maps [0, 1) to [0, 255]
func quantize(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	return uint8(256 * core.Clamp(math.Sqrt(c), 0.0, 0.999))
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatPPM:
		return WritePPM(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WritePPM writes img as a plain-text P3 portable pixmap, top row first
func WritePPM(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// SaveImage writes img to path, picking the encoding from format or, when
// format is empty, from the file extension
func SaveImage(path string, img image.Image, format Format) (err error) {
	if format == "" {
		if format, err = ParseFormat(path); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	if err = Encode(file, img, format); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
