package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/log"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

var logger = log.New("loaders")

// ErrEmptyImage is returned for images without pixels
var ErrEmptyImage = errors.New("loaders: image has no pixels")

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Format string      // Decoder that read the data: png, jpeg, bmp, tiff or webp
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// LoadImage loads an image file and converts it to a Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Debugf("loaded %s image %s (%dx%d)", data.Format, filename, data.Width, data.Height)
	return data, nil
}

// DecodeImage decodes any registered image format from r. Channels are
// quantized to 8 bits and scaled by 1/255.
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.NRGBA)
			pixels[y*width+x] = core.NewVec3(
				float64(c.R)/255.0,
				float64(c.G)/255.0,
				float64(c.B)/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Format: format,
		Pixels: pixels,
	}, nil
}

// LoadImageTexture loads an image file as a texture
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels), nil
}
