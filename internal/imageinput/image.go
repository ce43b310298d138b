// Package imageinput turns a user-supplied file into a MealImage: it checks
// that the file really is an image, fixes its EXIF orientation and scales it
// down before it is sent to the model.
package imageinput

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Rorical/NutriVision/internal/nutrition"
)

// ErrNotImage is returned for files whose content is not an image.
var ErrNotImage = errors.New("file is not an image")

const jpegQuality = 85

// Loader reads and prepares meal photos.
type Loader struct {
	// MaxDimension bounds the longer side of prepared images. Zero keeps
	// the original size.
	MaxDimension int
	log          log.Interface
}

// NewLoader creates a Loader.
func NewLoader(maxDimension int, logger log.Interface) *Loader {
	return &Loader{MaxDimension: maxDimension, log: logger}
}

// Load reads the file at path and prepares it.
func (l *Loader) Load(path string) (nutrition.MealImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nutrition.MealImage{}, fmt.Errorf("read image: %w", err)
	}
	return l.Prepare(data)
}

// Prepare validates data and returns it ready for analysis. Images that are
// upright and within MaxDimension are returned byte for byte; others are
// rotated and scaled and re-encoded as JPEG. Image types the decoder does
// not know are passed through unchanged.
func (l *Loader) Prepare(data []byte) (nutrition.MealImage, error) {
	mimeType := mimetype.Detect(data).String()
	if !strings.HasPrefix(mimeType, "image/") {
		return nutrition.MealImage{}, fmt.Errorf("%w: detected %s", ErrNotImage, mimeType)
	}
	original := nutrition.MealImage{Data: data, MIMEType: mimeType}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		l.log.WithField("mime_type", mimeType).Debug("image type not decodable, sending as is")
		return original, nil
	}

	orientation := Orientation(data)
	if orientation == 1 && !l.tooLarge(cfg.Width, cfg.Height) {
		return original, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nutrition.MealImage{}, fmt.Errorf("decode image: %w", err)
	}
	img = Orient(img, orientation)
	img = l.scale(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nutrition.MealImage{}, fmt.Errorf("encode image: %w", err)
	}

	bounds := img.Bounds()
	l.log.WithFields(log.Fields{
		"orientation": orientation,
		"original":    fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"prepared":    fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"bytes_in":    len(data),
		"bytes_out":   buf.Len(),
	}).Info("image prepared")

	return nutrition.MealImage{Data: buf.Bytes(), MIMEType: "image/jpeg"}, nil
}

func (l *Loader) tooLarge(width, height int) bool {
	return l.MaxDimension > 0 && (width > l.MaxDimension || height > l.MaxDimension)
}

func (l *Loader) scale(img image.Image) image.Image {
	b := img.Bounds()
	if !l.tooLarge(b.Dx(), b.Dy()) {
		return img
	}

	width, height := l.MaxDimension, l.MaxDimension
	if b.Dx() >= b.Dy() {
		height = max(1, b.Dy()*l.MaxDimension/b.Dx())
	} else {
		width = max(1, b.Dx()*l.MaxDimension/b.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Orientation returns the EXIF orientation tag of data, or 1 when there is
// none.
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}

// Orient returns img transformed so that EXIF orientation o displays upright.
func Orient(img image.Image, o int) image.Image {
	if o <= 1 || o > 8 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	swap := o >= 5
	dw, dh := w, h
	if swap {
		dw, dh = h, w
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := orientedPoint(o, x, y, w, h)
			dst.Set(dx, dy, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// orientedPoint maps source pixel (x, y) of a w×h image to its place in the
// upright image.
func orientedPoint(o, x, y, w, h int) (int, int) {
	switch o {
	case 2: // mirror horizontal
		return w - 1 - x, y
	case 3: // rotate 180
		return w - 1 - x, h - 1 - y
	case 4: // mirror vertical
		return x, h - 1 - y
	case 5: // transpose
		return y, x
	case 6: // rotate 90 clockwise
		return h - 1 - y, x
	case 7: // transverse
		return h - 1 - y, w - 1 - x
	case 8: // rotate 90 counter-clockwise
		return y, w - 1 - x
	}
	return x, y
}
