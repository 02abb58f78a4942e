// Package export writes rendered viewports to image files.
//
// Supported containers are PNG, QOI, BMP and TIFF, chosen by file
// extension. Pixels past the end of the data are transparent in rendered
// viewports; formats without alpha support flatten them to black.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnsupportedFormat = errors.New("export: unsupported format")
	ErrEmptyImage        = errors.New("export: empty image")
	ErrNoFreeName        = errors.New("export: no free file name")
)

// Format is an output container.
type Format int

const (
	PNG Format = iota
	QOI
	BMP
	TIFF
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case QOI:
		return "qoi"
	case BMP:
		return "bmp"
	case TIFF:
		return "tiff"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatFromPath picks the format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".qoi":
		return QOI, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	switch f {
	case PNG:
		return png.Encode(w, img)
	case QOI:
		return qoi.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
}

// Zoom scales img by the integer factor n using nearest-neighbour sampling.
// n <= 1 returns img unchanged.
func Zoom(img image.Image, n int) image.Image {
	b := img.Bounds()
	if n <= 1 || b.Empty() {
		return img
	}
	g := gift.New(gift.Resize(b.Dx()*n, b.Dy()*n, gift.NearestNeighborResampling))
	dst := image.NewNRGBA(g.Bounds(b))
	g.Draw(dst, img)
	return dst
}

// WriteFile zooms img and writes it to path, in the format implied by the
// extension.
func WriteFile(path string, img image.Image, zoom int) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: %w", cerr)
		}
	}()
	return Encode(out, Zoom(img, zoom), f)
}

// NextFreeName returns the first path in dir named prefix followed by a
// three digit counter (000 to 999) and ext that does not exist yet.
func NextFreeName(dir, prefix, ext string) (string, error) {
	for i := 0; i < 1000; i++ {
		name := filepath.Join(dir, fmt.Sprintf("%s%03d%s", prefix, i, ext))
		_, err := os.Stat(name)
		if errors.Is(err, fs.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
	}
	return "", ErrNoFreeName
}
