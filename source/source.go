// Package source loads blobs to be viewed, optionally unwrapping a
// compression container first.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

var ErrUnknownCompression = errors.New("source: unknown compression")

// Compression selects how a file is unwrapped before viewing.
type Compression int

const (
	None Compression = iota
	Auto             // zstd or gzip by magic number, raw on failure
	Zstd
	Gzip
	Zlib
)

var compressionNames = [...]string{"none", "auto", "zstd", "gzip", "zlib"}

func (c Compression) String() string {
	if c < 0 || int(c) >= len(compressionNames) {
		return fmt.Sprintf("Compression(%d)", int(c))
	}
	return compressionNames[c]
}

// ParseCompression returns the Compression with the given name. The empty
// string is None.
func ParseCompression(name string) (Compression, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return None, nil
	}
	for i, n := range compressionNames {
		if n == name {
			return Compression(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic = []byte{0x1F, 0x8B}
)

// Load reads the whole file at path and unwraps it according to c.
func Load(path string, c Compression) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return Unwrap(raw, c)
}

// Unwrap decodes raw according to c. With Auto, data that does not start
// with a known magic number, or fails to decode, is returned unchanged.
func Unwrap(raw []byte, c Compression) ([]byte, error) {
	switch c {
	case None:
		return raw, nil
	case Auto:
		var dec func([]byte) ([]byte, error)
		switch {
		case bytes.HasPrefix(raw, zstdMagic):
			dec = decodeZstd
		case bytes.HasPrefix(raw, gzipMagic):
			dec = decodeGzip
		default:
			return raw, nil
		}
		if plain, err := dec(raw); err == nil {
			return plain, nil
		}
		return raw, nil
	case Zstd:
		return decodeZstd(raw)
	case Gzip:
		return decodeGzip(raw)
	case Zlib:
		return decodeZlib(raw)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCompression, c)
}

func decodeZstd(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("source: zstd: %w", err)
	}
	defer dec.Close()
	plain, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("source: zstd: %w", err)
	}
	return plain, nil
}

func decodeGzip(raw []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("source: gzip: %w", err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("source: gzip: %w", err)
	}
	return plain, nil
}

func decodeZlib(raw []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("source: zlib: %w", err)
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("source: zlib: %w", err)
	}
	return plain, nil
}
