package pixfmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrBadDepth     = errors.New("pixfmt: unsupported bits per pixel")
	ErrFieldsTooBig = errors.New("pixfmt: fields exceed bits per pixel")
	ErrBadField     = errors.New("pixfmt: invalid field")
	ErrBadOrder     = errors.New("pixfmt: invalid order")
)

// BitOrder selects how consecutive bits of the buffer map onto a pixel value.
type BitOrder uint8

const (
	// MSBFirst makes the first bit read the most significant bit.
	MSBFirst BitOrder = iota
	// LSBFirst makes the first bit read the least significant bit.
	LSBFirst
)

func (o BitOrder) String() string {
	if o == LSBFirst {
		return "lsb"
	}
	return "msb"
}

// ParseBitOrder parses "msb" or "lsb" (case insensitive).
func ParseBitOrder(s string) (BitOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "msb":
		return MSBFirst, nil
	case "lsb":
		return LSBFirst, nil
	}
	return MSBFirst, fmt.Errorf("%w: bit order %q", ErrBadOrder, s)
}

// ByteOrder selects the order of whole bytes inside a multi-byte pixel.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "le"
	}
	return "be"
}

// ParseByteOrder parses "be" or "le" (case insensitive).
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "be":
		return BigEndian, nil
	case "le":
		return LittleEndian, nil
	}
	return BigEndian, fmt.Errorf("%w: byte order %q", ErrBadOrder, s)
}

// Channel is the color component a field is mapped to.
type Channel uint8

const (
	R Channel = iota
	G
	B
	A
	// Gray assigns the same value to R, G and B.
	Gray
)

var channelNames = [...]string{R: "r", G: "g", B: "b", A: "a", Gray: "gray"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return "Channel(" + strconv.Itoa(int(c)) + ")"
}

// Field is a fixed-width slice of a pixel value mapped to a channel.
type Field struct {
	Channel Channel
	Width   int // Bits
}

func (f Field) String() string {
	return f.Channel.String() + strconv.Itoa(f.Width)
}

// Format describes how pixels are packed in a buffer.
type Format struct {
	BPP       int
	BitOrder  BitOrder
	ByteOrder ByteOrder
	// Fields are consumed from the most significant end of the pixel value
	// downward, in order.
	Fields []Field
}

// Validate checks that the depth is usable and that the fields fit in it.
func (f Format) Validate() error {
	if f.BPP < 1 || f.BPP > 64 {
		return fmt.Errorf("%w: %d", ErrBadDepth, f.BPP)
	}
	sum := 0
	for _, fl := range f.Fields {
		if fl.Width < 0 || fl.Channel > Gray {
			return fmt.Errorf("%w: %v", ErrBadField, fl)
		}
		sum += fl.Width
	}
	if sum > f.BPP {
		return fmt.Errorf("%w: %d > %d", ErrFieldsTooBig, sum, f.BPP)
	}
	return nil
}

func (f Format) String() string {
	return fmt.Sprintf("%dbpp %s %s %s", f.BPP, f.BitOrder, f.ByteOrder, f.fieldString())
}

func (f Format) fieldString() string {
	parts := make([]string, len(f.Fields))
	for i, fl := range f.Fields {
		parts[i] = fl.String()
	}
	return strings.Join(parts, "-")
}

// ParseFields parses a layout such as "r5-g6-b5" or "a1,r5,g5,b5".
// Each element is a channel name (r, g, b, a, gray or y) followed by its
// width in bits.
func ParseFields(s string) ([]Field, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty layout", ErrBadField)
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ',' || r == ' '
	})
	fields := make([]Field, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(p)
		i := strings.IndexAny(p, "0123456789")
		if i <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrBadField, p)
		}
		var c Channel
		switch p[:i] {
		case "r":
			c = R
		case "g":
			c = G
		case "b":
			c = B
		case "a":
			c = A
		case "gray", "y":
			c = Gray
		default:
			return nil, fmt.Errorf("%w: unknown channel %q", ErrBadField, p[:i])
		}
		w, err := strconv.Atoi(p[i:])
		if err != nil || w > 64 {
			return nil, fmt.Errorf("%w: width %q", ErrBadField, p[i:])
		}
		fields = append(fields, Field{Channel: c, Width: w})
	}
	return fields, nil
}
