package vo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Size represents an amount of storage as a byte count.
// It provides type-safe construction, scalar arithmetic and
// human-readable formatting.
type Size struct {
	bytes int64
}

// Binary (base-2) size units in bytes.
const (
	B   int64 = 1
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
	TiB       = 1024 * GiB
	PiB       = 1024 * TiB
	EiB       = 1024 * PiB
)

// Decimal (base-10) size units in bytes.
const (
	KB int64 = 1000
	MB       = 1000 * KB
	GB       = 1000 * MB
	TB       = 1000 * GB
	PB       = 1000 * TB
	EB       = 1000 * PB
)

var (
	ErrNegativeSize = errors.New("size cannot be negative")
	ErrInvalidSize  = errors.New("invalid size string")
	ErrSizeOverflow = errors.New("size overflows the representable byte range")
)

// sizeUnits maps unit suffixes to their byte scale.
var sizeUnits = []struct {
	suffix string
	scale  int64
}{
	{"EiB", EiB}, {"PiB", PiB}, {"TiB", TiB}, {"GiB", GiB}, {"MiB", MiB}, {"KiB", KiB},
	{"EB", EB}, {"PB", PB}, {"TB", TB}, {"GB", GB}, {"MB", MB}, {"KB", KB},
	{"B", B},
}

// NewSize creates a new Size value object from a byte count.
func NewSize(bytes int64) (Size, error) {
	if bytes < 0 {
		return Size{}, ErrNegativeSize
	}
	return Size{bytes: bytes}, nil
}

// MustSize creates a new Size, panicking if invalid.
func MustSize(bytes int64) Size {
	s, err := NewSize(bytes)
	if err != nil {
		panic(err)
	}
	return s
}

// ZeroSize returns a zero Size.
func ZeroSize() Size {
	return Size{bytes: 0}
}

// ParseSize creates a Size from a "magnitude + unit" string such as
// "2048 KiB", "1.5 GB" or "4096". A bare number is a byte count. Unit
// suffixes are matched case-insensitively; both binary (KiB..EiB) and
// decimal (KB..EB) units are understood. Whitespace between magnitude
// and unit is optional.
func ParseSize(s string) (Size, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return Size{}, fmt.Errorf("empty size string: %w", ErrInvalidSize)
	}

	i := len(str)
	for i > 0 && isUnitLetter(str[i-1]) {
		i--
	}
	magnitude := strings.TrimSpace(str[:i])
	unit := str[i:]

	scale := B
	if unit != "" {
		sc, ok := scaleForUnit(unit)
		if !ok {
			return Size{}, fmt.Errorf("unknown size unit %q: %w", unit, ErrInvalidSize)
		}
		scale = sc
	}
	if magnitude == "" {
		return Size{}, fmt.Errorf("missing magnitude in %q: %w", s, ErrInvalidSize)
	}

	// Integer magnitudes are scaled with exact arithmetic; only
	// fractional magnitudes go through float conversion.
	if n, err := strconv.ParseInt(magnitude, 10, 64); err == nil {
		if n < 0 {
			return Size{}, ErrNegativeSize
		}
		if scale > 1 && n > math.MaxInt64/scale {
			return Size{}, ErrSizeOverflow
		}
		return Size{bytes: n * scale}, nil
	}

	v, err := strconv.ParseFloat(magnitude, 64)
	if err != nil {
		return Size{}, fmt.Errorf("unparseable magnitude %q: %w", magnitude, ErrInvalidSize)
	}
	if v < 0 {
		return Size{}, ErrNegativeSize
	}
	b := v * float64(scale)
	if b >= float64(math.MaxInt64) {
		return Size{}, ErrSizeOverflow
	}
	return Size{bytes: int64(b)}, nil
}

func isUnitLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func scaleForUnit(unit string) (int64, bool) {
	for _, u := range sizeUnits {
		if strings.EqualFold(u.suffix, unit) {
			return u.scale, true
		}
	}
	return 0, false
}

// Bytes returns the size in bytes.
func (s Size) Bytes() int64 {
	return s.bytes
}

// Mul returns the size multiplied by a non-negative integer scalar.
func (s Size) Mul(n int64) Size {
	return Size{bytes: s.bytes * n}
}

// Add returns a new Size with the given size added.
func (s Size) Add(other Size) Size {
	return Size{bytes: s.bytes + other.bytes}
}

// IsZero returns true if the size is zero.
func (s Size) IsZero() bool {
	return s.bytes == 0
}

// GreaterThan returns true if this size is greater than other.
func (s Size) GreaterThan(other Size) bool {
	return s.bytes > other.bytes
}

// LessThan returns true if this size is less than other.
func (s Size) LessThan(other Size) bool {
	return s.bytes < other.bytes
}

// Equals returns true if both sizes are equal.
func (s Size) Equals(other Size) bool {
	return s.bytes == other.bytes
}

// KiB returns the size in kibibytes.
func (s Size) KiB() float64 {
	return float64(s.bytes) / float64(KiB)
}

// MiB returns the size in mebibytes.
func (s Size) MiB() float64 {
	return float64(s.bytes) / float64(MiB)
}

// GiB returns the size in gibibytes.
func (s Size) GiB() float64 {
	return float64(s.bytes) / float64(GiB)
}

// String returns a human-readable representation in binary units.
func (s Size) String() string {
	b := s.bytes
	switch {
	case b < KiB:
		return fmt.Sprintf("%d B", b)
	case b < MiB:
		return fmt.Sprintf("%.2f KiB", s.KiB())
	case b < GiB:
		return fmt.Sprintf("%.2f MiB", s.MiB())
	case b < TiB:
		return fmt.Sprintf("%.2f GiB", s.GiB())
	case b < PiB:
		return fmt.Sprintf("%.2f TiB", float64(b)/float64(TiB))
	default:
		return fmt.Sprintf("%.2f PiB", float64(b)/float64(PiB))
	}
}
