package vo

import (
	"errors"
	"math"
	"testing"
)

func TestNewSize(t *testing.T) {
	tests := []struct {
		name    string
		bytes   int64
		wantErr error
	}{
		{"zero", 0, nil},
		{"positive", 4096, nil},
		{"large", math.MaxInt64, nil},
		{"negative", -1, ErrNegativeSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSize(tt.bytes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewSize(%d) error = %v, want %v", tt.bytes, err, tt.wantErr)
			}
			if err == nil && s.Bytes() != tt.bytes {
				t.Errorf("Bytes() = %d, want %d", s.Bytes(), tt.bytes)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBytes int64
		wantErr   error
	}{
		{"bare bytes", "4096", 4096, nil},
		{"bare zero", "0", 0, nil},
		{"kibibytes with space", "2048 KiB", 2048 * 1024, nil},
		{"kibibytes without space", "2048KiB", 2048 * 1024, nil},
		{"lowercase unit", "2048 kib", 2048 * 1024, nil},
		{"mebibytes", "8 MiB", 8 * 1024 * 1024, nil},
		{"gibibytes fractional", "1.5 GiB", 1610612736, nil},
		{"tebibytes", "2 TiB", 2 * 1024 * 1024 * 1024 * 1024, nil},
		{"decimal kilobytes", "10 KB", 10000, nil},
		{"decimal gigabytes", "3 GB", 3000000000, nil},
		{"explicit bytes unit", "512 B", 512, nil},
		{"leading and trailing space", "  2048 KiB  ", 2048 * 1024, nil},
		{"empty", "", 0, ErrInvalidSize},
		{"only unit", "KiB", 0, ErrInvalidSize},
		{"unknown unit", "12 XiB", 0, ErrInvalidSize},
		{"garbage magnitude", "twelve KiB", 0, ErrInvalidSize},
		{"negative bytes", "-4096", 0, ErrNegativeSize},
		{"negative with unit", "-1 KiB", 0, ErrNegativeSize},
		{"overflow", "9 EiB", 0, ErrSizeOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSize(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseSize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if err == nil && s.Bytes() != tt.wantBytes {
				t.Errorf("ParseSize(%q) = %d bytes, want %d", tt.input, s.Bytes(), tt.wantBytes)
			}
		})
	}
}

func TestParseSizeLargeIntegerExact(t *testing.T) {
	// Integer magnitudes must not lose precision to float conversion.
	const want = int64(9007199254740993) // 2^53 + 1
	s, err := ParseSize("9007199254740993")
	if err != nil {
		t.Fatalf("ParseSize() error = %v", err)
	}
	if s.Bytes() != want {
		t.Errorf("Bytes() = %d, want %d", s.Bytes(), want)
	}
}

func TestSize_Mul(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		n     int64
		want  int64
	}{
		{"block count times block size", 4096, 262144, 1073741824},
		{"xfs scenario", 4096, 131072, 536870912},
		{"zero count", 4096, 0, 0},
		{"one", 512, 1, 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustSize(tt.bytes).Mul(tt.n)
			if got.Bytes() != tt.want {
				t.Errorf("Mul(%d) = %d bytes, want %d", tt.n, got.Bytes(), tt.want)
			}
		})
	}
}

func TestSize_Comparisons(t *testing.T) {
	small := MustSize(1024)
	big := MustSize(4096)

	if !small.LessThan(big) {
		t.Error("LessThan() = false, want true")
	}
	if !big.GreaterThan(small) {
		t.Error("GreaterThan() = false, want true")
	}
	if !small.Equals(MustSize(1024)) {
		t.Error("Equals() = false, want true")
	}
	if small.Equals(big) {
		t.Error("Equals() = true, want false")
	}
	if !ZeroSize().IsZero() {
		t.Error("IsZero() = false, want true")
	}
	if got := small.Add(big); got.Bytes() != 5120 {
		t.Errorf("Add() = %d, want 5120", got.Bytes())
	}
}

func TestSize_String(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"bytes", 512, "512 B"},
		{"kibibytes", 2048, "2.00 KiB"},
		{"mebibytes", 8 * 1024 * 1024, "8.00 MiB"},
		{"gibibytes", 1073741824, "1.00 GiB"},
		{"tebibytes", 2 * 1024 * 1024 * 1024 * 1024, "2.00 TiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustSize(tt.bytes).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSize_UnitConversions(t *testing.T) {
	s := MustSize(3 * 1024 * 1024 * 1024)
	if got := s.GiB(); got != 3 {
		t.Errorf("GiB() = %v, want 3", got)
	}
	if got := s.MiB(); got != 3072 {
		t.Errorf("MiB() = %v, want 3072", got)
	}
	if got := s.KiB(); got != 3145728 {
		t.Errorf("KiB() = %v, want 3145728", got)
	}
}
