package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize is returned for size expressions that do not describe a
// usable icon size.
var ErrInvalidSize = errors.New("invalid size")

// Size is an icon size in pixels.
type Size struct {
	Width  int
	Height int
}

// String formats the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses expressions such as "64x64", "64X32" or "64". The
// separator is the first "x" regardless of case and both halves may be
// padded with whitespace. A missing or non-numeric height yields a square.
func ParseSize(s string) (Size, error) {
	left, right, _ := strings.Cut(strings.ToLower(s), "x")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)

	w, err := strconv.Atoi(left)
	if err != nil {
		return Size{}, fmt.Errorf("%w %q: width is not an integer", ErrInvalidSize, s)
	}
	if w < 0 {
		return Size{}, fmt.Errorf("%w %q: width must be positive, not %d", ErrInvalidSize, s, w)
	}

	h, err := strconv.Atoi(right)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Size{}, fmt.Errorf("%w %q: height out of range", ErrInvalidSize, s)
		}
		return Size{Width: w, Height: w}, nil
	}
	if h < 0 {
		return Size{}, fmt.Errorf("%w %q: height must be positive, not %d", ErrInvalidSize, s, h)
	}

	return Size{Width: w, Height: h}, nil
}
