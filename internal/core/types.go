package core

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Size describes logical viewport dimensions in pixels.
type Size struct {
	W int
	H int
}

// Vec3 is a point in scene space.
type Vec3 struct {
	X, Y, Z float64
}

// RGB is a colour with float channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// ParseHex parses "#rrggbb" (or "rrggbb") into an RGB value.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("parse colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return RGB{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}, nil
}

// MustHex is ParseHex for compile-time constants.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the colour as "#rrggbb".
func (c RGB) Hex() string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

// Clamp limits every channel to [0, 1].
func (c RGB) Clamp() RGB {
	return RGB{R: Clamp01(c.R), G: Clamp01(c.G), B: Clamp01(c.B)}
}

// Lerp blends towards to by t.
func (c RGB) Lerp(to RGB, t float64) RGB {
	t = Clamp01(t)
	return RGB{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// RGBA converts to an 8-bit colour with the given alpha in [0, 1].
func (c RGB) RGBA(alpha float64) color.RGBA {
	c = c.Clamp()
	a := Clamp01(alpha)
	// color.RGBA is alpha-premultiplied.
	return color.RGBA{
		R: channel8(c.R * a),
		G: channel8(c.G * a),
		B: channel8(c.B * a),
		A: channel8(a),
	}
}

// Channels exposes pointers to the three channels, for tweening.
func (c *RGB) Channels() [3]*float64 {
	return [3]*float64{&c.R, &c.G, &c.B}
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func channel8(v float64) uint8 {
	return uint8(math.Round(Clamp01(v) * 255))
}
