// Package theme implements the color algebra behind palette derivation:
// blending, hue rotation, WCAG luminance and contrast, and the accessible
// text/button pickers. Everything here is pure and deterministic.
package theme

import (
	"fmt"
	"math"
	"strings"
)

// RGB holds one color channel-wise in 0..255.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" into channels. A malformed string yields black,
// callers validate hex shape before reaching color math.
func ParseHex(hex string) RGB {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return RGB{}
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}
	}
	return RGB{R: r, G: g, B: b}
}

// Hex formats the color as lowercase "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend linearly interpolates between two hex colors per channel. ratio 0
// returns c1, ratio 1 returns c2.
func Blend(c1, c2 string, ratio float64) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	a := ParseHex(c1)
	b := ParseHex(c2)
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*ratio))
	}
	return RGB{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B)}.Hex()
}

// Lighten blends the color toward white by the given amount.
func Lighten(hex string, amount float64) string {
	return Blend(hex, "#ffffff", amount)
}

// Darken blends the color toward black by the given amount.
func Darken(hex string, amount float64) string {
	return Blend(hex, "#000000", amount)
}

// Luminance returns the WCAG relative luminance of a hex color, using the
// sRGB piecewise gamma correction.
func Luminance(hex string) float64 {
	c := ParseHex(hex)
	lin := func(ch uint8) float64 {
		v := float64(ch) / 255.0
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between two hex colors,
// always >= 1.
func ContrastRatio(c1, c2 string) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// HueShift rotates the color's hue by degrees, preserving saturation and
// lightness.
func HueShift(hex string, degrees float64) string {
	h, s, l := rgbToHSL(ParseHex(hex))
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	return hslToRGB(h, s, l).Hex()
}

func rgbToHSL(c RGB) (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	return h, s, l
}

func hslToRGB(h, s, l float64) RGB {
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hue := func(t float64) float64 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		switch {
		case t < 1.0/6:
			return p + (q-p)*6*t
		case t < 1.0/2:
			return q
		case t < 2.0/3:
			return p + (q-p)*(2.0/3-t)*6
		default:
			return p
		}
	}

	hk := h / 360
	return RGB{
		R: uint8(math.Round(hue(hk+1.0/3) * 255)),
		G: uint8(math.Round(hue(hk) * 255)),
		B: uint8(math.Round(hue(hk-1.0/3) * 255)),
	}
}
