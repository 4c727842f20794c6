package game

import "math"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{
		R: uint8(clamp(int(c.R)+dr, 0, 255)),
		G: uint8(clamp(int(c.G)+dg, 0, 255)),
		B: uint8(clamp(int(c.B)+db, 0, 255)),
	}
}

// Floats returns the colour as 0..1 floats for shader uniforms.
func (c RGB) Floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

// Hex builds a colour from a 0xRRGGBB literal.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// HSL converts hue, saturation and lightness (all 0..1) to RGB.
// Hue wraps, so 1.0 and 0.0 are the same red.
func HSL(h, s, l float64) RGB {
	h = h - math.Floor(h)
	s = clampF(s, 0, 1)
	l = clampF(l, 0, 1)
	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}
	var q float64
	if l <= 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return RGB{
		R: uint8(math.Round(hueToRGB(p, q, h+1.0/3.0) * 255)),
		G: uint8(math.Round(hueToRGB(p, q, h) * 255)),
		B: uint8(math.Round(hueToRGB(p, q, h-1.0/3.0) * 255)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*6*(2.0/3.0-t)
	}
	return p
}

var Palette = struct {
	Background RGB
	Floor      RGB
	Wall       RGB
	Spark      RGB
	Glow       RGB
	HUD        RGB
	HUDDim     RGB
}{
	Background: Hex(0x1a1a1a),
	Floor:      Hex(0xcfcfcf),
	Wall:       Hex(0xffffff),
	Spark:      RGB{R: 255, G: 240, B: 200},
	Glow:       RGB{R: 255, G: 200, B: 90},
	HUD:        RGB{R: 255, G: 255, B: 255},
	HUDDim:     RGB{R: 150, G: 150, B: 150},
}

// WallOpacity is the alpha used for the translucent arena walls.
const WallOpacity = 0.3
