package pack

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts #rrggbb, #rrggbbaa or a CSS color name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if hexDigits, ok := strings.CutPrefix(s, "#"); ok {
		if len(hexDigits) != 6 && len(hexDigits) != 8 {
			return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		p, err := hex.DecodeString(hexDigits)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		c := color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
		if len(p) == 4 {
			c.A = p[3]
		}
		return c, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
