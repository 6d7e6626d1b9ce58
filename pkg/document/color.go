package document

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/go-drift/piet/pkg/graphics"
)

// ParseColor parses #RRGGBB, #AARRGGBB, 0xAARRGGBB, 0xRRGGBB or a CSS
// colour name such as "rebeccapurple". Six-digit forms are opaque.
func ParseColor(s string) (graphics.Color, error) {
	s = strings.TrimSpace(s)
	var hex string
	switch {
	case strings.HasPrefix(s, "#"):
		hex = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		hex = s[2:]
	default:
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return 0, fmt.Errorf("unknown colour %q", s)
		}
		return graphics.Color(uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)), nil
	}

	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("colour %q must have 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q is not hexadecimal", s)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return graphics.Color(v), nil
}
