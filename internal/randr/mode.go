package randr

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is a width/height pair in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String returns the resolution in xrandr's WxH form, e.g. "1920x1080".
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution parses a "WxH" string into a Resolution.
func ParseResolution(s string) (Resolution, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return Resolution{}, fmt.Errorf("invalid resolution %q: expected WxH", s)
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution width %q: %w", w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Resolution{}, fmt.Errorf("invalid resolution height %q: %w", h, err)
	}

	return Resolution{Width: width, Height: height}, nil
}

// Mode is one resolution/refresh-rate combination reported by the
// hardware for an output.
type Mode struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Refresh   float64 `json:"refresh"`
	Current   bool    `json:"current"`
	Preferred bool    `json:"preferred"`
}

// Resolution returns the mode's resolution without the refresh rate.
func (m Mode) Resolution() Resolution {
	return Resolution{Width: m.Width, Height: m.Height}
}

func (m Mode) String() string {
	return fmt.Sprintf("<%s, %.2f, curr: %t, pref: %t>",
		m.Resolution(), m.Refresh, m.Current, m.Preferred)
}
