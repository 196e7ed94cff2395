package randr

import (
	"fmt"
	"time"
)

// Display is a point-in-time snapshot of one video output as reported
// by the query command. It is disconnected from the system: changing
// the configuration goes through a Change applied by the Client, and
// after an apply the snapshot is stale until re-queried.
type Display struct {
	Name      string   `json:"name"`
	Connected bool     `json:"connected"`
	Enabled   bool     `json:"enabled"`
	Primary   bool     `json:"primary"`
	Rotation  Rotation `json:"rotation"`

	// Resolution is the active mode's resolution; nil while the
	// output is disabled.
	Resolution *Resolution `json:"resolution,omitempty"`

	// Offset is the output's placement in the virtual screen; nil
	// while the output is disabled.
	Offset *Offset `json:"offset,omitempty"`

	// Modes is the immutable list of modes the hardware reports,
	// in the order xrandr prints them.
	Modes []Mode `json:"modes"`
}

// CurrentMode returns the active mode, or nil when the output is
// disabled.
func (d *Display) CurrentMode() *Mode {
	for i := range d.Modes {
		if d.Modes[i].Current {
			return &d.Modes[i]
		}
	}
	return nil
}

// PreferredMode returns the hardware-preferred mode, or nil if none is
// marked.
func (d *Display) PreferredMode() *Mode {
	for i := range d.Modes {
		if d.Modes[i].Preferred {
			return &d.Modes[i]
		}
	}
	return nil
}

// AvailableResolutions returns the distinct resolutions supported by
// the output, in mode order.
func (d *Display) AvailableResolutions() []Resolution {
	seen := make(map[Resolution]bool, len(d.Modes))
	out := make([]Resolution, 0, len(d.Modes))
	for _, m := range d.Modes {
		res := m.Resolution()
		if !seen[res] {
			seen[res] = true
			out = append(out, res)
		}
	}
	return out
}

// CheckResolution reports whether res is one of the output's supported
// resolutions.
func (d *Display) CheckResolution(res Resolution) bool {
	for _, m := range d.Modes {
		if m.Width == res.Width && m.Height == res.Height {
			return true
		}
	}
	return false
}

func (d *Display) String() string {
	return fmt.Sprintf("<%s, primary: %t, modes: %d, conn: %t, rot: %s, enabled: %t>",
		d.Name, d.Primary, len(d.Modes), d.Connected, d.Rotation, d.Enabled)
}

// Snapshot is the set of outputs reported by one query invocation.
// It is a plain value: two snapshots from consecutive queries are
// directly comparable, and nothing in this package mutates one after
// it is returned.
type Snapshot struct {
	Displays []Display `json:"displays"`
	Taken    time.Time `json:"taken"`
}

// Display returns the named output from the snapshot.
func (s *Snapshot) Display(name string) (*Display, error) {
	for i := range s.Displays {
		if s.Displays[i].Name == name {
			return &s.Displays[i], nil
		}
	}
	return nil, &NotFoundError{Output: name}
}

// Primary returns the primary output, or nil when none is marked.
func (s *Snapshot) Primary() *Display {
	for i := range s.Displays {
		if s.Displays[i].Primary {
			return &s.Displays[i]
		}
	}
	return nil
}

// Connected returns the outputs with a physical sink attached.
func (s *Snapshot) Connected() []Display {
	var out []Display
	for _, d := range s.Displays {
		if d.Connected {
			out = append(out, d)
		}
	}
	return out
}

// Enabled returns the outputs that are currently active.
func (s *Snapshot) Enabled() []Display {
	var out []Display
	for _, d := range s.Displays {
		if d.Enabled {
			out = append(out, d)
		}
	}
	return out
}
