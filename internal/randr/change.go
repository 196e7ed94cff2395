package randr

// Change is the desired state for one output. Callers build a Change
// rather than mutating a Display snapshot, so what will be applied is
// always explicit and can be validated against the snapshot it was
// derived from before anything is spawned.
//
// Nil pointer fields are left untouched by the apply. A Change that
// sets nothing is rejected by Validate.
type Change struct {
	Output     string      `json:"output"`
	Off        bool        `json:"off,omitempty"`
	Auto       bool        `json:"auto,omitempty"`
	Resolution *Resolution `json:"resolution,omitempty"`
	Rotation   *Rotation   `json:"rotation,omitempty"`
	Position   *Position   `json:"position,omitempty"`
	Primary    bool        `json:"primary,omitempty"`
}

// NewChange starts a change for the named output.
func NewChange(output string) Change {
	return Change{Output: output}
}

// WithResolution requests the given mode.
func (c Change) WithResolution(res Resolution) Change {
	c.Resolution = &res
	return c
}

// WithRotation requests the given orientation.
func (c Change) WithRotation(rot Rotation) Change {
	c.Rotation = &rot
	return c
}

// WithPosition places the output relative to another output.
func (c Change) WithPosition(rel Relation, relativeTo string) Change {
	c.Position = &Position{Relation: rel, RelativeTo: relativeTo}
	return c
}

// LeftOf places the output left of another output.
func (c Change) LeftOf(output string) Change { return c.WithPosition(RelationLeftOf, output) }

// RightOf places the output right of another output.
func (c Change) RightOf(output string) Change { return c.WithPosition(RelationRightOf, output) }

// Above places the output above another output.
func (c Change) Above(output string) Change { return c.WithPosition(RelationAbove, output) }

// Below places the output below another output.
func (c Change) Below(output string) Change { return c.WithPosition(RelationBelow, output) }

// SameAs mirrors the output onto another output.
func (c Change) SameAs(output string) Change { return c.WithPosition(RelationSameAs, output) }

// AsPrimary marks the output as the primary display.
func (c Change) AsPrimary() Change {
	c.Primary = true
	return c
}

// TurnOff disables the output. Off wins over every other setting.
func (c Change) TurnOff() Change {
	c.Off = true
	return c
}

// TurnOn enables the output with its preferred mode unless an explicit
// resolution is also set.
func (c Change) TurnOn() Change {
	c.Auto = true
	return c
}

// Empty reports whether the change sets nothing.
func (c Change) Empty() bool {
	return !c.Off && !c.Auto && !c.Primary &&
		c.Resolution == nil && c.Rotation == nil && c.Position == nil
}

// Validate checks the change against the snapshot it will be applied
// to. It fails fast, before any external process runs: the output and
// any position target must exist in the snapshot, the resolution must
// be one the output's hardware reports, and the rotation must be one of
// the four recognized values.
func (c Change) Validate(snap *Snapshot) error {
	if c.Output == "" {
		return &ValidationError{Field: "output", Value: c.Output, Reason: "output name is required"}
	}
	if c.Empty() {
		return ErrEmptyChange
	}

	d, err := snap.Display(c.Output)
	if err != nil {
		return err
	}

	if c.Off {
		return nil
	}

	if c.Resolution != nil && !d.CheckResolution(*c.Resolution) {
		return &ValidationError{
			Output: c.Output,
			Field:  "resolution",
			Value:  c.Resolution.String(),
			Reason: "not in available modes",
		}
	}

	if c.Rotation != nil && !c.Rotation.Valid() {
		return &ValidationError{
			Output: c.Output,
			Field:  "rotation",
			Value:  string(*c.Rotation),
			Reason: "must be one of normal, right, inverted, left",
		}
	}

	if c.Position != nil {
		if !c.Position.Relation.Valid() {
			return &ValidationError{
				Output: c.Output,
				Field:  "position",
				Value:  string(c.Position.Relation),
				Reason: "unknown relation",
			}
		}
		if c.Position.RelativeTo == c.Output {
			return &ValidationError{
				Output: c.Output,
				Field:  "position",
				Value:  c.Position.RelativeTo,
				Reason: "cannot position an output relative to itself",
			}
		}
		if _, err := snap.Display(c.Position.RelativeTo); err != nil {
			return err
		}
	}

	return nil
}

// Args serializes the change into the flag sequence xrandr expects:
// output first, then mode, rotation, position clause and the primary
// marker. --off short-circuits everything else.
func (c Change) Args() []string {
	args := []string{"--output", c.Output}

	if c.Off {
		return append(args, "--off")
	}

	switch {
	case c.Resolution != nil:
		args = append(args, "--mode", c.Resolution.String())
	case c.Auto:
		args = append(args, "--auto")
	}

	if c.Rotation != nil {
		args = append(args, "--rotate", string(*c.Rotation))
	}

	if c.Position != nil {
		args = append(args, c.Position.Relation.Flag(), c.Position.RelativeTo)
	}

	if c.Primary {
		args = append(args, "--primary")
	}

	return args
}
