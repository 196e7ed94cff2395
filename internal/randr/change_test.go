package randr

import (
	"errors"
	"strings"
	"testing"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Displays: []Display{
			{
				Name:      "HDMI-1",
				Connected: true,
				Enabled:   true,
				Primary:   true,
				Rotation:  RotationNormal,
				Modes: []Mode{
					{Width: 1920, Height: 1080, Refresh: 60.00, Current: true, Preferred: true},
					{Width: 1680, Height: 1050, Refresh: 59.88},
				},
			},
			{
				Name:      "DP-1",
				Connected: true,
				Rotation:  RotationNormal,
				Modes: []Mode{
					{Width: 1280, Height: 1024, Refresh: 75.02},
				},
			},
		},
	}
}

func TestChangeArgsOrdering(t *testing.T) {
	change := NewChange("DP-1").
		WithResolution(Resolution{1280, 1024}).
		WithRotation(RotationLeft).
		RightOf("HDMI-1").
		AsPrimary()

	got := strings.Join(change.Args(), " ")
	want := "--output DP-1 --mode 1280x1024 --rotate left --right-of HDMI-1 --primary"
	if got != want {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}

func TestChangeArgsOffShortCircuits(t *testing.T) {
	change := NewChange("HDMI-1").
		WithResolution(Resolution{1920, 1080}).
		AsPrimary().
		TurnOff()

	got := strings.Join(change.Args(), " ")
	want := "--output HDMI-1 --off"
	if got != want {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}

func TestChangeArgsAuto(t *testing.T) {
	got := strings.Join(NewChange("DP-1").TurnOn().Args(), " ")
	want := "--output DP-1 --auto"
	if got != want {
		t.Errorf("Args() = %q, want %q", got, want)
	}

	// An explicit mode wins over --auto.
	got = strings.Join(NewChange("DP-1").TurnOn().WithResolution(Resolution{1280, 1024}).Args(), " ")
	want = "--output DP-1 --mode 1280x1024"
	if got != want {
		t.Errorf("Args() = %q, want %q", got, want)
	}
}

func TestChangePositionFlagAdjacentToTarget(t *testing.T) {
	args := NewChange("DP-1").WithPosition(RelationRightOf, "HDMI-1").Args()

	for i, a := range args {
		if a == "--right-of" {
			if i+1 >= len(args) || args[i+1] != "HDMI-1" {
				t.Fatalf("relation flag not followed by target: %v", args)
			}
			return
		}
	}
	t.Fatalf("no relation flag in %v", args)
}

func TestChangePrimaryOnlyForItsOwnOutput(t *testing.T) {
	changes := []Change{
		NewChange("HDMI-1").AsPrimary(),
		NewChange("DP-1").WithResolution(Resolution{1280, 1024}),
	}

	var all []string
	for _, c := range changes {
		all = append(all, c.Args()...)
	}

	primaries := 0
	for i, a := range all {
		if a == "--primary" {
			primaries++
			// --primary must sit inside the HDMI-1 clause.
			if i < 2 || all[0] != "--output" || all[1] != "HDMI-1" {
				t.Errorf("--primary outside its output clause: %v", all)
			}
		}
	}
	if primaries != 1 {
		t.Errorf("got %d --primary flags, want 1: %v", primaries, all)
	}
}

func TestChangeValidate(t *testing.T) {
	snap := testSnapshot()

	tests := []struct {
		name    string
		change  Change
		wantErr func(error) bool
	}{
		{
			name:    "valid resolution",
			change:  NewChange("HDMI-1").WithResolution(Resolution{1680, 1050}),
			wantErr: nil,
		},
		{
			name:   "unsupported resolution",
			change: NewChange("HDMI-1").WithResolution(Resolution{1600, 1200}),
			wantErr: func(err error) bool {
				var v *ValidationError
				return errors.As(err, &v) && v.Field == "resolution"
			},
		},
		{
			name:   "unknown output",
			change: NewChange("VGA-7").TurnOn(),
			wantErr: func(err error) bool {
				var nf *NotFoundError
				return errors.As(err, &nf) && nf.Output == "VGA-7"
			},
		},
		{
			name:   "unknown rotation",
			change: NewChange("HDMI-1").WithRotation("upside-down"),
			wantErr: func(err error) bool {
				var v *ValidationError
				return errors.As(err, &v) && v.Field == "rotation"
			},
		},
		{
			name:   "position target missing from snapshot",
			change: NewChange("HDMI-1").RightOf("VGA-7"),
			wantErr: func(err error) bool {
				var nf *NotFoundError
				return errors.As(err, &nf)
			},
		},
		{
			name:   "position relative to itself",
			change: NewChange("HDMI-1").RightOf("HDMI-1"),
			wantErr: func(err error) bool {
				var v *ValidationError
				return errors.As(err, &v) && v.Field == "position"
			},
		},
		{
			name:   "empty change",
			change: NewChange("HDMI-1"),
			wantErr: func(err error) bool {
				return errors.Is(err, ErrEmptyChange)
			},
		},
		{
			name:    "off needs no further validation",
			change:  NewChange("DP-1").TurnOff(),
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.change.Validate(snap)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !tt.wantErr(err) {
				t.Errorf("Validate() = %v, wrong error kind", err)
			}
		})
	}
}

func TestCheckResolutionMatchesAvailableModes(t *testing.T) {
	snap := testSnapshot()
	d, err := snap.Display("HDMI-1")
	if err != nil {
		t.Fatal(err)
	}

	for _, res := range d.AvailableResolutions() {
		if !d.CheckResolution(res) {
			t.Errorf("CheckResolution(%v) = false for an available mode", res)
		}
	}
	if d.CheckResolution(Resolution{1600, 1200}) {
		t.Error("CheckResolution(1600x1200) = true, not an available mode")
	}
}

func TestSnapshotAccessors(t *testing.T) {
	snap := testSnapshot()

	if p := snap.Primary(); p == nil || p.Name != "HDMI-1" {
		t.Errorf("Primary() = %v, want HDMI-1", p)
	}
	if got := len(snap.Connected()); got != 2 {
		t.Errorf("len(Connected()) = %d, want 2", got)
	}
	if got := len(snap.Enabled()); got != 1 {
		t.Errorf("len(Enabled()) = %d, want 1", got)
	}
	if _, err := snap.Display("VGA-7"); err == nil {
		t.Error("Display(VGA-7) should fail")
	}
}
