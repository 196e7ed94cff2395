package deps

import (
	"strings"
	"testing"
)

func TestCheckFindsKnownCommand(t *testing.T) {
	// sh is on every system this tool targets.
	result := Check(Dependency{Name: "sh", Required: true})
	if !result.Available {
		t.Fatalf("sh not found: %v", result.Error)
	}
	if result.Path == "" {
		t.Error("available dependency should report its path")
	}
}

func TestCheckReportsMissingCommand(t *testing.T) {
	result := Check(Dependency{Name: "definitely-not-a-real-command-xyz", Required: true})
	if result.Available {
		t.Error("nonexistent command reported as available")
	}
	if result.Error == nil {
		t.Error("missing dependency should carry the lookup error")
	}
}

func TestFormatAllMentionsEveryDependency(t *testing.T) {
	results := []CheckResult{
		{Dependency: Dependency{Name: "xrandr", Description: "X11 display configuration"}, Available: true, Path: "/usr/bin/xrandr"},
	}

	out := FormatAll(results)
	if out == "" {
		t.Fatal("empty report")
	}
	for _, want := range []string{"xrandr", "/usr/bin/xrandr", "DISPLAY"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
