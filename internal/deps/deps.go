package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Dependency represents a required external dependency
type Dependency struct {
	Name        string // Command name (e.g., "xrandr")
	Description string // Human-readable description
	Required    bool   // If true, the tool cannot work without it
}

// CheckResult contains the result of checking a dependency
type CheckResult struct {
	Dependency Dependency
	Available  bool
	Path       string // Path to the executable if found
	Error      error  // Error if check failed
}

// RequiredDeps lists the external commands the tool shells out to.
var RequiredDeps = []Dependency{
	{
		Name:        "xrandr",
		Description: "X11 display configuration (query and apply)",
		Required:    true,
	},
}

// HasX11Display reports whether an X server appears to be reachable.
// xrandr will fail without one even when the binary is installed.
func HasX11Display() bool {
	return os.Getenv("DISPLAY") != ""
}

// Check verifies if a single dependency is available
func Check(dep Dependency) CheckResult {
	result := CheckResult{Dependency: dep}

	path, err := exec.LookPath(dep.Name)
	if err != nil {
		result.Available = false
		result.Error = err
	} else {
		result.Available = true
		result.Path = path
	}

	return result
}

// CheckAll verifies all dependencies
func CheckAll() []CheckResult {
	var results []CheckResult
	for _, dep := range RequiredDeps {
		results = append(results, Check(dep))
	}
	return results
}

// MissingRequired returns a list of missing required dependencies
func MissingRequired() []CheckResult {
	var missing []CheckResult
	for _, r := range CheckAll() {
		if r.Dependency.Required && !r.Available {
			missing = append(missing, r)
		}
	}
	return missing
}

// HasAllRequired returns true if all required dependencies are available
func HasAllRequired() bool {
	return len(MissingRequired()) == 0
}

// FormatAll returns a formatted string of all dependency check results
func FormatAll(results []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("Dependencies:\n")
	for _, r := range results {
		status := "✓"
		if !r.Available {
			status = "✗"
		}
		sb.WriteString(fmt.Sprintf("  %s %s - %s\n", status, r.Dependency.Name, r.Dependency.Description))
		if r.Available {
			sb.WriteString(fmt.Sprintf("      Path: %s\n", r.Path))
		}
	}

	sb.WriteString("\nEnvironment:\n")
	display := "✗ DISPLAY is not set (no X server reachable)"
	if HasX11Display() {
		display = fmt.Sprintf("✓ DISPLAY=%s", os.Getenv("DISPLAY"))
	}
	sb.WriteString(fmt.Sprintf("  %s\n", display))

	return sb.String()
}
