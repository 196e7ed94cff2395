package randr

import (
	"regexp"
	"strconv"
	"strings"
)

// Header line of one output block, e.g.
//
//	HDMI-1 connected primary 1920x1080+0+0 (normal left inverted right ...) 527mm x 296mm
//	DP-1 disconnected (normal left inverted right x axis y axis)
//
// The rotation token only appears when the output is rotated away from
// normal.
var headerPattern = regexp.MustCompile(
	`^(?P<out>[\w.-]+)\s+(?P<status>connected|disconnected)` +
		`(?P<pr>\s+primary)?` +
		`(?:\s+(?P<w>\d+)x(?P<h>\d+)\+(?P<x>\d+)\+(?P<y>\d+))?` +
		`(?:\s+(?P<rot>normal|left|right|inverted))?` +
		`(?:\s+\(|\s*$)`,
)

// Mode line: an indented resolution followed by one or more refresh
// rates, each optionally marked current (*) and/or preferred (+), e.g.
//
//	1920x1080     60.00*+  50.00    59.94
var modeLinePattern = regexp.MustCompile(`^\s+(?P<w>\d+)x(?P<h>\d+)i?\s+(?P<rates>\S.*)$`)

// A rate token is the frequency followed by marker columns: "60.00*+",
// "60.00*", "60.00 +" or plain "60.00" (note the space xrandr prints
// between the current and preferred columns when only one is set).
var (
	rateListPattern = regexp.MustCompile(`^(?:\d+(?:\.\d+)?\*?\s?\+?\s*)+$`)
	ratePattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)(\*)?\s?(\+)?`)
)

// Cheap shape checks used to tell "malformed header/mode line" apart
// from lines that are simply not ours (screen summary, properties).
var (
	looksLikeHeader = regexp.MustCompile(`^\S.*\b(?:dis)?connected\b`)
	looksLikeMode   = regexp.MustCompile(`^\s+\d+x\d+`)
)

// parseQuery converts raw query output into Display snapshots, one per
// output block, in the order xrandr reports them.
//
// Parsing is line-oriented and tolerant: lines that are recognizably an
// output header or a mode line but malformed are reported as
// ParseErrors without aborting the rest, so a single odd output yields
// partial results plus a structured report rather than nothing.
// Anything else (the Screen summary line, property dumps) is skipped.
func parseQuery(text string) ([]Display, []ParseError) {
	var (
		displays []Display
		issues   []ParseError
		current  *Display
	)

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := headerPattern.FindStringSubmatch(line); m != nil {
			displays = append(displays, parseHeader(m))
			current = &displays[len(displays)-1]
			continue
		}

		if looksLikeHeader.MatchString(line) {
			issues = append(issues, ParseError{
				LineNo: lineNo,
				Line:   line,
				Reason: "output header does not match expected layout",
			})
			current = nil
			continue
		}

		if current == nil {
			continue
		}

		if m := modeLinePattern.FindStringSubmatch(line); m != nil {
			modes, ok := parseModeLine(m)
			if !ok {
				issues = append(issues, ParseError{
					LineNo:  lineNo,
					Line:    line,
					Display: current.Name,
					Reason:  "mode line does not match expected layout",
				})
				continue
			}
			current.Modes = append(current.Modes, modes...)
			continue
		}

		if looksLikeMode.MatchString(line) {
			issues = append(issues, ParseError{
				LineNo:  lineNo,
				Line:    line,
				Display: current.Name,
				Reason:  "mode line does not match expected layout",
			})
		}
	}

	for i := range displays {
		finalizeDisplay(&displays[i])
	}

	return displays, issues
}

func parseHeader(m []string) Display {
	get := func(name string) string {
		return m[headerPattern.SubexpIndex(name)]
	}

	d := Display{
		Name:      get("out"),
		Connected: get("status") == "connected",
		Primary:   get("pr") != "",
		Rotation:  RotationNormal,
	}

	if rot := get("rot"); rot != "" {
		d.Rotation = Rotation(rot)
	}

	if get("w") != "" {
		w, _ := strconv.Atoi(get("w"))
		h, _ := strconv.Atoi(get("h"))
		x, _ := strconv.Atoi(get("x"))
		y, _ := strconv.Atoi(get("y"))
		d.Resolution = &Resolution{Width: w, Height: h}
		d.Offset = &Offset{X: x, Y: y}
	}

	return d
}

func parseModeLine(m []string) ([]Mode, bool) {
	width, _ := strconv.Atoi(m[modeLinePattern.SubexpIndex("w")])
	height, _ := strconv.Atoi(m[modeLinePattern.SubexpIndex("h")])

	rates := strings.TrimSpace(m[modeLinePattern.SubexpIndex("rates")])
	if !rateListPattern.MatchString(rates) {
		return nil, false
	}

	var modes []Mode
	for _, rm := range ratePattern.FindAllStringSubmatch(rates, -1) {
		freq, err := strconv.ParseFloat(rm[1], 64)
		if err != nil {
			return nil, false
		}
		modes = append(modes, Mode{
			Width:     width,
			Height:    height,
			Refresh:   freq,
			Current:   rm[2] != "",
			Preferred: rm[3] != "",
		})
	}
	if len(modes) == 0 {
		return nil, false
	}
	return modes, true
}

// finalizeDisplay derives enabled state and resolution once all of an
// output's mode lines are in. An output is enabled when a mode carries
// the current marker (or, for modes xrandr set without a marker, when
// the header carried a geometry token).
func finalizeDisplay(d *Display) {
	if cur := d.CurrentMode(); cur != nil {
		d.Enabled = true
		res := cur.Resolution()
		d.Resolution = &res
		return
	}
	if d.Resolution != nil {
		d.Enabled = true
		return
	}
	d.Enabled = false
}
