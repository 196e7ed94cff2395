package randr

import "strings"

// Relation describes where one output's screen area sits relative to
// another's.
type Relation string

const (
	RelationLeftOf  Relation = "leftof"
	RelationRightOf Relation = "rightof"
	RelationAbove   Relation = "above"
	RelationBelow   Relation = "below"
	RelationSameAs  Relation = "sameas"
)

var relationFlags = map[Relation]string{
	RelationLeftOf:  "--left-of",
	RelationRightOf: "--right-of",
	RelationAbove:   "--above",
	RelationBelow:   "--below",
	RelationSameAs:  "--same-as",
}

// ParseRelation normalizes a relation token ("RightOf", "right-of",
// "rightof") to its canonical form.
func ParseRelation(s string) (Relation, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	token = strings.ReplaceAll(token, "-", "")
	token = strings.ReplaceAll(token, "_", "")

	r := Relation(token)
	if !r.Valid() {
		return "", &ValidationError{Field: "position", Value: s, Reason: "unknown relation"}
	}
	return r, nil
}

// Valid reports whether r is one of the five recognized relations.
func (r Relation) Valid() bool {
	_, ok := relationFlags[r]
	return ok
}

// Flag returns the xrandr command-line flag for the relation,
// e.g. "--right-of" for RelationRightOf.
func (r Relation) Flag() string {
	return relationFlags[r]
}

// Position places one output relative to another named output.
type Position struct {
	Relation   Relation `json:"relation"`
	RelativeTo string   `json:"relative_to"`
}

// Offset is an output's absolute position in the virtual screen, as
// reported in the geometry token of a query header.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}
