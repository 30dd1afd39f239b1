package inventory

import (
	"regexp"
	"strings"
)

type IdentifierKind int

const (
	// IdentifierNone means no project filter.
	IdentifierNone IdentifierKind = iota
	IdentifierProjectID
	IdentifierName
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierProjectID:
		return "project_id"
	case IdentifierName:
		return "name"
	default:
		return "none"
	}
}

// Identifier is a classified caller-supplied project reference.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsUUID reports whether s has the canonical 8-4-4-4-12 hex shape.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// Classify decides whether s is a project id, a free-text name or empty.
func Classify(s string) Identifier {
	v := strings.TrimSpace(s)
	switch {
	case v == "":
		return Identifier{Kind: IdentifierNone}
	case IsUUID(v):
		return Identifier{Kind: IdentifierProjectID, Value: v}
	default:
		return Identifier{Kind: IdentifierName, Value: v}
	}
}
