// Package builtins holds the static host tables: predeclared globals,
// attribute sets for member access, query vocabulary and the achronal
// field accessors.
package builtins

import (
	"maps"
	"slices"

	"redux/internal/ast"
	"redux/internal/intrinsics"
	"redux/internal/types"
)

// Global is a predeclared host name.
type Global struct {
	Name string
	Type types.Type
}

var defaultGlobals = []Global{
	{"perf_ret", types.Int},
	{"perf_ret_float", types.Float},
	{"self", types.Object},
	{"target", types.Object},
	{"query_unit", types.Object},
	{"current_time", types.Int},
	{"player", types.Int},
}

// Host is the set of names visible before the first statement of a unit.
// Each compilation gets its own Host; the tables behind it are read-only.
type Host struct {
	Globals []Global
}

// Default returns a Host with the standard globals.
func Default() *Host {
	return &Host{Globals: slices.Clone(defaultGlobals)}
}

// WithGlobals returns a copy of h extended with extra globals in name order.
// A name already present keeps its original type.
func (h *Host) WithGlobals(extra map[string]types.Type) *Host {
	out := &Host{Globals: slices.Clone(h.Globals)}
	for _, name := range slices.Sorted(maps.Keys(extra)) {
		if out.Lookup(name) {
			continue
		}
		out.Globals = append(out.Globals, Global{Name: name, Type: extra[name]})
	}
	return out
}

// Lookup reports whether name is a host global.
func (h *Host) Lookup(name string) bool {
	return slices.ContainsFunc(h.Globals, func(g Global) bool { return g.Name == name })
}

// Names lists every predeclared name: globals, intrinsics and the achronal
// accessors.
func (h *Host) Names() []string {
	names := make([]string, 0, len(h.Globals)+16)
	for _, g := range h.Globals {
		names = append(names, g.Name)
	}
	names = append(names, intrinsics.Names()...)
	names = append(names, GetAchronalField, SetAchronalField)
	return names
}

// ParseGlobalType maps a manifest type name onto a storable type.
func ParseGlobalType(name string) (types.Type, bool) {
	switch name {
	case "int":
		return types.Int, true
	case "float":
		return types.Float, true
	case "object":
		return types.Object, true
	default:
		return types.Invalid, false
	}
}

type attrSet map[string]struct{}

func newAttrSet(names ...string) attrSet {
	s := make(attrSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

var (
	dottedAttrs  = newAttrSet("hp", "max_hp", "energy", "player", "type", "x", "y", "z", "heading", "team")
	chronalAttrs = newAttrSet("age", "timeline", "birth_time", "death_time", "chrono_energy")
	classAttrs   = newAttrSet("cost", "speed", "range", "armor", "build_time", "max_hp")
)

// IsAttribute reports whether member is valid for the access kind on an
// object base.
func IsAttribute(kind ast.ExprKind, member string) bool {
	var set attrSet
	switch kind {
	case ast.ExprDotted:
		set = dottedAttrs
	case ast.ExprChronal:
		set = chronalAttrs
	case ast.ExprClass:
		set = classAttrs
	default:
		return false
	}
	_, ok := set[member]
	return ok
}

// Query vocabulary.
const (
	QueryUnit     = "UNIT"
	QueryValue    = "VALUE"
	QueryBestMove = "BESTMOVE"
)

var (
	queryKinds = newAttrSet(QueryUnit, QueryValue, QueryBestMove)
	queryOps   = newAttrSet("MIN", "MAX", "SUM", "COUNT", "FIRST", "RANDOM")
)

func IsQueryKind(k string) bool {
	_, ok := queryKinds[k]
	return ok
}

func IsQueryOp(op string) bool {
	_, ok := queryOps[op]
	return ok
}
