package mcgen

import (
	"fmt"
	"strings"
)

// resolvePath implements the dotted-path algorithm shared by switch
// compareTo and array foreign-count resolution: it does not
// try to parse the path as a general expression language, it just counts
// ascension (".."), climbs that many enclosing container/packet scopes
// from base, then splices the residual token path onto whatever
// container it lands on.
//
// base is the structural scope the path is relative to -- the switch's
// or array's own Parent, never the switch/array node itself.
//
// The resolved path is validated against the schema tree's ctree index;
// a path naming no known field is a schema-structural error, not a
// guess.
func resolvePath(t *Tree, base NodeID, raw string) (string, error) {
	ascend := strings.Count(raw, "..")
	residual := strings.ReplaceAll(raw, "../", "")
	residual = strings.ReplaceAll(residual, "..", "")
	residual = strings.ReplaceAll(residual, "/", ".")

	p := base
	for i := 0; i < ascend; i++ {
		p = ascendToComplex(t, p)
		if p == NoNode || isPacketRoot(t, p) {
			break
		}
		p = t.Node(p).Parent
	}
	p = ascendToComplex(t, p)

	var full string
	switch {
	case p == NoNode || isPacketRoot(t, p):
		full = residual
	default:
		if anchor := t.path(p); anchor != "" {
			full = anchor + "." + residual
		} else {
			full = residual
		}
	}

	if _, ok := t.lookupPath(full); !ok {
		return "", fmt.Errorf("path %q resolves to %q, which names no known field", raw, full)
	}
	return full, nil
}

// ascendToComplex climbs Parent links from p until it reaches a container,
// bitfield, or the packet root -- the only scopes a dotted path can anchor
// against. It returns p itself if p already qualifies.
func ascendToComplex(t *Tree, p NodeID) NodeID {
	for p != NoNode {
		n := t.Node(p)
		if n.IsComplex() || isPacketRoot(t, p) {
			return p
		}
		p = n.Parent
	}
	return NoNode
}

func isPacketRoot(t *Tree, id NodeID) bool {
	if id == NoNode {
		return false
	}
	n := t.Node(id)
	return n.Kind == KindContainer && n.Container.IsPacketRoot
}

// ResolveCompareTo resolves a switch's compareTo path and prefixes the
// result with "this->", since a switch's selector is always read off the
// packet struct pointer at its point of use.
func ResolveCompareTo(t *Tree, switchParent NodeID, raw string) (string, error) {
	full, err := resolvePath(t, switchParent, raw)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(full, "this->") {
		return full, nil
	}
	return "this->" + full, nil
}

// ResolveForeignCount resolves an array's foreign count path without a
// "this->" prefix: arrays resolve into container-relative names, not
// against the packet root.
func ResolveForeignCount(t *Tree, arrayParent NodeID, raw string) (string, error) {
	return resolvePath(t, arrayParent, raw)
}
