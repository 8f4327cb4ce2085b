// Package osm holds the OpenStreetMap object types referenced by tag-file
// diagnostics.
//
// See https://wiki.openstreetmap.org/wiki/Elements for the data model.
package osm

import (
	"fmt"
	"strings"
)

// ID is an OSM object id. Negative values indicate an updated/created
// object that has not been sent to the server.
type ID = int64

// Version is an OSM object version.
type Version = int32

// Kind is an OSM object type.
type Kind int

const (
	Node Kind = iota
	Way
	Relation
)

// KindFromOtype maps the numeric object-type code used in TSV exports.
func KindFromOtype(otype int) (Kind, bool) {
	switch otype {
	case 0:
		return Node, true
	case 1:
		return Way, true
	case 2:
		return Relation, true
	default:
		return 0, false
	}
}

// KindFromOname maps the lowercase object-type word used in TSV exports.
func KindFromOname(oname string) (Kind, bool) {
	switch strings.TrimSpace(oname) {
	case "node":
		return Node, true
	case "way":
		return Way, true
	case "relation":
		return Relation, true
	default:
		return 0, false
	}
}

// Otype returns the numeric object-type code.
func (k Kind) Otype() int {
	return int(k)
}

// Oname returns the lowercase object-type word.
func (k Kind) Oname() string {
	switch k {
	case Node:
		return "node"
	case Way:
		return "way"
	case Relation:
		return "relation"
	default:
		return "unknown"
	}
}

func (k Kind) String() string { return k.Oname() }

// URL returns a link to the object on osm.org, or "" for ids that only
// exist locally.
func URL(kind Kind, id ID) string {
	if id < 0 {
		return ""
	}
	return fmt.Sprintf("https://osm.org/%s/%d", kind.Oname(), id)
}
