package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Path is a sequence of child indices, leading from a root node to one of
// its descendents. The empty path denotes the root itself.
//
//    mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))
//
// Path [0 1] addresses node cos(π), path [1 0 1] addresses z.
type Path []int

// PathOf creates a path from a list of child indices. Negative indices are
// rejected with ErrInvalidPath.
func PathOf(indices ...int) (Path, error) {
	for i, x := range indices {
		if x < 0 {
			return nil, fmt.Errorf("%w: index at position %d is negative: %d",
				ErrInvalidPath, i, x)
		}
	}
	return Path(slices.Clone(indices)), nil
}

// Len returns the length of a path, which is the depth of the addressed node.
func (p Path) Len() int {
	return len(p)
}

// IsRoot is true for the empty path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Append returns a new path with child indices appended.
func (p Path) Append(indices ...int) Path {
	q := make(Path, len(p), len(p)+len(indices))
	copy(q, p)
	return append(q, indices...)
}

// Parent returns the path of the parent node. The parent path of the root is
// the root path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return slices.Clone(p[:len(p)-1])
}

// Equal compares two paths.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(x))
	}
	b.WriteByte(']')
	return b.String()
}
