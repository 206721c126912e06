package shape

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// BoundedDynamicShapeTag marks, per dimension, whether the dimension is
// dynamic with the shape's value as its upper bound (true) or static (false).
type BoundedDynamicShapeTag []bool

// Clone returns a copy of the tag.
func (t BoundedDynamicShapeTag) Clone() BoundedDynamicShapeTag {
	clone := make(BoundedDynamicShapeTag, len(t))
	copy(clone, t)
	return clone
}

// Equal checks if two tags mark the same dimensions as dynamic.
func (t BoundedDynamicShapeTag) Equal(other BoundedDynamicShapeTag) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// DynamicShape is a shape where one or more dimensions are bounded rather
// than fixed. The bound values live in an ordinary Shape; the tag records
// which dimensions are dynamic.
//
// A DynamicShape is an immutable value object once constructed.
type DynamicShape struct {
	bounds Shape
	tag    BoundedDynamicShapeTag
}

// NewDynamicShape creates a DynamicShape from bound dimensions and a dynamic
// dimension tag. The tag must cover every dimension and mark at least one
// dimension as dynamic; a fully static tag should be an ordinary Shape.
func NewDynamicShape(bounds Shape, tag BoundedDynamicShapeTag) (DynamicShape, error) {
	if err := bounds.Validate(); err != nil {
		return DynamicShape{}, errors.Wrap(err, "invalid dynamic shape bounds")
	}
	if len(tag) != len(bounds) {
		return DynamicShape{}, errors.Newf(
			"dynamic shape tag has %d entries for %d dimensions", len(tag), len(bounds))
	}
	dynamic := false
	for _, d := range tag {
		if d {
			dynamic = true
			break
		}
	}
	if !dynamic {
		return DynamicShape{}, errors.New("dynamic shape must have at least one dynamic dimension")
	}
	return DynamicShape{bounds: bounds.Clone(), tag: tag.Clone()}, nil
}

// Bounds returns the bound dimensions.
func (d DynamicShape) Bounds() Shape {
	return d.bounds.Clone()
}

// Tag returns the dynamic dimension tag.
func (d DynamicShape) Tag() BoundedDynamicShapeTag {
	return d.tag.Clone()
}

// Rank returns the number of dimensions.
func (d DynamicShape) Rank() int {
	return len(d.bounds)
}

// IsDynamicDim reports whether dimension i is dynamic.
func (d DynamicShape) IsDynamicDim(i int) bool {
	return d.tag[i]
}

// Equal checks if two dynamic shapes have equal bounds and tags.
func (d DynamicShape) Equal(other DynamicShape) bool {
	return d.bounds.Equal(other.bounds) && d.tag.Equal(other.tag)
}

// String renders dynamic dimensions with a "<=" prefix, e.g. "[10 <=20]".
func (d DynamicShape) String() string {
	parts := make([]string, len(d.bounds))
	for i, dim := range d.bounds {
		if d.tag[i] {
			parts[i] = fmt.Sprintf("<=%d", dim)
		} else {
			parts[i] = fmt.Sprintf("%d", dim)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
