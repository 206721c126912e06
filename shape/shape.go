// Copyright 2026 ElijahHaga. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package shape provides the public API for array shape metadata.
//
// A Shape is a plain dimension vector; a DynamicShape tags dimensions as
// bounded-dynamic. Both are value types used by sharding descriptors.
package shape

import (
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

// Shape represents the dimensions of an array or array shard.
type Shape = shape.Shape

// BoundedDynamicShapeTag marks, per dimension, whether the dimension is
// dynamic with the shape's value as its upper bound.
type BoundedDynamicShapeTag = shape.BoundedDynamicShapeTag

// DynamicShape is a shape with one or more bounded-dynamic dimensions.
type DynamicShape = shape.DynamicShape

// NewDynamicShape creates a DynamicShape from bound dimensions and a
// dynamic dimension tag.
func NewDynamicShape(bounds Shape, tag BoundedDynamicShapeTag) (DynamicShape, error) {
	return shape.NewDynamicShape(bounds, tag)
}
