package sharding

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/ElijahHaga/tensorflow/internal/device"
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

// Verify that ConcreteSharding implements Sharding.
var _ Sharding = (*ConcreteSharding)(nil)

// ConcreteSharding pairs a global shape with one shard shape per device.
// Exactly one of two branches is populated: static (Shape plus per-shard
// Shapes) or dynamic (DynamicShape plus per-shard DynamicShapes).
type ConcreteSharding struct {
	devices    *device.List
	memoryKind device.MemoryKind

	// Static branch.
	globalShape shape.Shape
	shardShapes []shape.Shape

	// Dynamic branch.
	dynamic            bool
	dynamicShape       shape.DynamicShape
	shardDynamicShapes []shape.DynamicShape
}

// NewConcreteSharding creates a static-shape concrete sharding. The number
// of shard shapes must equal the number of devices.
func NewConcreteSharding(devices *device.List, memoryKind device.MemoryKind,
	globalShape shape.Shape, shardShapes []shape.Shape) (*ConcreteSharding, error) {
	if len(shardShapes) != devices.Len() {
		return nil, errors.Newf(
			"concrete sharding has %d shard shapes for %d devices", len(shardShapes), devices.Len())
	}
	if err := globalShape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid global shape")
	}
	copied := make([]shape.Shape, len(shardShapes))
	for i, s := range shardShapes {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid shard shape %d", i)
		}
		copied[i] = s.Clone()
	}
	return &ConcreteSharding{
		devices:     devices,
		memoryKind:  memoryKind,
		globalShape: globalShape.Clone(),
		shardShapes: copied,
	}, nil
}

// NewConcreteShardingDynamic creates a dynamic-shape concrete sharding. The
// number of shard dynamic shapes must equal the number of devices.
func NewConcreteShardingDynamic(devices *device.List, memoryKind device.MemoryKind,
	dynamicShape shape.DynamicShape, shardDynamicShapes []shape.DynamicShape) (*ConcreteSharding, error) {
	if len(shardDynamicShapes) != devices.Len() {
		return nil, errors.Newf(
			"concrete sharding has %d shard dynamic shapes for %d devices",
			len(shardDynamicShapes), devices.Len())
	}
	copied := make([]shape.DynamicShape, len(shardDynamicShapes))
	copy(copied, shardDynamicShapes)
	return &ConcreteSharding{
		devices:            devices,
		memoryKind:         memoryKind,
		dynamic:            true,
		dynamicShape:       dynamicShape,
		shardDynamicShapes: copied,
	}, nil
}

// Devices returns the ordered device list.
func (s *ConcreteSharding) Devices() *device.List {
	return s.devices
}

// MemoryKind returns the memory space tag.
func (s *ConcreteSharding) MemoryKind() device.MemoryKind {
	return s.memoryKind
}

// IsFullyReplicated is false: shards are explicit and generally unequal.
func (s *ConcreteSharding) IsFullyReplicated() bool {
	return false
}

// HasDynamicShape reports whether the dynamic branch is populated.
func (s *ConcreteSharding) HasDynamicShape() bool {
	return s.dynamic
}

// Shape returns the static global shape. Only valid when HasDynamicShape is
// false.
func (s *ConcreteSharding) Shape() shape.Shape {
	return s.globalShape.Clone()
}

// ShardShapes returns the per-device static shard shapes, in device order.
// Only valid when HasDynamicShape is false.
func (s *ConcreteSharding) ShardShapes() []shape.Shape {
	copied := make([]shape.Shape, len(s.shardShapes))
	for i, sh := range s.shardShapes {
		copied[i] = sh.Clone()
	}
	return copied
}

// DynamicShape returns the dynamic global shape. Only valid when
// HasDynamicShape is true.
func (s *ConcreteSharding) DynamicShape() shape.DynamicShape {
	return s.dynamicShape
}

// ShardDynamicShapes returns the per-device dynamic shard shapes, in device
// order. Only valid when HasDynamicShape is true.
func (s *ConcreteSharding) ShardDynamicShapes() []shape.DynamicShape {
	copied := make([]shape.DynamicShape, len(s.shardDynamicShapes))
	copy(copied, s.shardDynamicShapes)
	return copied
}

// WireType returns the serialization discriminant.
func (s *ConcreteSharding) WireType() string {
	return wireTypeConcrete
}

// String returns a human-readable description.
func (s *ConcreteSharding) String() string {
	if s.dynamic {
		return fmt.Sprintf("ConcreteSharding(%s, memory_kind=%s, dynamic_shape=%s)",
			s.devices, s.memoryKind, s.dynamicShape)
	}
	return fmt.Sprintf("ConcreteSharding(%s, memory_kind=%s, shape=%s)",
		s.devices, s.memoryKind, s.globalShape)
}
