package sharding

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/ElijahHaga/tensorflow/internal/device"
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

// Verify that ConcreteEvenSharding implements Sharding.
var _ Sharding = (*ConcreteEvenSharding)(nil)

// ConcreteEvenSharding describes an even partition: every device holds a
// shard of the same shape. Whether the shard shape actually tiles the global
// shape is the concern of the layout rules that produced it; this type only
// carries the description.
type ConcreteEvenSharding struct {
	devices           *device.List
	memoryKind        device.MemoryKind
	globalShape       shape.Shape
	shardShape        shape.Shape
	isFullyReplicated bool
}

// NewConcreteEvenSharding creates an even sharding. isFullyReplicated marks
// every shard as a full copy of the value; it is semantic, not cosmetic, and
// must survive serialization exactly.
func NewConcreteEvenSharding(devices *device.List, memoryKind device.MemoryKind,
	globalShape, shardShape shape.Shape, isFullyReplicated bool) (*ConcreteEvenSharding, error) {
	if err := globalShape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid global shape")
	}
	if err := shardShape.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid shard shape")
	}
	return &ConcreteEvenSharding{
		devices:           devices,
		memoryKind:        memoryKind,
		globalShape:       globalShape.Clone(),
		shardShape:        shardShape.Clone(),
		isFullyReplicated: isFullyReplicated,
	}, nil
}

// Devices returns the ordered device list.
func (s *ConcreteEvenSharding) Devices() *device.List {
	return s.devices
}

// MemoryKind returns the memory space tag.
func (s *ConcreteEvenSharding) MemoryKind() device.MemoryKind {
	return s.memoryKind
}

// IsFullyReplicated reports whether every device holds the full value.
func (s *ConcreteEvenSharding) IsFullyReplicated() bool {
	return s.isFullyReplicated
}

// Shape returns the global shape.
func (s *ConcreteEvenSharding) Shape() shape.Shape {
	return s.globalShape.Clone()
}

// ShardShape returns the uniform per-device shard shape.
func (s *ConcreteEvenSharding) ShardShape() shape.Shape {
	return s.shardShape.Clone()
}

// WireType returns the serialization discriminant.
func (s *ConcreteEvenSharding) WireType() string {
	return wireTypeConcreteEven
}

// String returns a human-readable description.
func (s *ConcreteEvenSharding) String() string {
	return fmt.Sprintf("ConcreteEvenSharding(%s, memory_kind=%s, shape=%s, shard_shape=%s, replicated=%t)",
		s.devices, s.memoryKind, s.globalShape, s.shardShape, s.isFullyReplicated)
}
