package sharding

import (
	"github.com/ElijahHaga/tensorflow/internal/device"
)

// Sharding describes how a distributed array value is partitioned across an
// ordered set of devices. Implementations are immutable value objects: every
// field is fixed at construction and construction validates all invariants.
type Sharding interface {
	// Devices returns the ordered device list. Shard i lives on device i.
	Devices() *device.List

	// MemoryKind returns the memory space tag shared by all shards.
	MemoryKind() device.MemoryKind

	// IsFullyReplicated reports whether every device holds the full value.
	IsFullyReplicated() bool

	// WireType returns the serialization discriminant for this variant.
	WireType() string
}

// DeserializeOptions carries the runtime dependencies needed to reconstruct
// a Sharding from its serialized form. The client is lent for the duration
// of the deserialize call only; reconstructed objects keep the resolved
// device handles, never the client itself.
type DeserializeOptions struct {
	Client device.Client
}
