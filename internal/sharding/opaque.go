package sharding

import (
	"fmt"

	"github.com/ElijahHaga/tensorflow/internal/device"
)

// Verify that OpaqueSharding implements Sharding.
var _ Sharding = (*OpaqueSharding)(nil)

// OpaqueSharding marks a value as sharded across a set of devices with an
// unknown or unspecified layout. It is a placeholder: consumers know which
// devices participate but nothing about per-shard shapes.
type OpaqueSharding struct {
	devices    *device.List
	memoryKind device.MemoryKind
}

// NewOpaqueSharding creates an opaque sharding over the given devices.
func NewOpaqueSharding(devices *device.List, memoryKind device.MemoryKind) *OpaqueSharding {
	return &OpaqueSharding{devices: devices, memoryKind: memoryKind}
}

// Devices returns the ordered device list.
func (s *OpaqueSharding) Devices() *device.List {
	return s.devices
}

// MemoryKind returns the memory space tag.
func (s *OpaqueSharding) MemoryKind() device.MemoryKind {
	return s.memoryKind
}

// IsFullyReplicated is false: the layout is unknown, so replication cannot
// be assumed.
func (s *OpaqueSharding) IsFullyReplicated() bool {
	return false
}

// WireType returns the serialization discriminant.
func (s *OpaqueSharding) WireType() string {
	return wireTypeOpaque
}

// String returns a human-readable description.
func (s *OpaqueSharding) String() string {
	return fmt.Sprintf("OpaqueSharding(%s, memory_kind=%s)", s.devices, s.memoryKind)
}
