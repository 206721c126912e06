package sharding

import (
	"fmt"

	"github.com/ElijahHaga/tensorflow/internal/device"
)

// Verify that SingleDeviceSharding implements Sharding.
var _ Sharding = (*SingleDeviceSharding)(nil)

// SingleDeviceSharding places the whole value on exactly one device.
type SingleDeviceSharding struct {
	devices    *device.List
	memoryKind device.MemoryKind
}

// NewSingleDeviceSharding creates a sharding over a single device.
func NewSingleDeviceSharding(dev *device.Device, memoryKind device.MemoryKind) (*SingleDeviceSharding, error) {
	devices, err := device.NewList(dev)
	if err != nil {
		return nil, err
	}
	return &SingleDeviceSharding{devices: devices, memoryKind: memoryKind}, nil
}

// Devices returns the one-element device list.
func (s *SingleDeviceSharding) Devices() *device.List {
	return s.devices
}

// MemoryKind returns the memory space tag.
func (s *SingleDeviceSharding) MemoryKind() device.MemoryKind {
	return s.memoryKind
}

// IsFullyReplicated is trivially true for a single device.
func (s *SingleDeviceSharding) IsFullyReplicated() bool {
	return true
}

// WireType returns the serialization discriminant.
func (s *SingleDeviceSharding) WireType() string {
	return wireTypeSingleDevice
}

// String returns a human-readable description.
func (s *SingleDeviceSharding) String() string {
	return fmt.Sprintf("SingleDeviceSharding(%s, memory_kind=%s)", s.devices, s.memoryKind)
}
