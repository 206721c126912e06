package device

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrEmptyDeviceList is returned when constructing a List with no devices.
var ErrEmptyDeviceList = errors.New("device list must be non-empty")

// List is an ordered, immutable sequence of devices. Insertion order is
// significant: shard i of a sharded array lives on device i.
type List struct {
	devices []*Device
}

// NewList creates a device list. The sequence must be non-empty.
func NewList(devices ...*Device) (*List, error) {
	if len(devices) == 0 {
		return nil, ErrEmptyDeviceList
	}
	copied := make([]*Device, len(devices))
	copy(copied, devices)
	return &List{devices: copied}, nil
}

// Devices returns the devices in order. The returned slice is a copy.
func (l *List) Devices() []*Device {
	copied := make([]*Device, len(l.devices))
	copy(copied, l.devices)
	return copied
}

// Len returns the number of devices.
func (l *List) Len() int {
	return len(l.devices)
}

// IDs returns the device identifiers in list order.
func (l *List) IDs() []ID {
	return lo.Map(l.devices, func(d *Device, _ int) ID { return d.ID() })
}

// Equal checks if two lists hold the same device IDs in the same order.
func (l *List) Equal(other *List) bool {
	if l.Len() != other.Len() {
		return false
	}
	for i, d := range l.devices {
		if d.ID() != other.devices[i].ID() {
			return false
		}
	}
	return true
}

// String returns a human-readable list description.
func (l *List) String() string {
	parts := lo.Map(l.devices, func(d *Device, _ int) string { return d.String() })
	return "[" + strings.Join(parts, ",") + "]"
}
