package device

import "fmt"

// ID is a stable device identifier. IDs are the wire representation of a
// device: serialized descriptors carry IDs, never live device handles.
type ID int

// MemoryKind is an opaque tag identifying a memory space on a device
// (e.g. "device", "pinned_host"). The empty string means unspecified.
type MemoryKind string

// String returns the tag, or "(default)" when unspecified.
func (m MemoryKind) String() string {
	if m == "" {
		return "(default)"
	}
	return string(m)
}

// Device is an immutable handle to a single compute device known to a Client.
type Device struct {
	id   ID
	kind string
}

// NewDevice creates a device handle. Normally only Client implementations
// construct devices; library code receives them via resolution.
func NewDevice(id ID, kind string) *Device {
	return &Device{id: id, kind: kind}
}

// ID returns the device's stable identifier.
func (d *Device) ID() ID {
	return d.id
}

// Kind returns the device kind (e.g. "cpu", "gpu").
func (d *Device) Kind() string {
	return d.kind
}

// String returns a human-readable device description.
func (d *Device) String() string {
	return fmt.Sprintf("%s:%d", d.kind, d.id)
}
