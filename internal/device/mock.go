package device

import "github.com/cockroachdb/errors"

// Verify that MockClient implements Client.
var _ Client = (*MockClient)(nil)

// MockClient is a simple client for testing. It owns a fixed topology of
// sequentially numbered devices and resolves IDs against it.
type MockClient struct {
	devices []*Device
	byID    map[ID]*Device
}

// NewMockClient creates a client with numDevices devices of kind "mock",
// numbered 0..numDevices-1.
func NewMockClient(numDevices int) *MockClient {
	c := &MockClient{
		devices: make([]*Device, 0, numDevices),
		byID:    make(map[ID]*Device, numDevices),
	}
	for i := 0; i < numDevices; i++ {
		d := NewDevice(ID(i), "mock")
		c.devices = append(c.devices, d)
		c.byID[d.ID()] = d
	}
	return c
}

// LookupDevice resolves an ID against the mock topology.
func (c *MockClient) LookupDevice(id ID) (*Device, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, errors.Wrapf(ErrDeviceNotFound, "device id %d (topology has %d devices)", id, len(c.devices))
	}
	return d, nil
}

// Devices returns all devices in ID order.
func (c *MockClient) Devices() []*Device {
	copied := make([]*Device, len(c.devices))
	copy(copied, c.devices)
	return copied
}

// List builds a device list from the devices at the given indices.
// Panics on an unknown index; tests construct topologies they control.
func (c *MockClient) List(indices ...int) *List {
	devices := make([]*Device, 0, len(indices))
	for _, i := range indices {
		devices = append(devices, c.devices[i])
	}
	list, err := NewList(devices...)
	if err != nil {
		panic(err)
	}
	return list
}
