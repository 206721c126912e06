package device

import "github.com/cockroachdb/errors"

// ErrDeviceNotFound is returned when a device ID cannot be resolved by a
// Client, e.g. because the consumer's device topology differs from the
// producer's.
var ErrDeviceNotFound = errors.New("device not found")

// Client resolves serialized device identifiers to live device handles.
// It is the only capability this library requires from a device runtime.
//
// Implementations must be safe for concurrent read access; deserialization
// may resolve devices from multiple goroutines sharing one Client.
type Client interface {
	// LookupDevice resolves a device ID to a live handle. Returns an error
	// wrapping ErrDeviceNotFound if the ID is unknown to this client.
	LookupDevice(id ID) (*Device, error)

	// Devices enumerates all devices known to this client, in ID order.
	Devices() []*Device
}

// ResolveList looks up each ID through the client and rebuilds an ordered
// device list. Resolution failures abort the whole list.
func ResolveList(client Client, ids []ID) (*List, error) {
	devices := make([]*Device, 0, len(ids))
	for _, id := range ids {
		d, err := client.LookupDevice(id)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving device %d", id)
		}
		devices = append(devices, d)
	}
	return NewList(devices...)
}
