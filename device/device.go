// Copyright 2026 ElijahHaga. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package device provides the public API for device handles, ordered device
// lists, and the Client capability that resolves serialized device IDs back
// to live handles.
//
// Example:
//
//	client := device.NewMockClient(2)
//	dev, _ := client.LookupDevice(0)
//	list, _ := device.NewList(dev)
package device

import (
	"github.com/ElijahHaga/tensorflow/internal/device"
)

// ID is a stable device identifier, the wire representation of a device.
type ID = device.ID

// Device is an immutable handle to a single compute device.
type Device = device.Device

// MemoryKind is an opaque tag identifying a memory space on a device.
type MemoryKind = device.MemoryKind

// List is an ordered, immutable, non-empty sequence of devices.
type List = device.List

// Client resolves serialized device identifiers to live device handles.
type Client = device.Client

// MockClient is a fixed-topology client for testing.
type MockClient = device.MockClient

// Sentinel errors.
var (
	ErrEmptyDeviceList = device.ErrEmptyDeviceList
	ErrDeviceNotFound  = device.ErrDeviceNotFound
)

// NewDevice creates a device handle.
func NewDevice(id ID, kind string) *Device {
	return device.NewDevice(id, kind)
}

// NewList creates a device list. The sequence must be non-empty.
func NewList(devices ...*Device) (*List, error) {
	return device.NewList(devices...)
}

// NewMockClient creates a client with numDevices sequentially numbered
// devices.
func NewMockClient(numDevices int) *MockClient {
	return device.NewMockClient(numDevices)
}

// ResolveList resolves each ID through the client into an ordered list.
func ResolveList(client Client, ids []ID) (*List, error) {
	return device.ResolveList(client, ids)
}
