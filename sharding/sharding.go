// Copyright 2026 ElijahHaga. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sharding provides the public API for descriptors of how a
// distributed array value is partitioned across devices.
//
// Importing this package also registers every variant's serialization codec
// with the serdes registry.
//
// Example:
//
//	client := device.NewMockClient(2)
//	devices, _ := device.NewList(client.Devices()...)
//	s, err := sharding.NewConcreteSharding(devices, "device",
//	    shape.Shape{10, 20}, []shape.Shape{{3, 20}, {7, 20}})
package sharding

import (
	"github.com/ElijahHaga/tensorflow/internal/device"
	"github.com/ElijahHaga/tensorflow/internal/shape"
	"github.com/ElijahHaga/tensorflow/internal/sharding"
)

// Sharding describes how a distributed array value is partitioned across an
// ordered set of devices.
type Sharding = sharding.Sharding

// SingleDeviceSharding places the whole value on exactly one device.
type SingleDeviceSharding = sharding.SingleDeviceSharding

// OpaqueSharding is sharded across devices with an unspecified layout.
type OpaqueSharding = sharding.OpaqueSharding

// ConcreteSharding pairs a global shape with one shard shape per device,
// either static or bounded-dynamic.
type ConcreteSharding = sharding.ConcreteSharding

// ConcreteEvenSharding gives every device a shard of the same shape.
type ConcreteEvenSharding = sharding.ConcreteEvenSharding

// ShardingParamSharding applies a ShardingParam to a device list.
type ShardingParamSharding = sharding.ShardingParamSharding

// ShardingParam is a parameterized sharding descriptor: tile division
// factors plus a device-assignment permutation.
type ShardingParam = sharding.ShardingParam

// DeserializeOptions carries the device.Client needed to reconstruct a
// Sharding from its serialized form.
type DeserializeOptions = sharding.DeserializeOptions

// NewSingleDeviceSharding creates a sharding over a single device.
func NewSingleDeviceSharding(dev *device.Device, memoryKind device.MemoryKind) (*SingleDeviceSharding, error) {
	return sharding.NewSingleDeviceSharding(dev, memoryKind)
}

// NewOpaqueSharding creates an opaque sharding over the given devices.
func NewOpaqueSharding(devices *device.List, memoryKind device.MemoryKind) *OpaqueSharding {
	return sharding.NewOpaqueSharding(devices, memoryKind)
}

// NewConcreteSharding creates a static-shape concrete sharding.
func NewConcreteSharding(devices *device.List, memoryKind device.MemoryKind,
	globalShape shape.Shape, shardShapes []shape.Shape) (*ConcreteSharding, error) {
	return sharding.NewConcreteSharding(devices, memoryKind, globalShape, shardShapes)
}

// NewConcreteShardingDynamic creates a dynamic-shape concrete sharding.
func NewConcreteShardingDynamic(devices *device.List, memoryKind device.MemoryKind,
	dynamicShape shape.DynamicShape, shardDynamicShapes []shape.DynamicShape) (*ConcreteSharding, error) {
	return sharding.NewConcreteShardingDynamic(devices, memoryKind, dynamicShape, shardDynamicShapes)
}

// NewConcreteEvenSharding creates an even sharding with a uniform shard
// shape and a replication flag.
func NewConcreteEvenSharding(devices *device.List, memoryKind device.MemoryKind,
	globalShape, shardShape shape.Shape, isFullyReplicated bool) (*ConcreteEvenSharding, error) {
	return sharding.NewConcreteEvenSharding(devices, memoryKind, globalShape, shardShape, isFullyReplicated)
}

// NewShardingParam validates and creates a ShardingParam.
func NewShardingParam(dimShards, permutation, axisSizes []int) (ShardingParam, error) {
	return sharding.NewShardingParam(dimShards, permutation, axisSizes)
}

// NewShardingParamSharding creates a parameterized sharding.
func NewShardingParamSharding(param ShardingParam, devices *device.List,
	memoryKind device.MemoryKind) (*ShardingParamSharding, error) {
	return sharding.NewShardingParamSharding(param, devices, memoryKind)
}
