// Package sharding defines the descriptors for how a distributed array
// value is partitioned across devices, and their wire codecs.
//
// Five descriptor variants exist:
//   - SingleDeviceSharding: the whole value on one device
//   - OpaqueSharding: sharded across devices, layout unspecified
//   - ConcreteSharding: explicit per-device shard shapes, static or dynamic
//   - ConcreteEvenSharding: one uniform shard shape, optional replication
//   - ShardingParamSharding: tile factors plus a device permutation
//
// Each variant registers its codec with the serdes registry at package
// initialization, so importing this package is enough to make every variant
// serializable. Deserialization needs a device.Client (passed via
// DeserializeOptions) to resolve serialized device IDs back to live handles.
package sharding
