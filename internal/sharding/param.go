package sharding

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/ElijahHaga/tensorflow/internal/device"
)

// ShardingParam is a parameterized sharding descriptor: per-dimension tile
// division factors plus a device-assignment permutation over mesh axes. The
// permutation is non-commutative; reordering it assigns shards to different
// devices.
//
// A ShardingParam is immutable once built by NewShardingParam.
type ShardingParam struct {
	dimShards   []int
	permutation []int
	axisSizes   []int
}

// NewShardingParam validates and creates a ShardingParam.
//
// Invariants: permutation and axisSizes have equal length; permutation is a
// permutation of [0, len(axisSizes)); all factors and sizes are positive;
// the device mesh size (product of axisSizes) is divisible by the total
// shard count (product of dimShards), the remainder being replication.
func NewShardingParam(dimShards, permutation, axisSizes []int) (ShardingParam, error) {
	if len(permutation) != len(axisSizes) {
		return ShardingParam{}, errors.Newf(
			"permutation has %d axes, axis sizes have %d", len(permutation), len(axisSizes))
	}
	seen := make([]bool, len(axisSizes))
	for _, p := range permutation {
		if p < 0 || p >= len(axisSizes) || seen[p] {
			return ShardingParam{}, errors.Newf(
				"invalid device assignment permutation %v over %d axes", permutation, len(axisSizes))
		}
		seen[p] = true
	}
	numShards := 1
	for i, d := range dimShards {
		if d <= 0 {
			return ShardingParam{}, errors.Newf("dim shard factor %d at index %d must be > 0", d, i)
		}
		numShards *= d
	}
	numDevices := 1
	for i, s := range axisSizes {
		if s <= 0 {
			return ShardingParam{}, errors.Newf("axis size %d at index %d must be > 0", s, i)
		}
		numDevices *= s
	}
	if numDevices%numShards != 0 {
		return ShardingParam{}, errors.Newf(
			"%d shards cannot be assigned to %d devices", numShards, numDevices)
	}
	return ShardingParam{
		dimShards:   cloneInts(dimShards),
		permutation: cloneInts(permutation),
		axisSizes:   cloneInts(axisSizes),
	}, nil
}

// DimShards returns the per-dimension tile division factors.
func (p ShardingParam) DimShards() []int {
	return cloneInts(p.dimShards)
}

// Permutation returns the device-assignment permutation, minor to major.
func (p ShardingParam) Permutation() []int {
	return cloneInts(p.permutation)
}

// AxisSizes returns the mesh axis sizes, minor to major.
func (p ShardingParam) AxisSizes() []int {
	return cloneInts(p.axisSizes)
}

// NumDevices returns the device mesh size the param addresses.
func (p ShardingParam) NumDevices() int {
	n := 1
	for _, s := range p.axisSizes {
		n *= s
	}
	return n
}

// Equal checks structural equality, permutation order included.
func (p ShardingParam) Equal(other ShardingParam) bool {
	return intsEqual(p.dimShards, other.dimShards) &&
		intsEqual(p.permutation, other.permutation) &&
		intsEqual(p.axisSizes, other.axisSizes)
}

// String returns a human-readable description.
func (p ShardingParam) String() string {
	return fmt.Sprintf("ShardingParam(dim_shards=%v, permutation=%v, axis_sizes=%v)",
		p.dimShards, p.permutation, p.axisSizes)
}

// Verify that ShardingParamSharding implements Sharding.
var _ Sharding = (*ShardingParamSharding)(nil)

// ShardingParamSharding applies a ShardingParam to a concrete device list.
type ShardingParamSharding struct {
	param      ShardingParam
	devices    *device.List
	memoryKind device.MemoryKind
}

// NewShardingParamSharding creates a parameterized sharding. The param's
// mesh size must equal the device list length.
func NewShardingParamSharding(param ShardingParam, devices *device.List,
	memoryKind device.MemoryKind) (*ShardingParamSharding, error) {
	if param.NumDevices() != devices.Len() {
		return nil, errors.Newf(
			"sharding param addresses %d devices, list has %d", param.NumDevices(), devices.Len())
	}
	return &ShardingParamSharding{param: param, devices: devices, memoryKind: memoryKind}, nil
}

// Param returns the sharding parameter.
func (s *ShardingParamSharding) Param() ShardingParam {
	return s.param
}

// Devices returns the ordered device list.
func (s *ShardingParamSharding) Devices() *device.List {
	return s.devices
}

// MemoryKind returns the memory space tag.
func (s *ShardingParamSharding) MemoryKind() device.MemoryKind {
	return s.memoryKind
}

// IsFullyReplicated reports whether no dimension is divided, i.e. the param
// tiles nothing and every device holds the full value.
func (s *ShardingParamSharding) IsFullyReplicated() bool {
	for _, d := range s.param.dimShards {
		if d != 1 {
			return false
		}
	}
	return true
}

// WireType returns the serialization discriminant.
func (s *ShardingParamSharding) WireType() string {
	return wireTypeShardingParam
}

// String returns a human-readable description.
func (s *ShardingParamSharding) String() string {
	return fmt.Sprintf("ShardingParamSharding(%s, %s, memory_kind=%s)", s.param, s.devices, s.memoryKind)
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
