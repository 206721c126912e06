package sharding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElijahHaga/tensorflow/internal/device"
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

func TestSingleDeviceSharding(t *testing.T) {
	client := device.NewMockClient(2)
	dev, err := client.LookupDevice(0)
	require.NoError(t, err)

	s, err := NewSingleDeviceSharding(dev, "abc")
	require.NoError(t, err)
	assert.Equal(t, []device.ID{0}, s.Devices().IDs())
	assert.Equal(t, device.MemoryKind("abc"), s.MemoryKind())
	assert.True(t, s.IsFullyReplicated())
}

func TestOpaqueSharding(t *testing.T) {
	client := device.NewMockClient(2)

	s := NewOpaqueSharding(client.List(0, 1), "abc")
	assert.Equal(t, []device.ID{0, 1}, s.Devices().IDs())
	assert.False(t, s.IsFullyReplicated())
}

func TestConcreteShardingStatic(t *testing.T) {
	client := device.NewMockClient(2)

	s, err := NewConcreteSharding(client.List(0, 1), "abc",
		shape.Shape{10, 20}, []shape.Shape{{3, 20}, {7, 20}})
	require.NoError(t, err)

	assert.False(t, s.HasDynamicShape())
	assert.Equal(t, shape.Shape{10, 20}, s.Shape())
	assert.Equal(t, []shape.Shape{{3, 20}, {7, 20}}, s.ShardShapes())
}

func TestConcreteShardingShardCountMismatch(t *testing.T) {
	client := device.NewMockClient(2)

	// 2 devices but 3 shard shapes.
	_, err := NewConcreteSharding(client.List(0, 1), "abc",
		shape.Shape{10, 20}, []shape.Shape{{3, 20}, {3, 20}, {4, 20}})
	assert.Error(t, err)
}

func TestConcreteShardingDynamic(t *testing.T) {
	client := device.NewMockClient(2)

	global, err := shape.NewDynamicShape(shape.Shape{10, 20}, shape.BoundedDynamicShapeTag{false, true})
	require.NoError(t, err)
	shard1, err := shape.NewDynamicShape(shape.Shape{3, 20}, shape.BoundedDynamicShapeTag{false, true})
	require.NoError(t, err)
	shard2, err := shape.NewDynamicShape(shape.Shape{7, 20}, shape.BoundedDynamicShapeTag{false, true})
	require.NoError(t, err)

	s, err := NewConcreteShardingDynamic(client.List(0, 1), "abc",
		global, []shape.DynamicShape{shard1, shard2})
	require.NoError(t, err)

	assert.True(t, s.HasDynamicShape())
	assert.True(t, s.DynamicShape().Equal(global))
	require.Len(t, s.ShardDynamicShapes(), 2)
	assert.True(t, s.ShardDynamicShapes()[0].Equal(shard1))
	assert.True(t, s.ShardDynamicShapes()[1].Equal(shard2))
}

func TestConcreteShardingDynamicShardCountMismatch(t *testing.T) {
	client := device.NewMockClient(2)

	global, err := shape.NewDynamicShape(shape.Shape{10, 20}, shape.BoundedDynamicShapeTag{false, true})
	require.NoError(t, err)

	_, err = NewConcreteShardingDynamic(client.List(0, 1), "abc",
		global, []shape.DynamicShape{global})
	assert.Error(t, err)
}

func TestConcreteEvenSharding(t *testing.T) {
	client := device.NewMockClient(2)

	s, err := NewConcreteEvenSharding(client.List(0, 1), "abc",
		shape.Shape{10, 20}, shape.Shape{5, 20}, true)
	require.NoError(t, err)

	assert.Equal(t, shape.Shape{10, 20}, s.Shape())
	assert.Equal(t, shape.Shape{5, 20}, s.ShardShape())
	assert.True(t, s.IsFullyReplicated())
}

func TestNewShardingParam(t *testing.T) {
	param, err := NewShardingParam([]int{2, 1}, []int{0}, []int{2})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1}, param.DimShards())
	assert.Equal(t, []int{0}, param.Permutation())
	assert.Equal(t, []int{2}, param.AxisSizes())
	assert.Equal(t, 2, param.NumDevices())
}

func TestNewShardingParamValidation(t *testing.T) {
	tests := []struct {
		name        string
		dimShards   []int
		permutation []int
		axisSizes   []int
	}{
		{"permutation length mismatch", []int{2}, []int{0, 1}, []int{2}},
		{"out of range axis", []int{2}, []int{1}, []int{2}},
		{"repeated axis", []int{4}, []int{0, 0}, []int{2, 2}},
		{"zero dim shard", []int{0}, []int{0}, []int{2}},
		{"zero axis size", []int{1}, []int{0}, []int{0}},
		{"shards not divisible into devices", []int{3}, []int{0}, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShardingParam(tt.dimShards, tt.permutation, tt.axisSizes)
			assert.Error(t, err)
		})
	}
}

func TestShardingParamSharding(t *testing.T) {
	client := device.NewMockClient(2)
	param, err := NewShardingParam([]int{2, 1}, []int{0}, []int{2})
	require.NoError(t, err)

	s, err := NewShardingParamSharding(param, client.List(0, 1), "abc")
	require.NoError(t, err)
	assert.True(t, s.Param().Equal(param))
	assert.False(t, s.IsFullyReplicated())
}

func TestShardingParamShardingDeviceCountMismatch(t *testing.T) {
	client := device.NewMockClient(4)
	param, err := NewShardingParam([]int{2, 1}, []int{0}, []int{2})
	require.NoError(t, err)

	// Param addresses 2 devices, list has 3.
	_, err = NewShardingParamSharding(param, client.List(0, 1, 2), "abc")
	assert.Error(t, err)
}

func TestShardingParamShardingFullyReplicated(t *testing.T) {
	client := device.NewMockClient(2)
	param, err := NewShardingParam([]int{1, 1}, []int{0}, []int{2})
	require.NoError(t, err)

	s, err := NewShardingParamSharding(param, client.List(0, 1), "abc")
	require.NoError(t, err)
	assert.True(t, s.IsFullyReplicated())
}
