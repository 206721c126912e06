package sharding

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElijahHaga/tensorflow/internal/device"
	"github.com/ElijahHaga/tensorflow/internal/serdes"
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

// forEachVersion runs fn once per supported wire version, as a subtest.
func forEachVersion(t *testing.T, fn func(t *testing.T, version serdes.Version)) {
	for _, version := range serdes.AllSupportedVersions() {
		t.Run(version.String(), func(t *testing.T) {
			fn(t, version)
		})
	}
}

func deserializeOpts(client device.Client) DeserializeOptions {
	return DeserializeOptions{Client: client}
}

func TestSingleDeviceShardingRoundTrip(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		dev, err := client.LookupDevice(0)
		require.NoError(t, err)
		in, err := NewSingleDeviceSharding(dev, "abc")
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*SingleDeviceSharding](env, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, in.Devices().IDs(), out.Devices().IDs())
		assert.Equal(t, in.MemoryKind(), out.MemoryKind())
	})
}

func TestOpaqueShardingRoundTrip(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		in := NewOpaqueSharding(client.List(0, 1), "abc")

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*OpaqueSharding](env, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, []device.ID{0, 1}, out.Devices().IDs())
		assert.Equal(t, device.MemoryKind("abc"), out.MemoryKind())
	})
}

func TestConcreteShardingRoundTrip(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		in, err := NewConcreteSharding(client.List(0, 1), "abc",
			shape.Shape{10, 20}, []shape.Shape{{3, 20}, {7, 20}})
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*ConcreteSharding](env, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, []device.ID{0, 1}, out.Devices().IDs())
		assert.Equal(t, device.MemoryKind("abc"), out.MemoryKind())
		require.False(t, out.HasDynamicShape())
		assert.Equal(t, shape.Shape{10, 20}, out.Shape())
		assert.Equal(t, []shape.Shape{{3, 20}, {7, 20}}, out.ShardShapes())
	})
}

func TestConcreteShardingWithDynamicShapeRoundTrip(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)

		global, err := shape.NewDynamicShape(shape.Shape{10, 20}, shape.BoundedDynamicShapeTag{false, true})
		require.NoError(t, err)
		shard1, err := shape.NewDynamicShape(shape.Shape{3, 20}, shape.BoundedDynamicShapeTag{false, true})
		require.NoError(t, err)
		shard2, err := shape.NewDynamicShape(shape.Shape{7, 20}, shape.BoundedDynamicShapeTag{false, true})
		require.NoError(t, err)

		in, err := NewConcreteShardingDynamic(client.List(0, 1), "abc",
			global, []shape.DynamicShape{shard1, shard2})
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*ConcreteSharding](env, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, []device.ID{0, 1}, out.Devices().IDs())
		require.True(t, out.HasDynamicShape())
		assert.True(t, out.DynamicShape().Equal(global))
		require.Len(t, out.ShardDynamicShapes(), 2)
		assert.True(t, out.ShardDynamicShapes()[0].Equal(shard1))
		assert.True(t, out.ShardDynamicShapes()[1].Equal(shard2))
	})
}

func TestConcreteEvenShardingRoundTrip(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		in, err := NewConcreteEvenSharding(client.List(0, 1), "abc",
			shape.Shape{10, 20}, shape.Shape{5, 20}, true)
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*ConcreteEvenSharding](env, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, []device.ID{0, 1}, out.Devices().IDs())
		assert.Equal(t, shape.Shape{10, 20}, out.Shape())
		assert.Equal(t, shape.Shape{5, 20}, out.ShardShape())
		assert.True(t, out.IsFullyReplicated())
	})
}

// The replication flag is semantic; false must round-trip as false, not
// default back to true or get lost.
func TestConcreteEvenShardingReplicationFlagFalse(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		in, err := NewConcreteEvenSharding(client.List(0, 1), "abc",
			shape.Shape{10, 20}, shape.Shape{5, 20}, false)
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*ConcreteEvenSharding](env, deserializeOpts(client))
		require.NoError(t, err)
		assert.False(t, out.IsFullyReplicated())
	})
}

func TestShardingParamShardingRoundTrip(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		param, err := NewShardingParam([]int{2, 1}, []int{0}, []int{2})
		require.NoError(t, err)
		in, err := NewShardingParamSharding(param, client.List(0, 1), "abc")
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*ShardingParamSharding](env, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, []device.ID{0, 1}, out.Devices().IDs())
		assert.True(t, out.Param().Equal(param))
	})
}

// The permutation assigns shards to devices; its order must survive exactly.
func TestShardingParamPermutationOrderPreserved(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(4)
		param, err := NewShardingParam([]int{2, 2}, []int{1, 0}, []int{2, 2})
		require.NoError(t, err)
		in, err := NewShardingParamSharding(param, client.List(0, 1, 2, 3), "abc")
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)

		out, err := serdes.Deserialize[*ShardingParamSharding](env, deserializeOpts(client))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0}, out.Param().Permutation())
	})
}

// Round trip through envelope bytes, the full cross-process path.
func TestRoundTripThroughEnvelopeBytes(t *testing.T) {
	forEachVersion(t, func(t *testing.T, version serdes.Version) {
		client := device.NewMockClient(2)
		in, err := NewConcreteSharding(client.List(0, 1), "abc",
			shape.Shape{10, 20}, []shape.Shape{{3, 20}, {7, 20}})
		require.NoError(t, err)

		env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
		require.NoError(t, err)
		wire, err := env.MarshalBinary()
		require.NoError(t, err)

		received, err := serdes.UnmarshalEnvelope(wire)
		require.NoError(t, err)
		out, err := serdes.Deserialize[*ConcreteSharding](received, deserializeOpts(client))
		require.NoError(t, err)

		assert.Equal(t, shape.Shape{10, 20}, out.Shape())
		assert.Equal(t, []shape.Shape{{3, 20}, {7, 20}}, out.ShardShapes())
	})
}

func TestDeserializeWrongVariant(t *testing.T) {
	client := device.NewMockClient(2)
	in := NewOpaqueSharding(client.List(0, 1), "abc")

	env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.CurrentVersion})
	require.NoError(t, err)

	_, err = serdes.Deserialize[*ConcreteSharding](env, deserializeOpts(client))
	assert.ErrorIs(t, err, serdes.ErrTypeMismatch)
}

func TestDeserializeUnknownTypeName(t *testing.T) {
	client := device.NewMockClient(2)
	env := &serdes.Envelope{
		TypeName: "sharding.NeverRegistered",
		Version:  serdes.CurrentVersion,
		Data:     []byte(`{}`),
	}

	_, err := serdes.Deserialize[*OpaqueSharding](env, deserializeOpts(client))
	assert.ErrorIs(t, err, serdes.ErrUnregisteredType)
}

func TestDeserializeUnknownVersion(t *testing.T) {
	client := device.NewMockClient(2)
	in := NewOpaqueSharding(client.List(0, 1), "abc")

	env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.CurrentVersion})
	require.NoError(t, err)
	env.Version = serdes.Version(99)

	_, err = serdes.Deserialize[*OpaqueSharding](env, deserializeOpts(client))
	assert.ErrorIs(t, err, serdes.ErrUnsupportedVersion)
}

func TestSerializeUnknownVersion(t *testing.T) {
	client := device.NewMockClient(2)
	in := NewOpaqueSharding(client.List(0, 1), "abc")

	_, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.Version(99)})
	assert.ErrorIs(t, err, serdes.ErrUnsupportedVersion)
}

// An envelope produced at the oldest version must stay decodable by a
// consumer that also knows newer versions.
func TestOldestVersionStaysDecodable(t *testing.T) {
	client := device.NewMockClient(2)
	in, err := NewConcreteSharding(client.List(0, 1), "abc",
		shape.Shape{10, 20}, []shape.Shape{{3, 20}, {7, 20}})
	require.NoError(t, err)

	oldest := serdes.AllSupportedVersions()[0]
	env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: oldest})
	require.NoError(t, err)

	out, err := serdes.Deserialize[*ConcreteSharding](env, deserializeOpts(client))
	require.NoError(t, err)
	assert.Equal(t, shape.Shape{10, 20}, out.Shape())
}

func TestDeserializeMalformedPayload(t *testing.T) {
	client := device.NewMockClient(2)
	in := NewOpaqueSharding(client.List(0, 1), "abc")

	env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.CurrentVersion})
	require.NoError(t, err)
	env.Data = env.Data[:len(env.Data)/2] // truncate

	_, err = serdes.Deserialize[*OpaqueSharding](env, deserializeOpts(client))
	assert.ErrorIs(t, err, serdes.ErrMalformedPayload)
}

// A payload whose shard shape count disagrees with its device count must be
// rejected by the re-applied construction invariant, not padded or truncated.
func TestDeserializeShardCountMismatchPayload(t *testing.T) {
	client := device.NewMockClient(2)
	env := &serdes.Envelope{
		TypeName: "sharding.ConcreteSharding",
		Version:  serdes.Version1,
		Data: []byte(`{
			"device_ids": [0, 1],
			"memory_kind": "abc",
			"shape": [10, 20],
			"shard_shapes": [[3, 20], [3, 20], [4, 20]]
		}`),
	}

	_, err := serdes.Deserialize[*ConcreteSharding](env, deserializeOpts(client))
	assert.ErrorIs(t, err, serdes.ErrMalformedPayload)
}

func TestDeserializeDeviceCountCrossCheck(t *testing.T) {
	client := device.NewMockClient(2)
	env := &serdes.Envelope{
		TypeName: "sharding.OpaqueSharding",
		Version:  serdes.Version2,
		Data:     []byte(`{"device_ids": [0, 1], "memory_kind": "abc", "device_count": 3}`),
	}

	_, err := serdes.Deserialize[*OpaqueSharding](env, deserializeOpts(client))
	assert.ErrorIs(t, err, serdes.ErrMalformedPayload)
}

func TestDeserializeDeviceResolutionFailure(t *testing.T) {
	producer := device.NewMockClient(2)
	in := NewOpaqueSharding(producer.List(0, 1), "abc")

	env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.CurrentVersion})
	require.NoError(t, err)

	// Consumer topology has a single device; id 1 cannot resolve.
	consumer := device.NewMockClient(1)
	_, err = serdes.Deserialize[*OpaqueSharding](env, deserializeOpts(consumer))
	assert.ErrorIs(t, err, device.ErrDeviceNotFound)
}

func TestDeserializeWithoutClient(t *testing.T) {
	client := device.NewMockClient(2)
	in := NewOpaqueSharding(client.List(0, 1), "abc")

	env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.CurrentVersion})
	require.NoError(t, err)

	_, err = serdes.Deserialize[*OpaqueSharding](env, nil)
	assert.Error(t, err)
	_, err = serdes.Deserialize[*OpaqueSharding](env, DeserializeOptions{})
	assert.Error(t, err)
}

// Serialize is a pure function of the object and version; concurrent calls
// over a shared client must be independent.
func TestConcurrentRoundTrips(t *testing.T) {
	client := device.NewMockClient(2)
	in, err := NewConcreteSharding(client.List(0, 1), "abc",
		shape.Shape{10, 20}, []shape.Shape{{3, 20}, {7, 20}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		version := serdes.AllSupportedVersions()[i%len(serdes.AllSupportedVersions())]
		wg.Add(1)
		go func() {
			defer wg.Done()
			env, err := serdes.Serialize(in, serdes.SerializeOptions{Version: version})
			assert.NoError(t, err)
			out, err := serdes.Deserialize[*ConcreteSharding](env, deserializeOpts(client))
			assert.NoError(t, err)
			assert.Equal(t, []device.ID{0, 1}, out.Devices().IDs())
		}()
	}
	wg.Wait()
}

// The v2 layout packs dynamic dimension tags into a bitmask; the v1 layout
// keeps the bool array. Check the payloads actually differ.
func TestDynamicShapeWireLayoutPerVersion(t *testing.T) {
	client := device.NewMockClient(1)
	global, err := shape.NewDynamicShape(shape.Shape{10, 20}, shape.BoundedDynamicShapeTag{false, true})
	require.NoError(t, err)
	in, err := NewConcreteShardingDynamic(client.List(0), "abc",
		global, []shape.DynamicShape{global})
	require.NoError(t, err)

	envV1, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.Version1})
	require.NoError(t, err)
	envV2, err := serdes.Serialize(in, serdes.SerializeOptions{Version: serdes.Version2})
	require.NoError(t, err)

	assert.Contains(t, string(envV1.Data), "dynamic_dims")
	assert.NotContains(t, string(envV1.Data), "dynamic_mask")
	assert.Contains(t, string(envV2.Data), "dynamic_mask")
	assert.NotContains(t, string(envV2.Data), "dynamic_dims")
}
