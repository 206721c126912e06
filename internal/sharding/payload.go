package sharding

import (
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/ElijahHaga/tensorflow/internal/device"
	"github.com/ElijahHaga/tensorflow/internal/serdes"
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Wire type discriminants. These are stable wire contract values; renaming
// one breaks every stored envelope.
const (
	wireTypeSingleDevice  = "sharding.SingleDeviceSharding"
	wireTypeOpaque        = "sharding.OpaqueSharding"
	wireTypeConcrete      = "sharding.ConcreteSharding"
	wireTypeConcreteEven  = "sharding.ConcreteEvenSharding"
	wireTypeShardingParam = "sharding.ShardingParamSharding"
)

// deviceHeader is the payload prefix shared by every variant at every
// version: the ordered device IDs and the memory kind tag.
//
// DeviceCount is the v2 cross-check; it is omitted at v1 and must equal
// len(DeviceIDs) at v2.
type deviceHeader struct {
	DeviceIDs   []int  `json:"device_ids"`
	MemoryKind  string `json:"memory_kind,omitempty"`
	DeviceCount int    `json:"device_count,omitempty"`
}

func newDeviceHeader(devices *device.List, memoryKind device.MemoryKind, version serdes.Version) deviceHeader {
	h := deviceHeader{
		DeviceIDs:  lo.Map(devices.IDs(), func(id device.ID, _ int) int { return int(id) }),
		MemoryKind: string(memoryKind),
	}
	if version >= serdes.Version2 {
		h.DeviceCount = devices.Len()
	}
	return h
}

// resolve validates the header per version and resolves the device IDs
// through the lent client.
func (h deviceHeader) resolve(version serdes.Version, opts DeserializeOptions) (*device.List, device.MemoryKind, error) {
	if len(h.DeviceIDs) == 0 {
		return nil, "", errors.Wrap(serdes.ErrMalformedPayload, "payload has no device ids")
	}
	if version >= serdes.Version2 && h.DeviceCount != len(h.DeviceIDs) {
		return nil, "", errors.Wrapf(serdes.ErrMalformedPayload,
			"device_count %d does not match %d device ids", h.DeviceCount, len(h.DeviceIDs))
	}
	ids := lo.Map(h.DeviceIDs, func(id int, _ int) device.ID { return device.ID(id) })
	devices, err := device.ResolveList(opts.Client, ids)
	if err != nil {
		return nil, "", err
	}
	return devices, device.MemoryKind(h.MemoryKind), nil
}

// dynamicShapeWire is the wire form of a DynamicShape. At v1 the dynamic
// dimensions travel as a bool array; at v2 as a bitmask (rank <= 64).
type dynamicShapeWire struct {
	Dims        []int  `json:"dims"`
	DynamicDims []bool `json:"dynamic_dims,omitempty"`
	DynamicMask uint64 `json:"dynamic_mask,omitempty"`
}

func encodeDynamicShape(d shape.DynamicShape, version serdes.Version) (dynamicShapeWire, error) {
	w := dynamicShapeWire{Dims: []int(d.Bounds())}
	if version >= serdes.Version2 {
		if d.Rank() > 64 {
			return dynamicShapeWire{}, errors.Newf(
				"dynamic shape rank %d exceeds bitmask capacity", d.Rank())
		}
		for i, dynamic := range d.Tag() {
			if dynamic {
				w.DynamicMask |= uint64(1) << uint(i)
			}
		}
		return w, nil
	}
	w.DynamicDims = []bool(d.Tag())
	return w, nil
}

func decodeDynamicShape(w dynamicShapeWire, version serdes.Version) (shape.DynamicShape, error) {
	tag := make(shape.BoundedDynamicShapeTag, len(w.Dims))
	if version >= serdes.Version2 {
		if len(w.Dims) > 64 {
			return shape.DynamicShape{}, errors.Wrapf(serdes.ErrMalformedPayload,
				"dynamic shape rank %d exceeds bitmask capacity", len(w.Dims))
		}
		if w.DynamicMask>>uint(len(w.Dims)) != 0 {
			return shape.DynamicShape{}, errors.Wrapf(serdes.ErrMalformedPayload,
				"dynamic mask %#x has bits beyond rank %d", w.DynamicMask, len(w.Dims))
		}
		for i := range tag {
			tag[i] = w.DynamicMask&(uint64(1)<<uint(i)) != 0
		}
	} else {
		if len(w.DynamicDims) != len(w.Dims) {
			return shape.DynamicShape{}, errors.Wrapf(serdes.ErrMalformedPayload,
				"dynamic shape has %d tags for %d dims", len(w.DynamicDims), len(w.Dims))
		}
		copy(tag, w.DynamicDims)
	}
	d, err := shape.NewDynamicShape(shape.Shape(w.Dims), tag)
	if err != nil {
		return shape.DynamicShape{}, errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
	}
	return d, nil
}

// Per-variant payload bodies. Concrete uses pointer fields to discriminate
// the static and dynamic branches by presence.
type singleDevicePayload struct {
	deviceHeader
}

type opaquePayload struct {
	deviceHeader
}

type concretePayload struct {
	deviceHeader
	Shape              *[]int             `json:"shape,omitempty"`
	ShardShapes        [][]int            `json:"shard_shapes,omitempty"`
	DynamicShape       *dynamicShapeWire  `json:"dynamic_shape,omitempty"`
	ShardDynamicShapes []dynamicShapeWire `json:"shard_dynamic_shapes,omitempty"`
}

type concreteEvenPayload struct {
	deviceHeader
	Shape             []int `json:"shape"`
	ShardShape        []int `json:"shard_shape"`
	IsFullyReplicated bool  `json:"is_fully_replicated"`
}

type shardingParamPayload struct {
	deviceHeader
	DimShards   []int `json:"dim_shards"`
	Permutation []int `json:"permutation"`
	AxisSizes   []int `json:"axis_sizes"`
}

func marshalPayload(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding payload")
	}
	return b, nil
}

func unmarshalPayload(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
	}
	return nil
}
