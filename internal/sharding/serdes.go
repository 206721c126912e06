package sharding

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/ElijahHaga/tensorflow/internal/serdes"
	"github.com/ElijahHaga/tensorflow/internal/shape"
)

// All sharding codecs register here, before any serialize/deserialize call
// can occur.
func init() {
	serdes.Register(singleDeviceCodec{})
	serdes.Register(opaqueCodec{})
	serdes.Register(concreteCodec{})
	serdes.Register(concreteEvenCodec{})
	serdes.Register(shardingParamCodec{})
}

// shardingOptions extracts the sharding deserialize options from the opaque
// options value handed through the registry.
func shardingOptions(opts any) (DeserializeOptions, error) {
	switch o := opts.(type) {
	case DeserializeOptions:
		if o.Client == nil {
			return DeserializeOptions{}, errors.New("sharding deserialize options have no client")
		}
		return o, nil
	case *DeserializeOptions:
		if o == nil || o.Client == nil {
			return DeserializeOptions{}, errors.New("sharding deserialize options have no client")
		}
		return *o, nil
	default:
		return DeserializeOptions{}, errors.Newf(
			"deserializing a sharding requires sharding.DeserializeOptions, got %T", opts)
	}
}

func checkVersion(wireType string, version serdes.Version) error {
	if !version.IsSupported() {
		return errors.Wrapf(serdes.ErrUnsupportedVersion, "%s at %s", wireType, version)
	}
	return nil
}

// singleDeviceCodec round-trips SingleDeviceSharding.
type singleDeviceCodec struct{}

func (singleDeviceCodec) WireType() string { return wireTypeSingleDevice }

func (singleDeviceCodec) SupportedVersions() []serdes.Version {
	return serdes.AllSupportedVersions()
}

func (c singleDeviceCodec) Encode(obj serdes.Serializable, opts serdes.SerializeOptions) ([]byte, error) {
	s, ok := obj.(*SingleDeviceSharding)
	if !ok {
		return nil, errors.Wrapf(serdes.ErrTypeMismatch, "%s cannot encode %T", c.WireType(), obj)
	}
	if err := checkVersion(c.WireType(), opts.Version); err != nil {
		return nil, err
	}
	return marshalPayload(singleDevicePayload{
		deviceHeader: newDeviceHeader(s.Devices(), s.MemoryKind(), opts.Version),
	})
}

func (c singleDeviceCodec) Decode(data []byte, version serdes.Version, opts any) (serdes.Serializable, error) {
	if err := checkVersion(c.WireType(), version); err != nil {
		return nil, err
	}
	o, err := shardingOptions(opts)
	if err != nil {
		return nil, err
	}
	var p singleDevicePayload
	if err := unmarshalPayload(data, &p); err != nil {
		return nil, err
	}
	devices, memoryKind, err := p.resolve(version, o)
	if err != nil {
		return nil, err
	}
	if devices.Len() != 1 {
		return nil, errors.Wrapf(serdes.ErrMalformedPayload,
			"single-device sharding payload has %d devices", devices.Len())
	}
	return NewSingleDeviceSharding(devices.Devices()[0], memoryKind)
}

// opaqueCodec round-trips OpaqueSharding.
type opaqueCodec struct{}

func (opaqueCodec) WireType() string { return wireTypeOpaque }

func (opaqueCodec) SupportedVersions() []serdes.Version {
	return serdes.AllSupportedVersions()
}

func (c opaqueCodec) Encode(obj serdes.Serializable, opts serdes.SerializeOptions) ([]byte, error) {
	s, ok := obj.(*OpaqueSharding)
	if !ok {
		return nil, errors.Wrapf(serdes.ErrTypeMismatch, "%s cannot encode %T", c.WireType(), obj)
	}
	if err := checkVersion(c.WireType(), opts.Version); err != nil {
		return nil, err
	}
	return marshalPayload(opaquePayload{
		deviceHeader: newDeviceHeader(s.Devices(), s.MemoryKind(), opts.Version),
	})
}

func (c opaqueCodec) Decode(data []byte, version serdes.Version, opts any) (serdes.Serializable, error) {
	if err := checkVersion(c.WireType(), version); err != nil {
		return nil, err
	}
	o, err := shardingOptions(opts)
	if err != nil {
		return nil, err
	}
	var p opaquePayload
	if err := unmarshalPayload(data, &p); err != nil {
		return nil, err
	}
	devices, memoryKind, err := p.resolve(version, o)
	if err != nil {
		return nil, err
	}
	return NewOpaqueSharding(devices, memoryKind), nil
}

// concreteCodec round-trips ConcreteSharding. One codec serves both the
// static and the dynamic branch; the payload discriminates by which shape
// fields are present, and decode populates exactly the branch it finds.
type concreteCodec struct{}

func (concreteCodec) WireType() string { return wireTypeConcrete }

func (concreteCodec) SupportedVersions() []serdes.Version {
	return serdes.AllSupportedVersions()
}

func (c concreteCodec) Encode(obj serdes.Serializable, opts serdes.SerializeOptions) ([]byte, error) {
	s, ok := obj.(*ConcreteSharding)
	if !ok {
		return nil, errors.Wrapf(serdes.ErrTypeMismatch, "%s cannot encode %T", c.WireType(), obj)
	}
	if err := checkVersion(c.WireType(), opts.Version); err != nil {
		return nil, err
	}
	p := concretePayload{
		deviceHeader: newDeviceHeader(s.Devices(), s.MemoryKind(), opts.Version),
	}
	if s.HasDynamicShape() {
		dw, err := encodeDynamicShape(s.DynamicShape(), opts.Version)
		if err != nil {
			return nil, err
		}
		p.DynamicShape = &dw
		p.ShardDynamicShapes = make([]dynamicShapeWire, 0, len(s.ShardDynamicShapes()))
		for _, sd := range s.ShardDynamicShapes() {
			w, err := encodeDynamicShape(sd, opts.Version)
			if err != nil {
				return nil, err
			}
			p.ShardDynamicShapes = append(p.ShardDynamicShapes, w)
		}
	} else {
		global := []int(s.Shape())
		p.Shape = &global
		p.ShardShapes = lo.Map(s.ShardShapes(), func(sh shape.Shape, _ int) []int { return []int(sh) })
	}
	return marshalPayload(p)
}

func (c concreteCodec) Decode(data []byte, version serdes.Version, opts any) (serdes.Serializable, error) {
	if err := checkVersion(c.WireType(), version); err != nil {
		return nil, err
	}
	o, err := shardingOptions(opts)
	if err != nil {
		return nil, err
	}
	var p concretePayload
	if err := unmarshalPayload(data, &p); err != nil {
		return nil, err
	}
	devices, memoryKind, err := p.resolve(version, o)
	if err != nil {
		return nil, err
	}
	switch {
	case p.Shape != nil && p.DynamicShape != nil:
		return nil, errors.Wrap(serdes.ErrMalformedPayload,
			"concrete sharding payload has both static and dynamic shapes")
	case p.Shape != nil:
		shardShapes := lo.Map(p.ShardShapes, func(dims []int, _ int) shape.Shape { return shape.Shape(dims) })
		s, err := NewConcreteSharding(devices, memoryKind, shape.Shape(*p.Shape), shardShapes)
		if err != nil {
			return nil, errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
		}
		return s, nil
	case p.DynamicShape != nil:
		global, err := decodeDynamicShape(*p.DynamicShape, version)
		if err != nil {
			return nil, err
		}
		shardShapes := make([]shape.DynamicShape, 0, len(p.ShardDynamicShapes))
		for _, w := range p.ShardDynamicShapes {
			sd, err := decodeDynamicShape(w, version)
			if err != nil {
				return nil, err
			}
			shardShapes = append(shardShapes, sd)
		}
		s, err := NewConcreteShardingDynamic(devices, memoryKind, global, shardShapes)
		if err != nil {
			return nil, errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
		}
		return s, nil
	default:
		return nil, errors.Wrap(serdes.ErrMalformedPayload,
			"concrete sharding payload has neither static nor dynamic shapes")
	}
}

// concreteEvenCodec round-trips ConcreteEvenSharding.
type concreteEvenCodec struct{}

func (concreteEvenCodec) WireType() string { return wireTypeConcreteEven }

func (concreteEvenCodec) SupportedVersions() []serdes.Version {
	return serdes.AllSupportedVersions()
}

func (c concreteEvenCodec) Encode(obj serdes.Serializable, opts serdes.SerializeOptions) ([]byte, error) {
	s, ok := obj.(*ConcreteEvenSharding)
	if !ok {
		return nil, errors.Wrapf(serdes.ErrTypeMismatch, "%s cannot encode %T", c.WireType(), obj)
	}
	if err := checkVersion(c.WireType(), opts.Version); err != nil {
		return nil, err
	}
	return marshalPayload(concreteEvenPayload{
		deviceHeader:      newDeviceHeader(s.Devices(), s.MemoryKind(), opts.Version),
		Shape:             []int(s.Shape()),
		ShardShape:        []int(s.ShardShape()),
		IsFullyReplicated: s.IsFullyReplicated(),
	})
}

func (c concreteEvenCodec) Decode(data []byte, version serdes.Version, opts any) (serdes.Serializable, error) {
	if err := checkVersion(c.WireType(), version); err != nil {
		return nil, err
	}
	o, err := shardingOptions(opts)
	if err != nil {
		return nil, err
	}
	var p concreteEvenPayload
	if err := unmarshalPayload(data, &p); err != nil {
		return nil, err
	}
	devices, memoryKind, err := p.resolve(version, o)
	if err != nil {
		return nil, err
	}
	s, err := NewConcreteEvenSharding(devices, memoryKind,
		shape.Shape(p.Shape), shape.Shape(p.ShardShape), p.IsFullyReplicated)
	if err != nil {
		return nil, errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
	}
	return s, nil
}

// shardingParamCodec round-trips ShardingParamSharding. The permutation must
// survive in order: it encodes a non-commutative device assignment.
type shardingParamCodec struct{}

func (shardingParamCodec) WireType() string { return wireTypeShardingParam }

func (shardingParamCodec) SupportedVersions() []serdes.Version {
	return serdes.AllSupportedVersions()
}

func (c shardingParamCodec) Encode(obj serdes.Serializable, opts serdes.SerializeOptions) ([]byte, error) {
	s, ok := obj.(*ShardingParamSharding)
	if !ok {
		return nil, errors.Wrapf(serdes.ErrTypeMismatch, "%s cannot encode %T", c.WireType(), obj)
	}
	if err := checkVersion(c.WireType(), opts.Version); err != nil {
		return nil, err
	}
	param := s.Param()
	return marshalPayload(shardingParamPayload{
		deviceHeader: newDeviceHeader(s.Devices(), s.MemoryKind(), opts.Version),
		DimShards:    param.DimShards(),
		Permutation:  param.Permutation(),
		AxisSizes:    param.AxisSizes(),
	})
}

func (c shardingParamCodec) Decode(data []byte, version serdes.Version, opts any) (serdes.Serializable, error) {
	if err := checkVersion(c.WireType(), version); err != nil {
		return nil, err
	}
	o, err := shardingOptions(opts)
	if err != nil {
		return nil, err
	}
	var p shardingParamPayload
	if err := unmarshalPayload(data, &p); err != nil {
		return nil, err
	}
	devices, memoryKind, err := p.resolve(version, o)
	if err != nil {
		return nil, err
	}
	param, err := NewShardingParam(p.DimShards, p.Permutation, p.AxisSizes)
	if err != nil {
		return nil, errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
	}
	s, err := NewShardingParamSharding(param, devices, memoryKind)
	if err != nil {
		return nil, errors.Wrapf(serdes.ErrMalformedPayload, "%v", err)
	}
	return s, nil
}
