package serdes

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// Serializable is implemented by any value that can pass through the
// registry. WireType returns the explicit type discriminant recorded in
// envelopes; it must be stable across releases and unique per concrete type.
type Serializable interface {
	WireType() string
}

// SerializeOptions selects the wire-format revision to emit.
type SerializeOptions struct {
	Version Version
}

// Codec is the encode/decode pair for one Serializable type. Implementations
// must be stateless: Encode is a pure function of the object and version,
// and Decode of the payload, version, and options.
type Codec interface {
	// WireType returns the discriminant this codec is registered under.
	WireType() string

	// SupportedVersions returns every revision this codec can both encode
	// and decode, oldest first.
	SupportedVersions() []Version

	// Encode serializes obj using the layout of opts.Version.
	Encode(obj Serializable, opts SerializeOptions) ([]byte, error)

	// Decode parses payload bytes per the given version's layout and
	// reconstructs the object. opts carries codec-family-specific
	// dependencies (e.g. a device resolution client) and is not retained.
	Decode(data []byte, version Version, opts any) (Serializable, error)
}

// Registry maps wire type discriminants to codecs. It is populated during
// package initialization (each variant registers its codec from init) and is
// read-only afterward; the lock exists to make registration order irrelevant,
// not to support runtime mutation.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry creates an empty registry. Most callers use DefaultRegistry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register inserts codec under its wire type. Registering the same type
// twice is last-write-wins; each type should register exactly one codec,
// once, at init time.
func (r *Registry) Register(codec Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[codec.WireType()] = codec
}

// lookup returns the codec for a wire type.
func (r *Registry) lookup(wireType string) (Codec, error) {
	r.mu.RLock()
	codec, ok := r.codecs[wireType]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnregisteredType, "%q", wireType)
	}
	return codec, nil
}

// Serialize encodes obj into a versioned envelope using the codec registered
// for obj's wire type.
func (r *Registry) Serialize(obj Serializable, opts SerializeOptions) (*Envelope, error) {
	codec, err := r.lookup(obj.WireType())
	if err != nil {
		return nil, err
	}
	if !slices.Contains(codec.SupportedVersions(), opts.Version) {
		return nil, errors.Wrapf(ErrUnsupportedVersion,
			"%s cannot encode %s", obj.WireType(), opts.Version)
	}
	data, err := codec.Encode(obj, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s at %s", obj.WireType(), opts.Version)
	}
	return &Envelope{
		TypeName: obj.WireType(),
		Version:  opts.Version,
		Data:     data,
	}, nil
}

// Deserialize reconstructs the object carried by the envelope, dispatching
// first by type name and then by wire version inside the codec.
func (r *Registry) Deserialize(env *Envelope, opts any) (Serializable, error) {
	codec, err := r.lookup(env.TypeName)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(codec.SupportedVersions(), env.Version) {
		return nil, errors.Wrapf(ErrUnsupportedVersion,
			"%s cannot decode %s", env.TypeName, env.Version)
	}
	obj, err := codec.Decode(env.Data, env.Version, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s at %s", env.TypeName, env.Version)
	}
	return obj, nil
}

// defaultRegistry is the process-wide registry populated by variant init
// functions. Initialization completes before any serialize/deserialize call
// because Go runs package init before main.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a codec to the process-wide registry.
func Register(codec Codec) {
	defaultRegistry.Register(codec)
}

// Serialize encodes obj via the process-wide registry.
func Serialize(obj Serializable, opts SerializeOptions) (*Envelope, error) {
	return defaultRegistry.Serialize(obj, opts)
}

// Deserialize reconstructs the envelope's object via the process-wide
// registry and asserts it to T, failing with ErrTypeMismatch if the envelope
// carries a different variant.
func Deserialize[T Serializable](env *Envelope, opts any) (T, error) {
	return DeserializeFrom[T](defaultRegistry, env, opts)
}

// DeserializeFrom is Deserialize against an explicit registry.
func DeserializeFrom[T Serializable](r *Registry, env *Envelope, opts any) (T, error) {
	var zero T
	obj, err := r.Deserialize(env, opts)
	if err != nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch,
			"envelope holds %q, not the requested type", env.TypeName)
	}
	return typed, nil
}
