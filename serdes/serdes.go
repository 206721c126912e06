// Copyright 2026 ElijahHaga. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serdes provides the public API for versioned, type-dispatched
// serialization of sharding descriptors.
//
// Example:
//
//	import (
//	    "github.com/ElijahHaga/tensorflow/serdes"
//	    "github.com/ElijahHaga/tensorflow/sharding"
//	)
//
//	env, err := serdes.Serialize(s, serdes.SerializeOptions{Version: serdes.CurrentVersion})
//	wire, err := env.MarshalBinary()
//
//	// On the consuming side:
//	env, err := serdes.UnmarshalEnvelope(wire)
//	out, err := serdes.Deserialize[*sharding.ConcreteSharding](env,
//	    sharding.DeserializeOptions{Client: client})
package serdes

import (
	"github.com/ElijahHaga/tensorflow/internal/serdes"
)

// Version identifies a wire-format revision.
type Version = serdes.Version

// Supported wire-format revisions.
const (
	Version1       Version = serdes.Version1
	Version2       Version = serdes.Version2
	CurrentVersion Version = serdes.CurrentVersion
)

// Envelope is the versioned, type-tagged container produced by Serialize.
type Envelope = serdes.Envelope

// Serializable is implemented by values that pass through the registry.
type Serializable = serdes.Serializable

// Codec is the encode/decode pair for one Serializable type.
type Codec = serdes.Codec

// Registry maps wire type discriminants to codecs.
type Registry = serdes.Registry

// SerializeOptions selects the wire-format revision to emit.
type SerializeOptions = serdes.SerializeOptions

// Failure classes. See the internal package for semantics.
var (
	ErrUnregisteredType   = serdes.ErrUnregisteredType
	ErrTypeMismatch       = serdes.ErrTypeMismatch
	ErrUnsupportedVersion = serdes.ErrUnsupportedVersion
	ErrMalformedPayload   = serdes.ErrMalformedPayload
)

// AllSupportedVersions returns every decodable revision, oldest first.
func AllSupportedVersions() []Version {
	return serdes.AllSupportedVersions()
}

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return serdes.DefaultRegistry()
}

// Register adds a codec to the process-wide registry.
func Register(codec Codec) {
	serdes.Register(codec)
}

// Serialize encodes obj via the process-wide registry.
func Serialize(obj Serializable, opts SerializeOptions) (*Envelope, error) {
	return serdes.Serialize(obj, opts)
}

// Deserialize reconstructs the envelope's object via the process-wide
// registry, asserting it to T.
func Deserialize[T Serializable](env *Envelope, opts any) (T, error) {
	return serdes.Deserialize[T](env, opts)
}

// DeserializeFrom is Deserialize against an explicit registry.
func DeserializeFrom[T Serializable](r *Registry, env *Envelope, opts any) (T, error) {
	return serdes.DeserializeFrom[T](r, env, opts)
}

// UnmarshalEnvelope decodes envelope bytes produced by MarshalBinary.
func UnmarshalEnvelope(b []byte) (*Envelope, error) {
	return serdes.UnmarshalEnvelope(b)
}
