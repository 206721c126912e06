// Package serdes implements the versioned, type-dispatched serialization
// framework used to interchange sharding descriptors between processes.
//
// Values flow through a process-wide registry of codecs keyed by an explicit
// wire type discriminant. Serialization wraps codec output in a versioned
// Envelope; deserialization dispatches by the envelope's type name first,
// then by wire version inside the codec. Unknown types and unknown versions
// are hard failures, never silent defaults.
//
//	Serialize(obj, opts) ─┐
//	                      │ registry: WireType → Codec
//	Deserialize[T](env) ──┘
//
// The registry is populated during package initialization and read-only
// afterward; serialize and deserialize are pure, synchronous, and safe for
// concurrent use.
package serdes
