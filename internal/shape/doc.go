// Package shape defines the shape value types used by sharding descriptors.
//
// A Shape is a plain dimension vector. A DynamicShape additionally tags
// dimensions as bounded-dynamic: the dimension value is an upper bound and
// the runtime extent may be anything up to it. Shapes here are metadata
// only; no array data is attached.
package shape
