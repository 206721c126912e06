// Package device defines device handles, ordered device lists, and the
// Client capability used to resolve serialized device identifiers back to
// live handles.
//
// The package has no dependency on any concrete device runtime. A runtime
// integrates by implementing Client; deserialization code receives the
// client as an injected parameter and never retains it.
package device
