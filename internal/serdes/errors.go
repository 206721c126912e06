package serdes

import "github.com/cockroachdb/errors"

// Failure classes reported by serialization and deserialization. All are
// terminal for the call that produced them; nothing is retried internally.
var (
	// ErrUnregisteredType: the object's wire type (serialize) or the
	// envelope's type name (deserialize) has no registered codec. Indicates
	// a missing registration or a corrupt envelope.
	ErrUnregisteredType = errors.New("serdes: no codec registered for type")

	// ErrTypeMismatch: the envelope decoded to a different variant than the
	// caller asked for.
	ErrTypeMismatch = errors.New("serdes: decoded type does not match expected type")

	// ErrUnsupportedVersion: the requested or encountered wire version is
	// not handled by the codec. Producer and consumer are running
	// incompatible software revisions.
	ErrUnsupportedVersion = errors.New("serdes: unsupported wire version")

	// ErrMalformedPayload: payload bytes do not parse per the declared
	// version's layout. Treated as data corruption.
	ErrMalformedPayload = errors.New("serdes: malformed payload")
)
