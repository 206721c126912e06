package serdes

import (
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the transmissible artifact produced by Serialize and consumed
// by Deserialize: a type-tagged, versioned container around opaque payload
// bytes. Envelopes are transient values; they are produced once, consumed
// once, and never mutated.
type Envelope struct {
	// TypeName discriminates which codec decodes the payload.
	TypeName string `json:"type_name"`
	// Version is the wire-format revision the payload was encoded with.
	Version Version `json:"version"`
	// Data is the codec-specific payload.
	Data []byte `json:"data"`
}

// MarshalBinary encodes the envelope itself to bytes for transport.
func (e *Envelope) MarshalBinary() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(err, "encoding envelope")
	}
	return b, nil
}

// UnmarshalEnvelope decodes envelope bytes produced by MarshalBinary.
func UnmarshalEnvelope(b []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, errors.Wrapf(ErrMalformedPayload, "decoding envelope: %v", err)
	}
	if e.TypeName == "" {
		return nil, errors.Wrap(ErrMalformedPayload, "envelope has no type name")
	}
	return &e, nil
}
