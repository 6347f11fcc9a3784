package mlscrypto

// ReferenceKind names an object kind whose serialized bytes get hashed into
// a short lookup reference. The kind-to-label table is closed and each
// label is distinct, so references computed for different kinds can never
// collide.
type ReferenceKind uint8

const (
	// ReferenceKeyPackage covers key-package objects.
	ReferenceKeyPackage ReferenceKind = iota + 1
	// ReferenceProposal covers proposals. The hashed value is the entire
	// enclosing authenticated-content object, not just the proposal body.
	ReferenceProposal
)

// refSize is the output length of a reference value.
const refSize = 16

// Label returns the fixed ASCII label bound to the kind.
func (k ReferenceKind) Label() ([]byte, error) {
	switch k {
	case ReferenceKeyPackage:
		return []byte(signLabelPrefix + "KeyPackage Reference"), nil
	case ReferenceProposal:
		return []byte(signLabelPrefix + "Proposal Reference"), nil
	default:
		return nil, invalidParameterf("unknown reference kind %d", k)
	}
}

// Ref computes the reference value for a serialized object of the given
// kind:
//
//	KDF.Expand(KDF.Extract(value, ""), label, 16)
func (s Suite) Ref(kind ReferenceKind, value []byte) ([]byte, error) {
	label, err := kind.Label()
	if err != nil {
		return nil, err
	}
	c, err := s.Ciphers()
	if err != nil {
		return nil, err
	}
	prk := c.KDF.Extract(value, nil)
	return c.KDF.Expand(prk, label, refSize), nil
}
