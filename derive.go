package mlscrypto

import (
	"io"
	"math"

	"golang.org/x/crypto/hkdf"
)

// expandLabelPrefix is the protocol-version tag bound into every derivation
// label. Sign and reference labels use the "MLS 1.0 " form instead; the two
// prefixes are distinct on the wire and kept exactly as the protocol
// defines them.
const expandLabelPrefix = "mls10 "

// ExpandWithLabel derives length bytes from secret with the suite's KDF.
// The KDF info input is the serialized frame
//
//	uint16 length || opaque "mls10 " + label || opaque context
//
// so derivations under different labels are computationally independent
// even when secret and context coincide. A length of zero is legal and
// yields an empty slice.
func (s Suite) ExpandWithLabel(secret []byte, label string, context []byte, length int) ([]byte, error) {
	c, err := s.Ciphers()
	if err != nil {
		return nil, err
	}
	if length < 0 || length > math.MaxUint16 {
		return nil, invalidParameterf("derivation length %d out of range", length)
	}
	if length > 255*c.KDF.ExtractSize() {
		return nil, invalidParameterf("derivation length %d exceeds kdf expansion limit", length)
	}
	if length == 0 {
		return []byte{}, nil
	}

	info := appendUint16(nil, uint16(length))
	info, err = appendOpaque(info, []byte(expandLabelPrefix+label))
	if err != nil {
		return nil, err
	}
	info, err = appendOpaque(info, context)
	if err != nil {
		return nil, err
	}

	// HKDF-Expand keys its HMAC with the secret as given, whatever its
	// length. The suite KDF's hash is the suite digest, so expanding with
	// c.Hash here is the suite's KDF expand.
	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.Expand(c.Hash.New, secret, info), out); err != nil {
		return nil, invalidParameterf("kdf expand failed: %v", err)
	}
	return out, nil
}

// DeriveSecret derives a secret of the suite's default secret size from
// secret under label, with an empty context.
func (s Suite) DeriveSecret(secret []byte, label string) ([]byte, error) {
	size, err := s.SecretSize()
	if err != nil {
		return nil, err
	}
	return s.ExpandWithLabel(secret, label, nil, size)
}

// stretchSeed maps a seed of arbitrary length onto exactly size bytes,
// deterministically in (suite digest, info, seed). Seeds that already have
// the target size pass through unchanged, so exact-size seeds keep their
// standard derivation semantics.
func (s Suite) stretchSeed(seed []byte, size int, info string) ([]byte, error) {
	if len(seed) == size {
		return seed, nil
	}
	c, err := s.Ciphers()
	if err != nil {
		return nil, err
	}
	r := hkdf.New(c.Hash.New, seed, nil, []byte(info))
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, invalidParameterf("seed expansion failed: %v", err)
	}
	return out, nil
}
