// Package sig wraps the signature algorithms used by the protocol's cipher
// suites behind byte-level key operations. Keys cross this boundary only in
// their raw encoded form; the caller owns framing and domain separation.
package sig

import (
	"errors"
	"fmt"
)

// ID identifies a signature algorithm.
type ID uint16

const (
	Ed25519 ID = iota + 1
	Ed448
	P256SHA256
	P384SHA384
	P521SHA512
	// RSASHA256 is recognized for signature-scheme mapping only; no cipher
	// suite in this protocol uses RSA and no Scheme is provided for it.
	RSASHA256
)

// ErrUnsupported is returned when no Scheme exists for an ID.
var ErrUnsupported = errors.New("unsupported signature algorithm")

// Scheme is a signature algorithm instance. Implementations are stateless
// and safe for concurrent use.
//
// Private and public keys are raw encodings: EdDSA keys use the standard
// seed and point encodings, ECDSA private keys are fixed-width big-endian
// scalars and public keys uncompressed SEC1 points.
type Scheme interface {
	ID() ID

	// SeedSize is the exact seed length DeriveKeyPair accepts.
	SeedSize() int

	// GenerateKeyPair draws a fresh key pair from crypto/rand.
	GenerateKeyPair() (priv, pub []byte, err error)

	// DeriveKeyPair deterministically derives a key pair from a seed of
	// exactly SeedSize bytes.
	DeriveKeyPair(seed []byte) (priv, pub []byte, err error)

	// PublicFromPrivate validates the private key encoding and recomputes
	// its public key.
	PublicFromPrivate(priv []byte) (pub []byte, err error)

	// Sign signs message with priv.
	Sign(priv, message []byte) ([]byte, error)

	// Verify checks signature over message with pub. A failed check is a
	// normal false result; the error reports only an undecodable public key.
	Verify(pub, message, signature []byte) (bool, error)
}

// SchemeFor returns the Scheme for id.
func SchemeFor(id ID) (Scheme, error) {
	switch id {
	case Ed25519:
		return ed25519Scheme{}, nil
	case Ed448:
		return ed448Scheme{}, nil
	case P256SHA256:
		return p256Scheme, nil
	case P384SHA384:
		return p384Scheme, nil
	case P521SHA512:
		return p521Scheme, nil
	default:
		return nil, fmt.Errorf("%w: id %d", ErrUnsupported, id)
	}
}
