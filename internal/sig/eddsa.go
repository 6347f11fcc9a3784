package sig

import (
	"crypto/rand"
	"errors"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/ed448"
)

// Private keys are serialized as the seed, public keys as the encoded
// point, matching the RFC 8032 forms the rest of the protocol expects.

var errBadKeyEncoding = errors.New("malformed key encoding")

type ed25519Scheme struct{}

func (ed25519Scheme) ID() ID        { return Ed25519 }
func (ed25519Scheme) SeedSize() int { return ed25519.SeedSize }

func (ed25519Scheme) GenerateKeyPair() ([]byte, []byte, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv.Seed(), []byte(pub), nil
}

func (s ed25519Scheme) DeriveKeyPair(seed []byte) ([]byte, []byte, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nil, errBadKeyEncoding
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	out := make([]byte, ed25519.SeedSize)
	copy(out, seed)
	return out, []byte(pub), nil
}

func (s ed25519Scheme) PublicFromPrivate(priv []byte) ([]byte, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, errBadKeyEncoding
	}
	pub := ed25519.NewKeyFromSeed(priv).Public().(ed25519.PublicKey)
	return []byte(pub), nil
}

func (ed25519Scheme) Sign(priv, message []byte) ([]byte, error) {
	if len(priv) != ed25519.SeedSize {
		return nil, errBadKeyEncoding
	}
	return ed25519.Sign(ed25519.NewKeyFromSeed(priv), message), nil
}

func (ed25519Scheme) Verify(pub, message, signature []byte) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, errBadKeyEncoding
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, signature), nil
}

type ed448Scheme struct{}

func (ed448Scheme) ID() ID        { return Ed448 }
func (ed448Scheme) SeedSize() int { return ed448.SeedSize }

func (ed448Scheme) GenerateKeyPair() ([]byte, []byte, error) {
	pub, priv, err := ed448.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv.Seed(), []byte(pub), nil
}

func (ed448Scheme) DeriveKeyPair(seed []byte) ([]byte, []byte, error) {
	if len(seed) != ed448.SeedSize {
		return nil, nil, errBadKeyEncoding
	}
	priv := ed448.NewKeyFromSeed(seed)
	pub := priv.Public().(ed448.PublicKey)
	out := make([]byte, ed448.SeedSize)
	copy(out, seed)
	return out, []byte(pub), nil
}

func (ed448Scheme) PublicFromPrivate(priv []byte) ([]byte, error) {
	if len(priv) != ed448.SeedSize {
		return nil, errBadKeyEncoding
	}
	pub := ed448.NewKeyFromSeed(priv).Public().(ed448.PublicKey)
	return []byte(pub), nil
}

func (ed448Scheme) Sign(priv, message []byte) ([]byte, error) {
	if len(priv) != ed448.SeedSize {
		return nil, errBadKeyEncoding
	}
	return ed448.Sign(ed448.NewKeyFromSeed(priv), message, ""), nil
}

func (ed448Scheme) Verify(pub, message, signature []byte) (bool, error) {
	if len(pub) != ed448.PublicKeySize {
		return false, errBadKeyEncoding
	}
	return ed448.Verify(ed448.PublicKey(pub), message, signature, ""), nil
}
