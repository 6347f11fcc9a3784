package sig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"io"
	"math/big"

	"golang.org/x/crypto/hkdf"
)

// ecdsaScheme implements Scheme over a NIST curve. Private keys are
// fixed-width big-endian scalars, public keys uncompressed SEC1 points,
// signatures ASN.1 DER.
type ecdsaScheme struct {
	id    ID
	curve elliptic.Curve
	hash  func() hash.Hash
}

var (
	p256Scheme = ecdsaScheme{P256SHA256, elliptic.P256(), sha256.New}
	p384Scheme = ecdsaScheme{P384SHA384, elliptic.P384(), sha512.New384}
	p521Scheme = ecdsaScheme{P521SHA512, elliptic.P521(), sha512.New}
)

func (s ecdsaScheme) ID() ID { return s.id }

func (s ecdsaScheme) scalarSize() int {
	return (s.curve.Params().N.BitLen() + 7) / 8
}

func (s ecdsaScheme) SeedSize() int { return s.scalarSize() }

func (s ecdsaScheme) GenerateKeyPair() ([]byte, []byte, error) {
	key, err := ecdsa.GenerateKey(s.curve, rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	priv := key.D.FillBytes(make([]byte, s.scalarSize()))
	return priv, elliptic.Marshal(s.curve, key.X, key.Y), nil
}

// DeriveKeyPair expands the seed to scalarSize+8 bytes and reduces into
// [1, n-1]. The extra 8 bytes keep the modular bias negligible.
func (s ecdsaScheme) DeriveKeyPair(seed []byte) ([]byte, []byte, error) {
	if len(seed) != s.SeedSize() {
		return nil, nil, errBadKeyEncoding
	}
	r := hkdf.New(s.hash, seed, nil, []byte("ecdsa key pair"))
	buf := make([]byte, s.scalarSize()+8)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, nil, err
	}

	n := s.curve.Params().N
	d := new(big.Int).SetBytes(buf)
	d.Mod(d, new(big.Int).Sub(n, big.NewInt(1)))
	d.Add(d, big.NewInt(1))

	priv := d.FillBytes(make([]byte, s.scalarSize()))
	x, y := s.curve.ScalarBaseMult(priv)
	return priv, elliptic.Marshal(s.curve, x, y), nil
}

func (s ecdsaScheme) privateKey(priv []byte) (*ecdsa.PrivateKey, error) {
	if len(priv) != s.scalarSize() {
		return nil, errBadKeyEncoding
	}
	d := new(big.Int).SetBytes(priv)
	if d.Sign() == 0 || d.Cmp(s.curve.Params().N) >= 0 {
		return nil, errBadKeyEncoding
	}
	key := &ecdsa.PrivateKey{D: d}
	key.Curve = s.curve
	key.X, key.Y = s.curve.ScalarBaseMult(priv)
	return key, nil
}

func (s ecdsaScheme) PublicFromPrivate(priv []byte) ([]byte, error) {
	key, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}
	return elliptic.Marshal(s.curve, key.X, key.Y), nil
}

func (s ecdsaScheme) digest(message []byte) []byte {
	h := s.hash()
	h.Write(message)
	return h.Sum(nil)
}

func (s ecdsaScheme) Sign(priv, message []byte) ([]byte, error) {
	key, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}
	return ecdsa.SignASN1(rand.Reader, key, s.digest(message))
}

func (s ecdsaScheme) Verify(pub, message, signature []byte) (bool, error) {
	x, y := elliptic.Unmarshal(s.curve, pub)
	if x == nil {
		return false, errBadKeyEncoding
	}
	key := &ecdsa.PublicKey{Curve: s.curve, X: x, Y: y}
	return ecdsa.VerifyASN1(key, s.digest(message), signature), nil
}
