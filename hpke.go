package mlscrypto

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
)

// hpkeSeedInfo domain-separates KEM seed stretching from signature seed
// stretching in stretchSeed.
const hpkeSeedInfo = "hpke key pair seed"

// HPKEPublicKey is a raw encoded public key for a suite's KEM.
type HPKEPublicKey struct {
	Data []byte
}

// HPKEPrivateKey is a raw encoded KEM private key together with its public
// key, computed once at construction and never recomputed.
type HPKEPrivateKey struct {
	Data      []byte
	PublicKey HPKEPublicKey
}

// HPKECiphertext bundles a KEM encapsulation output with the AEAD
// ciphertext it keys.
type HPKECiphertext struct {
	KEMOutput  []byte
	Ciphertext []byte
}

// Equal reports byte-exact equality.
func (k HPKEPublicKey) Equal(other HPKEPublicKey) bool {
	return bytes.Equal(k.Data, other.Data)
}

// Equal reports byte-exact equality of the key pair. The private
// comparison runs in constant time.
func (k HPKEPrivateKey) Equal(other HPKEPrivateKey) bool {
	return subtle.ConstantTimeCompare(k.Data, other.Data) == 1 &&
		k.PublicKey.Equal(other.PublicKey)
}

// Marshal serializes the public key as a length-prefixed byte string.
func (k HPKEPublicKey) Marshal() ([]byte, error) {
	return appendOpaque(nil, k.Data)
}

// Unmarshal parses a length-prefixed public key.
func (k *HPKEPublicKey) Unmarshal(data []byte) error {
	raw, rest, err := readOpaque(data)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return invalidParameterf("trailing data after public key")
	}
	k.Data = raw
	return nil
}

// Marshal serializes the ciphertext as the ordered pair of length-prefixed
// KEM output and AEAD ciphertext.
func (c HPKECiphertext) Marshal() ([]byte, error) {
	out, err := appendOpaque(nil, c.KEMOutput)
	if err != nil {
		return nil, err
	}
	return appendOpaque(out, c.Ciphertext)
}

// Unmarshal parses the serialized ciphertext pair.
func (c *HPKECiphertext) Unmarshal(data []byte) error {
	kemOutput, rest, err := readOpaque(data)
	if err != nil {
		return err
	}
	ciphertext, rest, err := readOpaque(rest)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return invalidParameterf("trailing data after hpke ciphertext")
	}
	c.KEMOutput = kemOutput
	c.Ciphertext = ciphertext
	return nil
}

// GenerateHPKEPrivateKey draws a fresh key pair from the suite's KEM.
func GenerateHPKEPrivateKey(suite Suite) (HPKEPrivateKey, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	pub, priv, err := c.KEM.Scheme().GenerateKeyPair()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	privData, err := priv.MarshalBinary()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	pubData, err := pub.MarshalBinary()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	return HPKEPrivateKey{Data: privData, PublicKey: HPKEPublicKey{Data: pubData}}, nil
}

// DeriveHPKEPrivateKey deterministically derives a key pair from seed.
// The same (suite, seed) always yields the same pair. Seeds of exactly the
// KEM's seed size feed the KEM's derivation directly; other lengths are
// first stretched to that size.
func DeriveHPKEPrivateKey(suite Suite, seed []byte) (HPKEPrivateKey, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	scheme := c.KEM.Scheme()
	ikm, err := suite.stretchSeed(seed, scheme.SeedSize(), hpkeSeedInfo)
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	pub, priv := scheme.DeriveKeyPair(ikm)
	privData, err := priv.MarshalBinary()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	pubData, err := pub.MarshalBinary()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	return HPKEPrivateKey{Data: privData, PublicKey: HPKEPublicKey{Data: pubData}}, nil
}

// ParseHPKEPrivateKey decodes data as a private key for the suite's KEM and
// recomputes its public key.
func ParseHPKEPrivateKey(suite Suite, data []byte) (HPKEPrivateKey, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	priv, err := c.KEM.Scheme().UnmarshalBinaryPrivateKey(data)
	if err != nil {
		return HPKEPrivateKey{}, invalidParameterf("malformed hpke private key: %v", err)
	}
	pubData, err := priv.Public().MarshalBinary()
	if err != nil {
		return HPKEPrivateKey{}, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return HPKEPrivateKey{Data: out, PublicKey: HPKEPublicKey{Data: pubData}}, nil
}

// Encrypt runs a one-shot base-mode HPKE exchange to this public key with
// auxiliary context info, then seals pt under aad. No HPKE context is
// retained across calls.
func (k HPKEPublicKey) Encrypt(suite Suite, info, aad, pt []byte) (HPKECiphertext, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return HPKECiphertext{}, err
	}
	pkR, err := c.KEM.Scheme().UnmarshalBinaryPublicKey(k.Data)
	if err != nil {
		return HPKECiphertext{}, invalidParameterf("malformed hpke public key: %v", err)
	}
	sender, err := c.HPKE.NewSender(pkR, info)
	if err != nil {
		return HPKECiphertext{}, invalidParameterf("hpke sender setup: %v", err)
	}
	enc, sealer, err := sender.Setup(rand.Reader)
	if err != nil {
		return HPKECiphertext{}, invalidParameterf("hpke sender setup: %v", err)
	}
	ct, err := sealer.Seal(pt, aad)
	if err != nil {
		return HPKECiphertext{}, invalidParameterf("hpke seal: %v", err)
	}
	return HPKECiphertext{KEMOutput: enc, Ciphertext: ct}, nil
}

// Decrypt reconstructs the recipient-side HPKE context from the
// ciphertext's KEM output and opens the payload under aad. Every failure --
// wrong key, tampered ciphertext, mismatched aad or info -- surfaces as the
// same ErrInvalidParameter value, deliberately not revealing which step
// failed.
func (k HPKEPrivateKey) Decrypt(suite Suite, info, aad []byte, ct HPKECiphertext) ([]byte, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return nil, err
	}
	skR, err := c.KEM.Scheme().UnmarshalBinaryPrivateKey(k.Data)
	if err != nil {
		return nil, errHPKEDecryption
	}
	receiver, err := c.HPKE.NewReceiver(skR, info)
	if err != nil {
		return nil, errHPKEDecryption
	}
	opener, err := receiver.Setup(ct.KEMOutput)
	if err != nil {
		return nil, errHPKEDecryption
	}
	pt, err := opener.Open(ct.Ciphertext, aad)
	if err != nil {
		return nil, errHPKEDecryption
	}
	return pt, nil
}

// Export runs a fresh sender-mode HPKE setup to this public key and derives
// size bytes of exported keying material under label, without producing
// ciphertext. It returns the KEM output the peer needs to reconstruct the
// context, together with the exported bytes.
func (k HPKEPublicKey) Export(suite Suite, info []byte, label string, size int) (kemOutput, exported []byte, err error) {
	c, err := suite.Ciphers()
	if err != nil {
		return nil, nil, err
	}
	if err := checkExportSize(c, size); err != nil {
		return nil, nil, err
	}
	pkR, err := c.KEM.Scheme().UnmarshalBinaryPublicKey(k.Data)
	if err != nil {
		return nil, nil, invalidParameterf("malformed hpke public key: %v", err)
	}
	sender, err := c.HPKE.NewSender(pkR, info)
	if err != nil {
		return nil, nil, invalidParameterf("hpke sender setup: %v", err)
	}
	enc, sealer, err := sender.Setup(rand.Reader)
	if err != nil {
		return nil, nil, invalidParameterf("hpke sender setup: %v", err)
	}
	return enc, sealer.Export([]byte(label), uint(size)), nil
}

// Export reconstructs the recipient-side HPKE context from a peer's KEM
// output and derives the same exported keying material as the sender-side
// Export.
func (k HPKEPrivateKey) Export(suite Suite, info, kemOutput []byte, label string, size int) ([]byte, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return nil, err
	}
	if err := checkExportSize(c, size); err != nil {
		return nil, err
	}
	skR, err := c.KEM.Scheme().UnmarshalBinaryPrivateKey(k.Data)
	if err != nil {
		return nil, invalidParameterf("malformed hpke private key: %v", err)
	}
	receiver, err := c.HPKE.NewReceiver(skR, info)
	if err != nil {
		return nil, invalidParameterf("hpke receiver setup: %v", err)
	}
	opener, err := receiver.Setup(kemOutput)
	if err != nil {
		return nil, invalidParameterf("hpke receiver setup: %v", err)
	}
	return opener.Export([]byte(label), uint(size)), nil
}

func checkExportSize(c *Ciphers, size int) error {
	if size < 0 || size > 255*c.KDF.ExtractSize() {
		return invalidParameterf("export size %d out of range", size)
	}
	return nil
}
