package mlscrypto

import (
	"bytes"
	"crypto/subtle"
)

const sigSeedInfo = "signature key pair seed"

// signLabelPrefix is the protocol-version tag bound into every signed frame.
const signLabelPrefix = "MLS 1.0 "

// SignLabel names the message shape a signature is bound to. The set is
// closed: each label covers exactly one shape, so a signature over one kind
// of message can never verify as a signature over another, even for
// identical raw bytes.
type SignLabel uint8

const (
	// SignLabelMLSContent covers framed authenticated content.
	SignLabelMLSContent SignLabel = iota + 1
	// SignLabelLeafNode covers leaf-node data.
	SignLabelLeafNode
	// SignLabelKeyPackage covers key-package data.
	SignLabelKeyPackage
	// SignLabelGroupInfo covers group-info data.
	SignLabelGroupInfo
)

func (l SignLabel) labelBytes() ([]byte, error) {
	switch l {
	case SignLabelMLSContent:
		return []byte(signLabelPrefix + "MLSContentTBS"), nil
	case SignLabelLeafNode:
		return []byte(signLabelPrefix + "LeafNodeTBS"), nil
	case SignLabelKeyPackage:
		return []byte(signLabelPrefix + "KeyPackageTBS"), nil
	case SignLabelGroupInfo:
		return []byte(signLabelPrefix + "GroupInfoTBS"), nil
	default:
		return nil, invalidParameterf("unknown sign label %d", l)
	}
}

// signContent builds the frame that is actually signed and verified:
// opaque label || opaque message. The raw message is never signed directly.
func signContent(label SignLabel, message []byte) ([]byte, error) {
	lb, err := label.labelBytes()
	if err != nil {
		return nil, err
	}
	out, err := appendOpaque(nil, lb)
	if err != nil {
		return nil, err
	}
	return appendOpaque(out, message)
}

// SignaturePublicKey is a raw encoded public key for a suite's signature
// algorithm.
type SignaturePublicKey struct {
	Data []byte
}

// SignaturePrivateKey is a raw encoded signing key together with its public
// key, computed once at construction and never recomputed.
type SignaturePrivateKey struct {
	Data      []byte
	PublicKey SignaturePublicKey
}

// Equal reports byte-exact equality.
func (k SignaturePublicKey) Equal(other SignaturePublicKey) bool {
	return bytes.Equal(k.Data, other.Data)
}

// Equal reports byte-exact equality of the key pair. The private
// comparison runs in constant time.
func (k SignaturePrivateKey) Equal(other SignaturePrivateKey) bool {
	return subtle.ConstantTimeCompare(k.Data, other.Data) == 1 &&
		k.PublicKey.Equal(other.PublicKey)
}

// Marshal serializes the public key as a length-prefixed byte string.
func (k SignaturePublicKey) Marshal() ([]byte, error) {
	return appendOpaque(nil, k.Data)
}

// Unmarshal parses a length-prefixed public key.
func (k *SignaturePublicKey) Unmarshal(data []byte) error {
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

// GenerateSignaturePrivateKey draws a fresh key pair from the suite's
// signature algorithm.
func GenerateSignaturePrivateKey(suite Suite) (SignaturePrivateKey, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return SignaturePrivateKey{}, err
	}
	priv, pub, err := c.Sig.GenerateKeyPair()
	if err != nil {
		return SignaturePrivateKey{}, err
	}
	return SignaturePrivateKey{Data: priv, PublicKey: SignaturePublicKey{Data: pub}}, nil
}

// DeriveSignaturePrivateKey deterministically derives a key pair from seed.
// The same (suite, seed) always yields the same pair.
func DeriveSignaturePrivateKey(suite Suite, seed []byte) (SignaturePrivateKey, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return SignaturePrivateKey{}, err
	}
	ikm, err := suite.stretchSeed(seed, c.Sig.SeedSize(), sigSeedInfo)
	if err != nil {
		return SignaturePrivateKey{}, err
	}
	priv, pub, err := c.Sig.DeriveKeyPair(ikm)
	if err != nil {
		return SignaturePrivateKey{}, invalidParameterf("signature key derivation: %v", err)
	}
	return SignaturePrivateKey{Data: priv, PublicKey: SignaturePublicKey{Data: pub}}, nil
}

// ParseSignaturePrivateKey decodes data as a private key for the suite's
// signature algorithm and recomputes its public key.
func ParseSignaturePrivateKey(suite Suite, data []byte) (SignaturePrivateKey, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return SignaturePrivateKey{}, err
	}
	pub, err := c.Sig.PublicFromPrivate(data)
	if err != nil {
		return SignaturePrivateKey{}, invalidParameterf("malformed signature private key: %v", err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return SignaturePrivateKey{Data: out, PublicKey: SignaturePublicKey{Data: pub}}, nil
}

// Sign signs the label-framed message with the suite's signature algorithm.
func (k SignaturePrivateKey) Sign(suite Suite, label SignLabel, message []byte) ([]byte, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return nil, err
	}
	content, err := signContent(label, message)
	if err != nil {
		return nil, err
	}
	sigBytes, err := c.Sig.Sign(k.Data, content)
	if err != nil {
		return nil, invalidParameterf("malformed signature private key: %v", err)
	}
	return sigBytes, nil
}

// Verify reconstructs the label-framed message and checks signature against
// it. A failed check is a normal false result; only an unknown label, an
// unsupported suite, or an undecodable public key is an error.
func (k SignaturePublicKey) Verify(suite Suite, label SignLabel, message, signature []byte) (bool, error) {
	c, err := suite.Ciphers()
	if err != nil {
		return false, err
	}
	content, err := signContent(label, message)
	if err != nil {
		return false, err
	}
	ok, err := c.Sig.Verify(k.Data, content, signature)
	if err != nil {
		return false, invalidParameterf("malformed signature public key: %v", err)
	}
	return ok, nil
}
