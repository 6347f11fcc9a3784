package mlscrypto

import (
	"crypto"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"sync"

	"github.com/cloudflare/circl/hpke"

	"github.com/mlskit/crypto-go/internal/sig"
)

// Suite is a protocol cipher-suite identifier: a 2-byte code naming a fixed
// bundle of KEM, KDF, AEAD, digest, and signature algorithms.
type Suite uint16

const (
	// SuiteUnknown is the reserved zero value. It is permanently invalid:
	// every operation on it fails with ErrInvalidParameter.
	SuiteUnknown Suite = 0

	SuiteX25519AES128GCMSHA256Ed25519        Suite = 1
	SuiteP256AES128GCMSHA256P256             Suite = 2
	SuiteX25519ChaCha20Poly1305SHA256Ed25519 Suite = 3
	SuiteX448AES256GCMSHA512Ed448            Suite = 4
	SuiteP521AES256GCMSHA512P521             Suite = 5
	SuiteX448ChaCha20Poly1305SHA512Ed448     Suite = 6
)

// AllSuites lists every registered suite.
var AllSuites = []Suite{
	SuiteX25519AES128GCMSHA256Ed25519,
	SuiteP256AES128GCMSHA256P256,
	SuiteX25519ChaCha20Poly1305SHA256Ed25519,
	SuiteX448AES256GCMSHA512Ed448,
	SuiteP521AES256GCMSHA512P521,
	SuiteX448ChaCha20Poly1305SHA512Ed448,
}

// Ciphers is the immutable algorithm bundle behind a Suite. Bundles are
// built once on first resolution and shared read-only; callers must not
// modify them.
type Ciphers struct {
	// KEM, KDF, and AEAD are the HPKE algorithm identifiers; HPKE is the
	// assembled suite used for encryption and export.
	KEM  hpke.KEM
	KDF  hpke.KDF
	AEAD hpke.AEAD
	HPKE hpke.Suite

	// Hash is the suite digest.
	Hash crypto.Hash

	// Sig is the suite's signature scheme.
	Sig sig.Scheme
}

func newCiphers(kem hpke.KEM, kdf hpke.KDF, aead hpke.AEAD, h crypto.Hash, sigID sig.ID) func() *Ciphers {
	return sync.OnceValue(func() *Ciphers {
		scheme, err := sig.SchemeFor(sigID)
		if err != nil {
			// The table below only names implemented schemes.
			panic(err)
		}
		return &Ciphers{
			KEM:  kem,
			KDF:  kdf,
			AEAD: aead,
			HPKE: hpke.NewSuite(kem, kdf, aead),
			Hash: h,
			Sig:  scheme,
		}
	})
}

// cipherTable is total over the registered suites. Each entry is guarded by
// sync.OnceValue, so concurrent first resolutions observe a single bundle.
var cipherTable = map[Suite]func() *Ciphers{
	SuiteX25519AES128GCMSHA256Ed25519: newCiphers(
		hpke.KEM_X25519_HKDF_SHA256, hpke.KDF_HKDF_SHA256, hpke.AEAD_AES128GCM,
		crypto.SHA256, sig.Ed25519),
	SuiteP256AES128GCMSHA256P256: newCiphers(
		hpke.KEM_P256_HKDF_SHA256, hpke.KDF_HKDF_SHA256, hpke.AEAD_AES128GCM,
		crypto.SHA256, sig.P256SHA256),
	SuiteX25519ChaCha20Poly1305SHA256Ed25519: newCiphers(
		hpke.KEM_X25519_HKDF_SHA256, hpke.KDF_HKDF_SHA256, hpke.AEAD_ChaCha20Poly1305,
		crypto.SHA256, sig.Ed25519),
	SuiteX448AES256GCMSHA512Ed448: newCiphers(
		hpke.KEM_X448_HKDF_SHA512, hpke.KDF_HKDF_SHA512, hpke.AEAD_AES256GCM,
		crypto.SHA512, sig.Ed448),
	SuiteP521AES256GCMSHA512P521: newCiphers(
		hpke.KEM_P521_HKDF_SHA512, hpke.KDF_HKDF_SHA512, hpke.AEAD_AES256GCM,
		crypto.SHA512, sig.P521SHA512),
	SuiteX448ChaCha20Poly1305SHA512Ed448: newCiphers(
		hpke.KEM_X448_HKDF_SHA512, hpke.KDF_HKDF_SHA512, hpke.AEAD_ChaCha20Poly1305,
		crypto.SHA512, sig.Ed448),
}

// Ciphers resolves the suite to its algorithm bundle. It fails with
// ErrInvalidParameter for SuiteUnknown and for unregistered codes.
func (s Suite) Ciphers() (*Ciphers, error) {
	if s == SuiteUnknown {
		return nil, invalidParameterf("uninitialized ciphersuite")
	}
	build, ok := cipherTable[s]
	if !ok {
		return nil, invalidParameterf("unsupported ciphersuite 0x%04x", uint16(s))
	}
	return build(), nil
}

// IsValid reports whether s is a registered suite.
func (s Suite) IsValid() bool {
	_, ok := cipherTable[s]
	return ok
}

// SecretSize returns the suite's digest output length, the default length
// for derived secrets.
func (s Suite) SecretSize() (int, error) {
	c, err := s.Ciphers()
	if err != nil {
		return 0, err
	}
	return c.Hash.Size(), nil
}

// Digest hashes data with the suite digest.
func (s Suite) Digest(data []byte) ([]byte, error) {
	c, err := s.Ciphers()
	if err != nil {
		return nil, err
	}
	h := c.Hash.New()
	h.Write(data)
	return h.Sum(nil), nil
}

func (s Suite) String() string {
	switch s {
	case SuiteX25519AES128GCMSHA256Ed25519:
		return "X25519_AES128GCM_SHA256_Ed25519"
	case SuiteP256AES128GCMSHA256P256:
		return "P256_AES128GCM_SHA256_P256"
	case SuiteX25519ChaCha20Poly1305SHA256Ed25519:
		return "X25519_CHACHA20POLY1305_SHA256_Ed25519"
	case SuiteX448AES256GCMSHA512Ed448:
		return "X448_AES256GCM_SHA512_Ed448"
	case SuiteP521AES256GCMSHA512P521:
		return "P521_AES256GCM_SHA512_P521"
	case SuiteX448ChaCha20Poly1305SHA512Ed448:
		return "X448_CHACHA20POLY1305_SHA512_Ed448"
	default:
		return "unknown"
	}
}

// SignatureScheme is a TLS signature-scheme code point, used by
// collaborators that need scheme identity independent of a key.
type SignatureScheme uint16

const (
	SignatureSchemeRSAPKCS1SHA256  SignatureScheme = 0x0401
	SignatureSchemeECDSAP256SHA256 SignatureScheme = 0x0403
	SignatureSchemeECDSAP384SHA384 SignatureScheme = 0x0503
	SignatureSchemeECDSAP521SHA512 SignatureScheme = 0x0603
	SignatureSchemeEd25519         SignatureScheme = 0x0807
	SignatureSchemeEd448           SignatureScheme = 0x0808
)

// SignatureScheme returns the TLS signature scheme for the suite's
// signature algorithm.
func (s Suite) SignatureScheme() (SignatureScheme, error) {
	c, err := s.Ciphers()
	if err != nil {
		return 0, err
	}
	return signatureSchemeFor(c.Sig.ID())
}

func signatureSchemeFor(id sig.ID) (SignatureScheme, error) {
	switch id {
	case sig.P256SHA256:
		return SignatureSchemeECDSAP256SHA256, nil
	case sig.P384SHA384:
		return SignatureSchemeECDSAP384SHA384, nil
	case sig.P521SHA512:
		return SignatureSchemeECDSAP521SHA512, nil
	case sig.Ed25519:
		return SignatureSchemeEd25519, nil
	case sig.Ed448:
		return SignatureSchemeEd448, nil
	case sig.RSASHA256:
		return SignatureSchemeRSAPKCS1SHA256, nil
	default:
		return 0, invalidParameterf("unsupported signature algorithm %d", id)
	}
}
