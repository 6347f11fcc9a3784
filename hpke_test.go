package mlscrypto

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func TestGenerateHPKEPrivateKey(t *testing.T) {
	t.Parallel()
	for _, suite := range AllSuites {
		suite := suite
		t.Run(suite.String(), func(t *testing.T) {
			t.Parallel()
			priv, err := GenerateHPKEPrivateKey(suite)
			if err != nil {
				t.Fatalf("GenerateHPKEPrivateKey() error = %v", err)
			}
			if len(priv.Data) == 0 || len(priv.PublicKey.Data) == 0 {
				t.Fatal("empty key material")
			}

			// Reparsing the private bytes must reproduce the same public key.
			parsed, err := ParseHPKEPrivateKey(suite, priv.Data)
			if err != nil {
				t.Fatalf("ParseHPKEPrivateKey() error = %v", err)
			}
			if !parsed.Equal(priv) {
				t.Error("parse(generate bytes) != generated key")
			}
		})
	}

	if _, err := GenerateHPKEPrivateKey(SuiteUnknown); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown suite error = %v, want ErrInvalidParameter", err)
	}
}

func TestDeriveHPKEPrivateKeyDeterministic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		seed []byte
	}{
		{"short seed", []byte{0x00, 0x01, 0x02, 0x03}},
		{"32 byte seed", bytes.Repeat([]byte{0x42}, 32)},
		{"long seed", bytes.Repeat([]byte{0x17}, 100)},
	}

	for _, suite := range AllSuites {
		suite := suite
		t.Run(suite.String(), func(t *testing.T) {
			t.Parallel()
			for _, tt := range tests {
				a, err := DeriveHPKEPrivateKey(suite, tt.seed)
				if err != nil {
					t.Fatalf("%s: DeriveHPKEPrivateKey() error = %v", tt.name, err)
				}
				b, err := DeriveHPKEPrivateKey(suite, tt.seed)
				if err != nil {
					t.Fatal(err)
				}
				if !a.Equal(b) {
					t.Errorf("%s: derivation not deterministic", tt.name)
				}

				other, err := DeriveHPKEPrivateKey(suite, append([]byte{0xff}, tt.seed...))
				if err != nil {
					t.Fatal(err)
				}
				if a.Equal(other) {
					t.Errorf("%s: distinct seeds produced equal keys", tt.name)
				}
			}
		})
	}
}

func TestParseHPKEPrivateKeyMalformed(t *testing.T) {
	t.Parallel()
	// A KEM private key of the wrong length never decodes.
	for _, suite := range AllSuites {
		if _, err := ParseHPKEPrivateKey(suite, []byte{0x01, 0x02}); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%v: error = %v, want ErrInvalidParameter", suite, err)
		}
	}
}

func TestHPKEEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()
	for _, suite := range AllSuites {
		suite := suite
		t.Run(suite.String(), func(t *testing.T) {
			t.Parallel()
			priv, err := GenerateHPKEPrivateKey(suite)
			if err != nil {
				t.Fatal(err)
			}

			info := []byte("test info")
			aad := []byte("test aad")
			pt := []byte("hello group members")

			ct, err := priv.PublicKey.Encrypt(suite, info, aad, pt)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			got, err := priv.Decrypt(suite, info, aad, ct)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(got, pt) {
				t.Errorf("Decrypt() = %x, want %x", got, pt)
			}
		})
	}
}

func TestHPKEDecryptFailsClosed(t *testing.T) {
	t.Parallel()
	suite := SuiteX25519AES128GCMSHA256Ed25519
	priv, err := GenerateHPKEPrivateKey(suite)
	if err != nil {
		t.Fatal(err)
	}

	info := []byte("info")
	aad := []byte("aad")
	pt := []byte("plaintext")

	ct, err := priv.PublicKey.Encrypt(suite, info, aad, pt)
	if err != nil {
		t.Fatal(err)
	}

	flip := func(b []byte, bit int) []byte {
		out := make([]byte, len(b))
		copy(out, b)
		out[bit/8] ^= 1 << (bit % 8)
		return out
	}

	t.Run("tampered ciphertext", func(t *testing.T) {
		for bit := 0; bit < len(ct.Ciphertext)*8; bit++ {
			bad := HPKECiphertext{KEMOutput: ct.KEMOutput, Ciphertext: flip(ct.Ciphertext, bit)}
			if _, err := priv.Decrypt(suite, info, aad, bad); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("bit %d: error = %v, want ErrInvalidParameter", bit, err)
			}
		}
	})

	t.Run("tampered aad", func(t *testing.T) {
		for bit := 0; bit < len(aad)*8; bit++ {
			if _, err := priv.Decrypt(suite, info, flip(aad, bit), ct); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("bit %d: error = %v, want ErrInvalidParameter", bit, err)
			}
		}
	})

	t.Run("tampered info", func(t *testing.T) {
		for bit := 0; bit < len(info)*8; bit++ {
			if _, err := priv.Decrypt(suite, flip(info, bit), aad, ct); !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("bit %d: error = %v, want ErrInvalidParameter", bit, err)
			}
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := GenerateHPKEPrivateKey(suite)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := other.Decrypt(suite, info, aad, ct); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("error = %v, want ErrInvalidParameter", err)
		}
	})
}

func TestHPKEDecryptErrorIsUniform(t *testing.T) {
	t.Parallel()
	suite := SuiteP256AES128GCMSHA256P256
	priv, err := GenerateHPKEPrivateKey(suite)
	if err != nil {
		t.Fatal(err)
	}
	ct, err := priv.PublicKey.Encrypt(suite, []byte("i"), []byte("a"), []byte("p"))
	if err != nil {
		t.Fatal(err)
	}

	// The failure message must not distinguish the cause.
	_, errAAD := priv.Decrypt(suite, []byte("i"), []byte("x"), ct)
	_, errInfo := priv.Decrypt(suite, []byte("x"), []byte("a"), ct)
	bad := ct
	bad.Ciphertext = append([]byte{}, ct.Ciphertext...)
	bad.Ciphertext[0] ^= 1
	_, errCT := priv.Decrypt(suite, []byte("i"), []byte("a"), bad)

	if errAAD == nil || errInfo == nil || errCT == nil {
		t.Fatal("expected decryption failures")
	}
	if errAAD.Error() != errInfo.Error() || errInfo.Error() != errCT.Error() {
		t.Errorf("failure messages differ: %q / %q / %q", errAAD, errInfo, errCT)
	}
}

func TestHPKEExport(t *testing.T) {
	t.Parallel()
	for _, suite := range AllSuites {
		suite := suite
		t.Run(suite.String(), func(t *testing.T) {
			t.Parallel()
			priv, err := GenerateHPKEPrivateKey(suite)
			if err != nil {
				t.Fatal(err)
			}

			info := []byte("welcome")
			kemOutput, sent, err := priv.PublicKey.Export(suite, info, "epoch export", 32)
			if err != nil {
				t.Fatalf("public Export() error = %v", err)
			}
			if len(sent) != 32 {
				t.Errorf("exported length = %d, want 32", len(sent))
			}

			received, err := priv.Export(suite, info, kemOutput, "epoch export", 32)
			if err != nil {
				t.Fatalf("private Export() error = %v", err)
			}
			if !bytes.Equal(sent, received) {
				t.Error("sender and receiver exported different secrets")
			}

			other, err := priv.Export(suite, info, kemOutput, "other label", 32)
			if err != nil {
				t.Fatal(err)
			}
			if bytes.Equal(sent, other) {
				t.Error("different export labels produced identical secrets")
			}
		})
	}
}

func TestHPKEExportSizeOutOfRange(t *testing.T) {
	t.Parallel()
	suite := SuiteX25519AES128GCMSHA256Ed25519
	priv, err := GenerateHPKEPrivateKey(suite)
	if err != nil {
		t.Fatal(err)
	}
	for _, size := range []int{-1, 256 * 32} {
		if _, _, err := priv.PublicKey.Export(suite, nil, "label", size); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("size %d: error = %v, want ErrInvalidParameter", size, err)
		}
	}
}

func TestHPKECiphertextMarshalRoundTrip(t *testing.T) {
	t.Parallel()
	ct := HPKECiphertext{
		KEMOutput:  bytes.Repeat([]byte{0x01}, 32),
		Ciphertext: bytes.Repeat([]byte{0x02}, 48),
	}

	b, err := ct.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	var got HPKECiphertext
	if err := got.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !bytes.Equal(got.KEMOutput, ct.KEMOutput) || !bytes.Equal(got.Ciphertext, ct.Ciphertext) {
		t.Error("round trip mismatch")
	}

	if err := got.Unmarshal(append(b, 0x00)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("trailing data error = %v, want ErrInvalidParameter", err)
	}
	if err := got.Unmarshal(b[:len(b)-1]); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("truncated error = %v, want ErrInvalidParameter", err)
	}
}

func TestHPKEKeyEquality(t *testing.T) {
	t.Parallel()
	suite := SuiteX25519AES128GCMSHA256Ed25519
	a, err := GenerateHPKEPrivateKey(suite)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateHPKEPrivateKey(suite)
	if err != nil {
		t.Fatal(err)
	}

	if !a.Equal(a) {
		t.Error("key not equal to itself")
	}
	if a.Equal(b) {
		t.Error("distinct key pairs compare equal")
	}
	if bytes.Equal(a.Data, a.PublicKey.Data) {
		t.Error("private key bytes equal public key bytes")
	}
}

// An X25519/AES-128-GCM key derived from a 4-byte seed must round-trip a
// 100-byte random plaintext under 100-byte random info and aad.
func TestHPKEDerivedKeyRoundTrip(t *testing.T) {
	t.Parallel()
	suite := SuiteX25519AES128GCMSHA256Ed25519

	priv, err := DeriveHPKEPrivateKey(suite, []byte{0x00, 0x01, 0x02, 0x03})
	if err != nil {
		t.Fatal(err)
	}

	pt := make([]byte, 100)
	info := make([]byte, 100)
	aad := make([]byte, 100)
	for _, b := range [][]byte{pt, info, aad} {
		if _, err := rand.Read(b); err != nil {
			t.Fatal(err)
		}
	}

	ct, err := priv.PublicKey.Encrypt(suite, info, aad, pt)
	if err != nil {
		t.Fatal(err)
	}
	got, err := priv.Decrypt(suite, info, aad, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, pt) {
		t.Error("decrypted plaintext differs from original")
	}
}
