// Package mlscrypto implements the cipher-suite and asymmetric key layer
// of an MLS-style group messaging protocol.
//
// A Suite identifies a fixed bundle of KEM, KDF, AEAD, digest, and
// signature algorithms. All secret derivation and all signing is
// domain-separated: derived secrets bind a version-prefixed label into the
// KDF input, and signatures are computed over a label-framed message, never
// the raw bytes.
//
// Basic usage:
//
//	suite := mlscrypto.SuiteX25519AES128GCMSHA256Ed25519
//
//	priv, err := mlscrypto.GenerateHPKEPrivateKey(suite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ct, err := priv.PublicKey.Encrypt(suite, info, aad, plaintext)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pt, err := priv.Decrypt(suite, info, aad, ct)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// All operations are stateless pure functions over their inputs; the only
// process-wide state is the immutable suite table, built once per suite on
// first use. Every operation is safe for concurrent use.
package mlscrypto
