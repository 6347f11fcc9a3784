package mlscrypto

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the single error kind raised by this package.
// It covers unknown cipher suites, undecodable key material, out-of-range
// derivation lengths, and HPKE decryption failures. Check for it with
// errors.Is; the wrapped reason string is diagnostic only and must not be
// used for control flow.
var ErrInvalidParameter = errors.New("invalid parameter")

// errHPKEDecryption is the fixed decryption failure. The message is
// deliberately identical for a wrong key, a tampered ciphertext, a
// mismatched aad, and a mismatched info, so callers cannot be turned into
// a decryption oracle.
var errHPKEDecryption = fmt.Errorf("%w: hpke decryption failure", ErrInvalidParameter)

func invalidParameterf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
