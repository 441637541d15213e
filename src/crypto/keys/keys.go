package keys

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned when key material cannot be parsed.
var ErrInvalidKey = errors.New("invalid key")

// Algorithm names used in the text form of keys.
const (
	AlgorithmEd25519   = "ed25519"
	AlgorithmSecp256k1 = "secp256k1"
)

// TransactionSigner produces a signature over the given message. It is the
// only thing the SDK needs from a key holder, which allows signing to be
// delegated to hardware wallets or remote services.
type TransactionSigner func(message []byte) ([]byte, error)

// PublicKey verifies signatures. Bytes is the value embedded, as a prefix, in
// the signature pairs of a transaction.
type PublicKey interface {
	Algorithm() string
	Bytes() []byte
	String() string
	Verify(message, signature []byte) bool
}

// PrivateKey signs messages.
type PrivateKey interface {
	Algorithm() string
	PublicKey() PublicKey
	Sign(message []byte) ([]byte, error)
	Bytes() []byte
	String() string
}

// Signer returns the TransactionSigner of a private key.
func Signer(key PrivateKey) TransactionSigner {
	return key.Sign
}

// GenerateKey creates a new private key for the given algorithm.
func GenerateKey(algorithm string) (PrivateKey, error) {
	switch algorithm {
	case AlgorithmEd25519, "":
		return GenerateEd25519Key()
	case AlgorithmSecp256k1:
		return GenerateSecp256k1Key()
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidKey, algorithm)
	}
}

// ParsePrivateKey reads the text form of a private key.
func ParsePrivateKey(s string) (PrivateKey, error) {
	algorithm, raw, err := splitKeyString(s)
	if err != nil {
		return nil, err
	}

	switch algorithm {
	case AlgorithmEd25519:
		return Ed25519PrivateKeyFromBytes(raw)
	case AlgorithmSecp256k1:
		return Secp256k1PrivateKeyFromBytes(raw)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidKey, algorithm)
	}
}

// ParsePublicKey reads the text form of a public key.
func ParsePublicKey(s string) (PublicKey, error) {
	algorithm, raw, err := splitKeyString(s)
	if err != nil {
		return nil, err
	}

	switch algorithm {
	case AlgorithmEd25519:
		return Ed25519PublicKeyFromBytes(raw)
	case AlgorithmSecp256k1:
		return Secp256k1PublicKeyFromBytes(raw)
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidKey, algorithm)
	}
}

// PublicKeyFromBytes guesses the algorithm of a raw public key from its
// length: 32 bytes for Ed25519, 33 or 65 bytes for secp256k1.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	switch len(b) {
	case ed25519PublicKeySize:
		return Ed25519PublicKeyFromBytes(b)
	case 33, 65:
		return Secp256k1PublicKeyFromBytes(b)
	default:
		return nil, fmt.Errorf("%w: unexpected public key length %d", ErrInvalidKey, len(b))
	}
}

// HasPrefix reports whether prefix is a prefix of the public key bytes. An
// empty prefix matches nothing.
func HasPrefix(pub PublicKey, prefix []byte) bool {
	return len(prefix) > 0 && bytes.HasPrefix(pub.Bytes(), prefix)
}

func splitKeyString(s string) (string, []byte, error) {
	s = strings.TrimSpace(s)

	algorithm := AlgorithmEd25519
	if i := strings.Index(s, ":"); i >= 0 {
		algorithm = strings.ToLower(s[:i])
		s = s[i+1:]
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return algorithm, raw, nil
}

func formatKey(algorithm string, raw []byte) string {
	return algorithm + ":" + hex.EncodeToString(raw)
}
