package keys

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/ed25519"
)

const ed25519PublicKeySize = ed25519.PublicKeySize

// ASN.1 DER prefixes of Ed25519 keys, as exported by most key tools. They are
// stripped on parse.
var (
	ed25519PrivateKeyPrefix, _ = hex.DecodeString("302e020100300506032b657004220420")
	ed25519PublicKeyPrefix, _  = hex.DecodeString("302a300506032b6570032100")
)

// Ed25519PrivateKey is an Ed25519 signing key.
type Ed25519PrivateKey struct {
	key ed25519.PrivateKey
}

// Ed25519PublicKey is an Ed25519 verification key.
type Ed25519PublicKey struct {
	key ed25519.PublicKey
}

// GenerateEd25519Key creates a new random Ed25519 key.
func GenerateEd25519Key() (*Ed25519PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Ed25519PrivateKey{key: priv}, nil
}

// Ed25519PrivateKeyFromBytes accepts a 32-byte seed, a 64-byte expanded key, or
// a DER encoded seed.
func Ed25519PrivateKeyFromBytes(b []byte) (*Ed25519PrivateKey, error) {
	if len(b) == len(ed25519PrivateKeyPrefix)+ed25519.SeedSize && bytes.HasPrefix(b, ed25519PrivateKeyPrefix) {
		b = b[len(ed25519PrivateKeyPrefix):]
	}

	switch len(b) {
	case ed25519.SeedSize:
		return &Ed25519PrivateKey{key: ed25519.NewKeyFromSeed(b)}, nil
	case ed25519.PrivateKeySize:
		// Re-derive from the seed so that an inconsistent public half is
		// never used.
		return &Ed25519PrivateKey{key: ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])}, nil
	default:
		return nil, fmt.Errorf("%w: ed25519 private key must be 32 or 64 bytes, got %d", ErrInvalidKey, len(b))
	}
}

// Ed25519PublicKeyFromBytes accepts a raw 32-byte key or its DER encoding.
func Ed25519PublicKeyFromBytes(b []byte) (*Ed25519PublicKey, error) {
	if len(b) == len(ed25519PublicKeyPrefix)+ed25519.PublicKeySize && bytes.HasPrefix(b, ed25519PublicKeyPrefix) {
		b = b[len(ed25519PublicKeyPrefix):]
	}

	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: ed25519 public key must be 32 bytes, got %d", ErrInvalidKey, len(b))
	}

	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, b)
	return &Ed25519PublicKey{key: pub}, nil
}

// Algorithm implements PrivateKey.
func (k *Ed25519PrivateKey) Algorithm() string { return AlgorithmEd25519 }

// PublicKey implements PrivateKey.
func (k *Ed25519PrivateKey) PublicKey() PublicKey {
	return &Ed25519PublicKey{key: k.key.Public().(ed25519.PublicKey)}
}

// Sign implements PrivateKey.
func (k *Ed25519PrivateKey) Sign(message []byte) ([]byte, error) {
	return ed25519.Sign(k.key, message), nil
}

// Bytes returns the 32-byte seed.
func (k *Ed25519PrivateKey) Bytes() []byte {
	return k.key.Seed()
}

func (k *Ed25519PrivateKey) String() string {
	return formatKey(AlgorithmEd25519, k.Bytes())
}

// Algorithm implements PublicKey.
func (k *Ed25519PublicKey) Algorithm() string { return AlgorithmEd25519 }

// Bytes implements PublicKey.
func (k *Ed25519PublicKey) Bytes() []byte {
	return []byte(k.key)
}

// Verify implements PublicKey.
func (k *Ed25519PublicKey) Verify(message, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.key, message, signature)
}

func (k *Ed25519PublicKey) String() string {
	return formatKey(AlgorithmEd25519, k.Bytes())
}
