package keys

import (
	"crypto/ecdsa"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/mosaicnetworks/hashgraph-sdk/src/crypto"
)

/*
The functions here wrap the ecdsa.PrivateKey object of the standard library,
with the secp256k1 curve provided by btcsuite. Messages are hashed with SHA256
before signing, and signatures are the 64-byte concatenation of r and s.
*/

const (
	// number of bits in a big.Word
	wordBits = 32 << (uint64(^big.Word(0)) >> 63)
	// number of bytes in a big.Word
	wordBytes = wordBits / 8

	secp256k1ScalarSize = 32
)

// Secp256k1PrivateKey is an ECDSA signing key on the secp256k1 curve.
type Secp256k1PrivateKey struct {
	key *ecdsa.PrivateKey
}

// Secp256k1PublicKey is an ECDSA verification key on the secp256k1 curve.
type Secp256k1PublicKey struct {
	key *ecdsa.PublicKey
}

// GenerateECDSAKey creates a new ecdsa.PrivateKey on the curve returned by
// Curve().
func GenerateECDSAKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(Curve(), rand.Reader)
}

// GenerateSecp256k1Key creates a new random secp256k1 key.
func GenerateSecp256k1Key() (*Secp256k1PrivateKey, error) {
	key, err := GenerateECDSAKey()
	if err != nil {
		return nil, err
	}
	return &Secp256k1PrivateKey{key: key}, nil
}

// NewSecp256k1PrivateKey wraps an existing ecdsa key.
func NewSecp256k1PrivateKey(key *ecdsa.PrivateKey) *Secp256k1PrivateKey {
	return &Secp256k1PrivateKey{key: key}
}

// Secp256k1PrivateKeyFromBytes creates a private key with the given D value.
func Secp256k1PrivateKeyFromBytes(d []byte) (*Secp256k1PrivateKey, error) {
	key, err := parseECDSAPrivateKey(d)
	if err != nil {
		return nil, err
	}
	return &Secp256k1PrivateKey{key: key}, nil
}

// Secp256k1PublicKeyFromBytes parses a compressed or uncompressed point.
func Secp256k1PublicKeyFromBytes(b []byte) (*Secp256k1PublicKey, error) {
	pub, err := btcec.ParsePubKey(b, btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &Secp256k1PublicKey{key: pub.ToECDSA()}, nil
}

// dumpPrivateKey exports a private key into a binary dump.
func dumpPrivateKey(priv *ecdsa.PrivateKey) []byte {
	if priv == nil {
		return nil
	}
	return paddedBigBytes(priv.D, priv.Params().BitSize/8)
}

func parseECDSAPrivateKey(d []byte) (*ecdsa.PrivateKey, error) {
	priv := new(ecdsa.PrivateKey)
	priv.PublicKey.Curve = Curve()

	if 8*len(d) != priv.Params().BitSize {
		return nil, fmt.Errorf("%w: need %d bits", ErrInvalidKey, priv.Params().BitSize)
	}

	priv.D = new(big.Int).SetBytes(d)

	// The priv.D must < N
	if priv.D.Cmp(secp256k1N) >= 0 {
		return nil, fmt.Errorf("%w: scalar >= N", ErrInvalidKey)
	}

	// The priv.D must not be zero or negative.
	if priv.D.Sign() <= 0 {
		return nil, fmt.Errorf("%w: zero or negative scalar", ErrInvalidKey)
	}

	priv.PublicKey.X, priv.PublicKey.Y = priv.PublicKey.Curve.ScalarBaseMult(d)
	if priv.PublicKey.X == nil {
		return nil, errors.New("invalid private key")
	}

	return priv, nil
}

// Algorithm implements PrivateKey.
func (k *Secp256k1PrivateKey) Algorithm() string { return AlgorithmSecp256k1 }

// PublicKey implements PrivateKey.
func (k *Secp256k1PrivateKey) PublicKey() PublicKey {
	return &Secp256k1PublicKey{key: &k.key.PublicKey}
}

// Sign hashes the message with SHA256 and signs the digest.
func (k *Secp256k1PrivateKey) Sign(message []byte) ([]byte, error) {
	r, s, err := ecdsa.Sign(rand.Reader, k.key, crypto.SHA256(message))
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 0, 2*secp256k1ScalarSize)
	sig = append(sig, paddedBigBytes(r, secp256k1ScalarSize)...)
	sig = append(sig, paddedBigBytes(s, secp256k1ScalarSize)...)
	return sig, nil
}

// Bytes returns the 32-byte scalar.
func (k *Secp256k1PrivateKey) Bytes() []byte {
	return dumpPrivateKey(k.key)
}

func (k *Secp256k1PrivateKey) String() string {
	return formatKey(AlgorithmSecp256k1, k.Bytes())
}

// Algorithm implements PublicKey.
func (k *Secp256k1PublicKey) Algorithm() string { return AlgorithmSecp256k1 }

// Bytes returns the compressed form of the point.
func (k *Secp256k1PublicKey) Bytes() []byte {
	return (*btcec.PublicKey)(k.key).SerializeCompressed()
}

// Verify implements PublicKey.
func (k *Secp256k1PublicKey) Verify(message, signature []byte) bool {
	if len(signature) != 2*secp256k1ScalarSize {
		return false
	}
	r := new(big.Int).SetBytes(signature[:secp256k1ScalarSize])
	s := new(big.Int).SetBytes(signature[secp256k1ScalarSize:])
	return ecdsa.Verify(k.key, crypto.SHA256(message), r, s)
}

func (k *Secp256k1PublicKey) String() string {
	return formatKey(AlgorithmSecp256k1, k.Bytes())
}

// paddedBigBytes encodes a big integer as a big-endian byte slice. The length
// of the slice is at least n bytes.
func paddedBigBytes(bigint *big.Int, n int) []byte {
	if bigint.BitLen()/8 >= n {
		return bigint.Bytes()
	}
	ret := make([]byte, n)
	readBits(bigint, ret)
	return ret
}

// readBits encodes the absolute value of bigint as big-endian bytes. Callers
// must ensure that buf has enough space. If buf is too short the result will
// be incomplete.
func readBits(bigint *big.Int, buf []byte) {
	i := len(buf)
	for _, d := range bigint.Bits() {
		for j := 0; j < wordBytes && i > 0; j++ {
			i--
			buf[i] = byte(d)
			d >>= 8
		}
	}
}
