package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
)

// SHA256 returns the SHA256 hash of the data.
func SHA256(data []byte) []byte {
	hasher := sha256.New()
	hasher.Write(data)
	hash := hasher.Sum(nil)
	return hash
}

// SHA384 returns the SHA384 hash of the data. This is the digest used to
// identify signed transactions.
func SHA384(data []byte) []byte {
	hasher := sha512.New384()
	hasher.Write(data)
	return hasher.Sum(nil)
}
