// Package crypto provides the hash, signature, and random-source primitives
// the chain package builds on: SHA-256 digests, secp256k1 keys/signatures,
// and CSPRNG-backed nonce/key generation.
package crypto

import (
	"crypto/sha256"

	"github.com/yakush/chaindb/internal/chain"
)

// Hash returns the SHA-256 digest of the concatenation of parts, mirroring
// SHA256::getHash's multi-part Update/Final sequence in the original.
func Hash(parts ...[]byte) chain.Hash {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out chain.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashN applies Hash n times, each round hashing the single digest produced
// by the previous round. n must be >= 1; n == 1 is equivalent to Hash.
// Used for the chain genesis seed, where the original calls getHashN with
// n == 2 (double SHA-256 of the header preimage).
func HashN(n int, parts ...[]byte) chain.Hash {
	out := Hash(parts...)
	for i := 1; i < n; i++ {
		out = Hash(out[:])
	}
	return out
}
