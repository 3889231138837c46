// Package chain implements the log's storage model: chain headers,
// blocks, and the per-chain create/append/read operations that persist
// them. Hashing, signing and verification happen in internal/manager.
package chain

import "encoding/hex"

// Fixed-width byte container lengths. These mirror the sizeof() values the
// original C++ implementation hard-codes via its Secp256k1/SHA256 key and
// digest value types.
const (
	HashLength       = 32
	NonceLength      = 8
	PrivateKeyLength = 32
	PublicKeyLength  = 33 // SECP256K1_EC_COMPRESSED
	SignatureLength  = 64 // compact serialization
)

// Hash is a fixed-width SHA-256 digest.
type Hash [HashLength]byte

func (h Hash) Bytes() []byte  { return h[:] }
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Nonce is the fixed-width per-block random value mixed into the body hash.
type Nonce [NonceLength]byte

func (n Nonce) Bytes() []byte { return n[:] }

// PrivateKey is a raw secp256k1 scalar.
type PrivateKey [PrivateKeyLength]byte

func (k PrivateKey) Bytes() []byte { return k[:] }

// PublicKey is a compressed secp256k1 point.
type PublicKey [PublicKeyLength]byte

func (k PublicKey) Bytes() []byte  { return k[:] }
func (k PublicKey) String() string { return hex.EncodeToString(k[:]) }

// Signature is a compact (r||s) ECDSA signature.
type Signature [SignatureLength]byte

func (s Signature) Bytes() []byte { return s[:] }

// ChainID identifies a tenant's chain. The original represents it as a
// size_t; Go uses an unsigned 64-bit id, the natural width for a key that
// is also serialized as a protobuf uint64.
type ChainID uint64

// BytesToHash copies b into a Hash, returning an error if the length does
// not match exactly. Used when unpacking protobuf bytes fields, which carry
// no static length guarantee.
func BytesToHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashLength {
		return h, errWrongLength("hash", HashLength, len(b))
	}
	copy(h[:], b)
	return h, nil
}

func BytesToNonce(b []byte) (Nonce, error) {
	var n Nonce
	if len(b) != NonceLength {
		return n, errWrongLength("nonce", NonceLength, len(b))
	}
	copy(n[:], b)
	return n, nil
}

func BytesToPrivateKey(b []byte) (PrivateKey, error) {
	var k PrivateKey
	if len(b) != PrivateKeyLength {
		return k, errWrongLength("private key", PrivateKeyLength, len(b))
	}
	copy(k[:], b)
	return k, nil
}

func BytesToPublicKey(b []byte) (PublicKey, error) {
	var k PublicKey
	if len(b) != PublicKeyLength {
		return k, errWrongLength("public key", PublicKeyLength, len(b))
	}
	copy(k[:], b)
	return k, nil
}

func BytesToSignature(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureLength {
		return s, errWrongLength("signature", SignatureLength, len(b))
	}
	copy(s[:], b)
	return s, nil
}
