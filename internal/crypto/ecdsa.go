package crypto

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	"github.com/yakush/chaindb/internal/chain"
)

// GeneratePrivateKey draws a fresh secp256k1 scalar from the CSPRNG,
// matching Secp256k1::generatePrivateKey's use of Random::random(..., true)
// (the "private" entropy pool) followed by secp256k1_ec_seckey_verify.
func GeneratePrivateKey() (chain.PrivateKey, error) {
	raw, err := PrivateBytes(chain.PrivateKeyLength)
	if err != nil {
		return chain.PrivateKey{}, fmt.Errorf("generate private key: %w: %v", chain.ErrCrypto, err)
	}

	key, overflow := new(btcec.ModNScalar).SetBytes((*[32]byte)(raw))
	if overflow != 0 || key.IsZero() {
		// Reject the vanishingly unlikely out-of-range draw the same way
		// secp256k1_ec_seckey_verify would; a fresh draw is always valid
		// in practice but the check mirrors the original's guard.
		return chain.PrivateKey{}, fmt.Errorf("generate private key: %w: scalar out of range", chain.ErrCrypto)
	}

	var out chain.PrivateKey
	copy(out[:], raw)
	return out, nil
}

// CreatePublicKey derives the compressed public key for privateKey,
// matching Secp256k1::createPublicKey (SECP256K1_EC_COMPRESSED).
func CreatePublicKey(privateKey chain.PrivateKey) (chain.PublicKey, error) {
	priv, pub := btcec.PrivKeyFromBytes(privateKey[:])
	defer priv.Zero()

	var out chain.PublicKey
	copy(out[:], pub.SerializeCompressed())
	return out, nil
}

// Sign produces a compact (r||s) ECDSA signature over hash using a
// deterministic RFC 6979 nonce, matching
// secp256k1_ecdsa_sign(..., secp256k1_nonce_function_rfc6979, ...).
// The DER form ecdsa.Signature.Serialize produces is variable-length;
// chain.Block stores a fixed 64-byte signature, so r and s are
// extracted and packed directly instead.
func Sign(hash chain.Hash, privateKey chain.PrivateKey) (chain.Signature, error) {
	priv, _ := btcec.PrivKeyFromBytes(privateKey[:])
	defer priv.Zero()

	sig := ecdsa.Sign(priv, hash[:])

	r := sig.R().Bytes()
	s := sig.S().Bytes()

	var out chain.Signature
	copy(out[:chain.PrivateKeyLength], r[:])
	copy(out[chain.PrivateKeyLength:], s[:])
	return out, nil
}

// Verify reports whether signature is a valid ECDSA signature over hash
// under publicKey, matching Secp256k1::verifySignature.
func Verify(hash chain.Hash, publicKey chain.PublicKey, signature chain.Signature) bool {
	pub, err := btcec.ParsePubKey(publicKey[:])
	if err != nil {
		return false
	}

	var r, s btcec.ModNScalar
	if r.SetByteSlice(signature[:chain.PrivateKeyLength]) {
		return false // overflowed the group order
	}
	if s.SetByteSlice(signature[chain.PrivateKeyLength:]) {
		return false
	}

	sig := ecdsa.NewSignature(&r, &s)
	return sig.Verify(hash[:], pub)
}
