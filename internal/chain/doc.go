// Package chain models ChainDB's append-only log: a per-tenant Chain of
// hash-linked, secp256k1-signed Blocks, rooted at a ChainHeader that carries
// the chain's keypair and caller-supplied metadata.
//
// Block linkage:
//
//	Header (index=0, seed)
//	   |
//	   v
//	Block 1 --prev_hash--> Block 2 --prev_hash--> Block 3 --prev_hash--> ...
//
// Each Block's hash commits to its predecessor's hash, its nonce, its data,
// and its signature over the body. manager.Manager.VerifyChain
// (internal/manager) walks this list from block 1 forward, recomputing hashes and signatures to confirm nothing was
// altered or reordered after the fact.
//
// A Chain value is a stateless handle bound to a directory; every method
// opens the underlying key/value store (internal/kv), performs one
// operation, and closes it. The sole atomicity boundary is AddBlock, which
// writes the bumped header and the new block in a single batch (see
// internal/kv).
package chain
