package chain

import (
	"fmt"

	"github.com/yakush/chaindb/pb"
)

// Block is one signed, hash-linked entry in a chain. Hash commits to
// PrevHash, Nonce, Data, and Signature (I1); Signature is an ECDSA
// signature over the body hash (PrevHash || Nonce || Data) under the
// chain's private key.
type Block struct {
	Hash      Hash
	PrevHash  Hash
	Nonce     Nonce
	Data      []byte
	Signature Signature
}

// Pack serializes a Block to its storage-schema wire form, matching
// Block::Container::pack.
func (b *Block) Pack() []byte {
	return (&pb.BlockData{
		Hash:      b.Hash.Bytes(),
		PrevHash:  b.PrevHash.Bytes(),
		Nonce:     b.Nonce.Bytes(),
		Data:      b.Data,
		Signature: b.Signature.Bytes(),
	}).Marshal()
}

// UnpackBlock parses a Block from its storage-schema wire form, matching
// Block::Container::unpack, validating every fixed-width field's length.
func UnpackBlock(buf []byte) (*Block, error) {
	bd, err := pb.UnmarshalBlockData(buf)
	if err != nil {
		return nil, fmt.Errorf("unpack block: %w: %v", ErrCorruption, err)
	}

	hash, err := BytesToHash(bd.Hash)
	if err != nil {
		return nil, fmt.Errorf("unpack block: %w", err)
	}
	prevHash, err := BytesToHash(bd.PrevHash)
	if err != nil {
		return nil, fmt.Errorf("unpack block: %w", err)
	}
	nonce, err := BytesToNonce(bd.Nonce)
	if err != nil {
		return nil, fmt.Errorf("unpack block: %w", err)
	}
	sig, err := BytesToSignature(bd.Signature)
	if err != nil {
		return nil, fmt.Errorf("unpack block: %w", err)
	}

	return &Block{
		Hash:      hash,
		PrevHash:  prevHash,
		Nonce:     nonce,
		Data:      bd.Data,
		Signature: sig,
	}, nil
}
