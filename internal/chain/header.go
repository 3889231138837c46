package chain

import (
	"fmt"

	"github.com/yakush/chaindb/pb"
)

// Header is a chain's root record: its schema version, its current block
// index (the count of appended blocks), caller-supplied metadata, and the
// chain's keypair. The private key never leaves storage except through the
// GetChainHeader and GetChainKeys operations — callers creating a chain never see it
// generated, since Manager.CreateChain derives it internally (C9).
type Header struct {
	Version    uint64
	Index      uint64
	Data       []byte
	PrivateKey PrivateKey
	PublicKey  PublicKey
}

const (
	// headerKey is the single well-known key every chain's store holds its
	// header under, matching DB_HEADER_KEY.
	headerKey = "header"
	// blockKeyPrefix names block storage keys as blockKeyPrefix + index,
	// matching DB_BLOCK_KEY.
	blockKeyPrefix = "block_"
)

func blockKey(index uint64) string {
	return fmt.Sprintf("%s%d", blockKeyPrefix, index)
}

// Pack serializes a Header to its storage-schema wire form, matching
// Chain::Header::pack.
func (h *Header) Pack() []byte {
	return (&pb.Header{
		Version:    h.Version,
		Index:      h.Index,
		Data:       h.Data,
		PrivateKey: h.PrivateKey.Bytes(),
		PublicKey:  h.PublicKey.Bytes(),
	}).Marshal()
}

// UnpackHeader parses a Header from its storage-schema wire form, matching
// Chain::Header::unpack: a length mismatch on either key field is treated
// as corruption, not a silent truncation.
func UnpackHeader(buf []byte) (*Header, error) {
	raw, err := pb.UnmarshalHeader(buf)
	if err != nil {
		return nil, fmt.Errorf("unpack header: %w: %v", ErrCorruption, err)
	}

	priv, err := BytesToPrivateKey(raw.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("unpack header: %w", err)
	}
	pub, err := BytesToPublicKey(raw.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("unpack header: %w", err)
	}

	return &Header{
		Version:    raw.Version,
		Index:      raw.Index,
		Data:       raw.Data,
		PrivateKey: priv,
		PublicKey:  pub,
	}, nil
}
