// Package pb implements the wire and storage message schema named in
// SPEC_FULL.md: the Header and BlockData storage records, and the
// Request/Response IPC envelope with its ten-way request oneof. Messages
// are encoded with google.golang.org/protobuf's low-level protowire
// primitives rather than protoc-generated bindings, since this tree is
// built and reviewed without running the protobuf compiler; the wire
// format produced is standard protobuf (tag/varint/length-delimited
// fields) and any protoc-generated client speaks it.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Header is the storage-schema record for a chain's header block
// (field numbers match SPEC_FULL.md §4).
type Header struct {
	Version    uint64
	Index      uint64
	Data       []byte
	PrivateKey []byte
	PublicKey  []byte
}

const (
	headerFieldVersion    = 1
	headerFieldIndex      = 2
	headerFieldData       = 3
	headerFieldPrivateKey = 4
	headerFieldPublicKey  = 5
)

func (h *Header) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, headerFieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Version)
	b = protowire.AppendTag(b, headerFieldIndex, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Index)
	b = protowire.AppendTag(b, headerFieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, h.Data)
	b = protowire.AppendTag(b, headerFieldPrivateKey, protowire.BytesType)
	b = protowire.AppendBytes(b, h.PrivateKey)
	b = protowire.AppendTag(b, headerFieldPublicKey, protowire.BytesType)
	b = protowire.AppendBytes(b, h.PublicKey)
	return b
}

func UnmarshalHeader(b []byte) (*Header, error) {
	h := &Header{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("header: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case headerFieldVersion:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("header.version: %w", protowire.ParseError(n))
			}
			h.Version = v
			b = b[n:]
		case headerFieldIndex:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("header.index: %w", protowire.ParseError(n))
			}
			h.Index = v
			b = b[n:]
		case headerFieldData:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("header.data: %w", protowire.ParseError(n))
			}
			h.Data = append([]byte(nil), v...)
			b = b[n:]
		case headerFieldPrivateKey:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("header.private_key: %w", protowire.ParseError(n))
			}
			h.PrivateKey = append([]byte(nil), v...)
			b = b[n:]
		case headerFieldPublicKey:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("header.public_key: %w", protowire.ParseError(n))
			}
			h.PublicKey = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("header: unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return h, nil
}

// BlockData is the storage-schema record for one block's body.
type BlockData struct {
	Hash      []byte
	PrevHash  []byte
	Nonce     []byte
	Data      []byte
	Signature []byte
}

const (
	blockFieldHash      = 1
	blockFieldPrevHash  = 2
	blockFieldNonce     = 3
	blockFieldData      = 4
	blockFieldSignature = 5
)

func (bd *BlockData) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, blockFieldHash, protowire.BytesType)
	b = protowire.AppendBytes(b, bd.Hash)
	b = protowire.AppendTag(b, blockFieldPrevHash, protowire.BytesType)
	b = protowire.AppendBytes(b, bd.PrevHash)
	b = protowire.AppendTag(b, blockFieldNonce, protowire.BytesType)
	b = protowire.AppendBytes(b, bd.Nonce)
	b = protowire.AppendTag(b, blockFieldData, protowire.BytesType)
	b = protowire.AppendBytes(b, bd.Data)
	b = protowire.AppendTag(b, blockFieldSignature, protowire.BytesType)
	b = protowire.AppendBytes(b, bd.Signature)
	return b
}

func UnmarshalBlockData(b []byte) (*BlockData, error) {
	bd := &BlockData{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("block: %w", protowire.ParseError(n))
		}
		b = b[n:]

		var dst *[]byte
		switch num {
		case blockFieldHash:
			dst = &bd.Hash
		case blockFieldPrevHash:
			dst = &bd.PrevHash
		case blockFieldNonce:
			dst = &bd.Nonce
		case blockFieldData:
			dst = &bd.Data
		case blockFieldSignature:
			dst = &bd.Signature
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("block: unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, fmt.Errorf("block: field %d: %w", num, protowire.ParseError(n))
		}
		*dst = append([]byte(nil), v...)
		b = b[n:]
	}
	return bd, nil
}
