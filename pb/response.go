package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Status codes, matching the original's Status enum exactly.
const (
	StatusSuccess       uint32 = 0
	StatusError         uint32 = 1
	StatusDataError     uint32 = 2
	StatusNotSupported  uint32 = 3
	StatusNotAuthorized uint32 = 4
)

// Response is the decoded/encoded IPC response envelope.
type Response struct {
	Status        uint32
	Message       string
	Block         *BlockData  // add_block_response / get_block_response
	Blocks        []*BlockData // get_blocks_response
	Header        *Header      // get_chain_header_response
	PrivateKey    []byte       // get_chain_keys_response
	PublicKey     []byte       // get_chain_keys_response
	InfoChainID   uint64       // get_chain_info_response
	InfoVersion   uint64       // get_chain_info_response
	InfoIndex     uint64       // get_chain_info_response
	hasInfo       bool
}

const (
	respFieldStatus            = 1
	respFieldAddBlockResponse  = 2
	respFieldGetBlockResponse  = 3
	respFieldGetBlocksResponse = 4
	respFieldGetHeaderResponse = 5
	respFieldGetKeysResponse   = 6
	respFieldGetInfoResponse   = 7

	statusFieldCode    = 1
	statusFieldMessage = 2
)

// MarshalStatus builds a response carrying only a status/message, used for
// Ping, CreateChain, RemoveChain, VerifyChain, and every error path.
func MarshalStatus(status uint32, message string) []byte {
	return marshalResponseEnvelope(status, message, 0, nil)
}

// MarshalAddBlockResponse builds a SUCCESS response wrapping the newly
// appended block.
func MarshalAddBlockResponse(block *BlockData) []byte {
	return marshalResponseEnvelope(StatusSuccess, "", respFieldAddBlockResponse, wrapBlock(block))
}

func MarshalGetBlockResponse(block *BlockData) []byte {
	return marshalResponseEnvelope(StatusSuccess, "", respFieldGetBlockResponse, wrapBlock(block))
}

func MarshalGetBlocksResponse(blocks []*BlockData) []byte {
	var body []byte
	for _, blk := range blocks {
		body = protowire.AppendTag(body, 1, protowire.BytesType)
		body = protowire.AppendBytes(body, blk.Marshal())
	}
	return marshalResponseEnvelope(StatusSuccess, "", respFieldGetBlocksResponse, body)
}

func MarshalGetChainHeaderResponse(h *Header) []byte {
	var body []byte
	body = protowire.AppendTag(body, 1, protowire.BytesType)
	body = protowire.AppendBytes(body, h.Marshal())
	return marshalResponseEnvelope(StatusSuccess, "", respFieldGetHeaderResponse, body)
}

func MarshalGetChainKeysResponse(privateKey, publicKey []byte) []byte {
	var body []byte
	body = protowire.AppendTag(body, 1, protowire.BytesType)
	body = protowire.AppendBytes(body, privateKey)
	body = protowire.AppendTag(body, 2, protowire.BytesType)
	body = protowire.AppendBytes(body, publicKey)
	return marshalResponseEnvelope(StatusSuccess, "", respFieldGetKeysResponse, body)
}

func MarshalGetChainInfoResponse(chainID, version, index uint64) []byte {
	var body []byte
	body = protowire.AppendTag(body, 1, protowire.VarintType)
	body = protowire.AppendVarint(body, chainID)
	body = protowire.AppendTag(body, 2, protowire.VarintType)
	body = protowire.AppendVarint(body, version)
	body = protowire.AppendTag(body, 3, protowire.VarintType)
	body = protowire.AppendVarint(body, index)
	return marshalResponseEnvelope(StatusSuccess, "", respFieldGetInfoResponse, body)
}

func wrapBlock(block *BlockData) []byte {
	var body []byte
	body = protowire.AppendTag(body, 1, protowire.BytesType)
	body = protowire.AppendBytes(body, block.Marshal())
	return body
}

func marshalResponseEnvelope(status uint32, message string, bodyField uint64, body []byte) []byte {
	var statusMsg []byte
	statusMsg = protowire.AppendTag(statusMsg, statusFieldCode, protowire.VarintType)
	statusMsg = protowire.AppendVarint(statusMsg, uint64(status))
	if message != "" {
		statusMsg = protowire.AppendTag(statusMsg, statusFieldMessage, protowire.BytesType)
		statusMsg = protowire.AppendBytes(statusMsg, []byte(message))
	}

	var b []byte
	b = protowire.AppendTag(b, respFieldStatus, protowire.BytesType)
	b = protowire.AppendBytes(b, statusMsg)
	if bodyField != 0 {
		b = protowire.AppendTag(b, bodyField, protowire.BytesType)
		b = protowire.AppendBytes(b, body)
	}
	return b
}

// UnmarshalResponse decodes a Response envelope (client side).
func UnmarshalResponse(raw []byte) (*Response, error) {
	resp := &Response{}
	b := raw
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("response: %w", protowire.ParseError(n))
		}
		b = b[n:]

		v, n := protowire.ConsumeBytes(b)
		if typ != protowire.BytesType || n < 0 {
			return nil, fmt.Errorf("response: field %d: unexpected wire type", num)
		}
		b = b[n:]

		var err error
		switch num {
		case respFieldStatus:
			resp.Status, resp.Message, err = unmarshalStatus(v)
		case respFieldAddBlockResponse, respFieldGetBlockResponse:
			resp.Block, err = unmarshalWrappedBlock(v)
		case respFieldGetBlocksResponse:
			resp.Blocks, err = unmarshalBlockList(v)
		case respFieldGetHeaderResponse:
			resp.Header, err = unmarshalWrappedHeader(v)
		case respFieldGetKeysResponse:
			resp.PrivateKey, resp.PublicKey, err = unmarshalKeys(v)
		case respFieldGetInfoResponse:
			resp.InfoChainID, resp.InfoVersion, resp.InfoIndex, err = unmarshalInfo(v)
			resp.hasInfo = true
		}
		if err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func unmarshalStatus(b []byte) (uint32, string, error) {
	var status uint32
	var message string
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0, "", fmt.Errorf("status: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case statusFieldCode:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return 0, "", fmt.Errorf("status.status: %w", protowire.ParseError(n))
			}
			status = uint32(v)
			b = b[n:]
		case statusFieldMessage:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return 0, "", fmt.Errorf("status.message: %w", protowire.ParseError(n))
			}
			message = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return 0, "", fmt.Errorf("status: unknown field %d", num)
			}
			b = b[n:]
		}
	}
	return status, message, nil
}

func unmarshalWrappedBlock(b []byte) (*BlockData, error) {
	num, _, n := protowire.ConsumeTag(b)
	if n < 0 || num != 1 {
		return nil, fmt.Errorf("wrapped block: %w", protowire.ParseError(n))
	}
	b = b[n:]
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, fmt.Errorf("wrapped block: %w", protowire.ParseError(n))
	}
	return UnmarshalBlockData(v)
}

func unmarshalWrappedHeader(b []byte) (*Header, error) {
	num, _, n := protowire.ConsumeTag(b)
	if n < 0 || num != 1 {
		return nil, fmt.Errorf("wrapped header: %w", protowire.ParseError(n))
	}
	b = b[n:]
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, fmt.Errorf("wrapped header: %w", protowire.ParseError(n))
	}
	return UnmarshalHeader(v)
}

func unmarshalBlockList(b []byte) ([]*BlockData, error) {
	var out []*BlockData
	for len(b) > 0 {
		num, _, n := protowire.ConsumeTag(b)
		if n < 0 || num != 1 {
			return nil, fmt.Errorf("block list: %w", protowire.ParseError(n))
		}
		b = b[n:]
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, fmt.Errorf("block list: %w", protowire.ParseError(n))
		}
		b = b[n:]
		blk, err := UnmarshalBlockData(v)
		if err != nil {
			return nil, err
		}
		out = append(out, blk)
	}
	return out, nil
}

func unmarshalKeys(b []byte) (priv, pub []byte, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, nil, fmt.Errorf("keys: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, nil, fmt.Errorf("keys.private_key: %w", protowire.ParseError(n))
			}
			priv = append([]byte(nil), v...)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, nil, fmt.Errorf("keys.public_key: %w", protowire.ParseError(n))
			}
			pub = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, nil, fmt.Errorf("keys: unknown field %d", num)
			}
			b = b[n:]
		}
	}
	return priv, pub, nil
}

func unmarshalInfo(b []byte) (chainID, version, index uint64, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return 0, 0, 0, fmt.Errorf("info: %w", protowire.ParseError(n))
		}
		b = b[n:]
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			if typ == protowire.VarintType {
				return 0, 0, 0, fmt.Errorf("info: field %d: %w", num, protowire.ParseError(n))
			}
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return 0, 0, 0, fmt.Errorf("info: unknown field %d", num)
			}
			b = b[n:]
			continue
		}
		switch num {
		case 1:
			chainID = v
		case 2:
			version = v
		case 3:
			index = v
		}
		b = b[n:]
	}
	return chainID, version, index, nil
}
