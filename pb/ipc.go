package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// AuthData carries the password proof attached to privileged requests.
type AuthData struct {
	PasswordHash []byte
}

func (a *AuthData) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, a.PasswordHash)
	return b
}

func unmarshalAuthData(b []byte) (*AuthData, error) {
	a := &AuthData{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("auth_data: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if num == 1 {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("auth_data.password_hash: %w", protowire.ParseError(n))
			}
			a.PasswordHash = append([]byte(nil), v...)
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("auth_data: unknown field %d", num)
		}
		b = b[n:]
	}
	return a, nil
}

// ChainIDMessage covers the common shape { chain_id = 1 } shared by
// RemoveChain/GetBlocks/VerifyChain/GetChainHeader/GetChainKeys/
// GetChainInfo requests.
type ChainIDMessage struct {
	ChainID uint64
}

func (m *ChainIDMessage) marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, m.ChainID)
	return b
}

func unmarshalChainIDMessage(b []byte) (*ChainIDMessage, error) {
	m := &ChainIDMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("chain_id message: %w", protowire.ParseError(n))
		}
		b = b[n:]
		if num == 1 {
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("chain_id: %w", protowire.ParseError(n))
			}
			m.ChainID = v
			b = b[n:]
			continue
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, fmt.Errorf("chain_id message: unknown field %d", num)
		}
		b = b[n:]
	}
	return m, nil
}

// CreateChainRequest / AddBlockRequest share { chain_id = 1; data = 2 }.
type ChainDataMessage struct {
	ChainID uint64
	Data    []byte
}

func (m *ChainDataMessage) marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, m.ChainID)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, m.Data)
	return b
}

func unmarshalChainDataMessage(b []byte) (*ChainDataMessage, error) {
	m := &ChainDataMessage{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("chain_data message: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("chain_id: %w", protowire.ParseError(n))
			}
			m.ChainID = v
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("data: %w", protowire.ParseError(n))
			}
			m.Data = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("chain_data message: unknown field %d", num)
			}
			b = b[n:]
		}
	}
	return m, nil
}

// GetBlockRequest: { chain_id = 1; block_id = 2 }.
type GetBlockRequest struct {
	ChainID uint64
	BlockID uint64
}

func (m *GetBlockRequest) marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, m.ChainID)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, m.BlockID)
	return b
}

func unmarshalGetBlockRequest(b []byte) (*GetBlockRequest, error) {
	m := &GetBlockRequest{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("get_block_request: %w", protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("chain_id: %w", protowire.ParseError(n))
			}
			m.ChainID = v
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("block_id: %w", protowire.ParseError(n))
			}
			m.BlockID = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("get_block_request: unknown field %d", num)
			}
			b = b[n:]
		}
	}
	return m, nil
}

// RequestKind enumerates the ten request bodies a Request may carry, plus
// KindNone for an envelope with no recognized body (NOT_SUPPORTED).
type RequestKind int

const (
	KindNone RequestKind = iota
	KindPing
	KindCreateChain
	KindRemoveChain
	KindAddBlock
	KindGetBlock
	KindGetBlocks
	KindVerifyChain
	KindGetChainHeader
	KindGetChainKeys
	KindGetChainInfo
)

// Request is the decoded IPC request envelope. Exactly one of the typed
// fields below is populated according to Kind, mirroring the original's
// oneof accessed through has_X()/X() pairs.
type Request struct {
	Kind RequestKind
	Auth *AuthData // nil if auth_data was absent

	CreateChain  *ChainDataMessage // ChainID, Data
	RemoveChain  *ChainIDMessage
	AddBlock     *ChainDataMessage
	GetBlock     *GetBlockRequest
	GetBlocks    *ChainIDMessage
	VerifyChain  *ChainIDMessage
	GetHeader    *ChainIDMessage
	GetKeys      *ChainIDMessage
	GetInfo      *ChainIDMessage
}

const (
	reqFieldAuthData           = 1
	reqFieldPing               = 2
	reqFieldCreateChain        = 3
	reqFieldRemoveChain        = 4
	reqFieldAddBlock           = 5
	reqFieldGetBlock           = 6
	reqFieldGetBlocks          = 7
	reqFieldVerifyChain        = 8
	reqFieldGetChainHeader     = 9
	reqFieldGetChainKeys       = 10
	reqFieldGetChainInfo       = 11
)

// UnmarshalRequest decodes a Request envelope. Unknown top-level fields are
// skipped (forward compatibility, matching the original's protobuf
// behavior of ignoring fields a decoder doesn't recognize); an envelope
// with none of the ten known body fields set decodes successfully with
// Kind == KindNone, leaving the caller (internal/wire) to respond
// NOT_SUPPORTED.
func UnmarshalRequest(raw []byte) (*Request, error) {
	req := &Request{}
	b := raw
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("request: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if num < reqFieldAuthData || num > reqFieldGetChainInfo {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("request: unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if typ != protowire.BytesType || n < 0 {
			// Every field in Request is itself a message (bytes-wire-typed);
			// a varint here would indicate a corrupt or hostile envelope.
			return nil, fmt.Errorf("request: field %d: unexpected wire type", num)
		}
		b = b[n:]

		var err error
		switch num {
		case reqFieldAuthData:
			req.Auth, err = unmarshalAuthData(v)
		case reqFieldPing:
			req.Kind = KindPing
		case reqFieldCreateChain:
			req.Kind = KindCreateChain
			req.CreateChain, err = unmarshalChainDataMessage(v)
		case reqFieldRemoveChain:
			req.Kind = KindRemoveChain
			req.RemoveChain, err = unmarshalChainIDMessage(v)
		case reqFieldAddBlock:
			req.Kind = KindAddBlock
			req.AddBlock, err = unmarshalChainDataMessage(v)
		case reqFieldGetBlock:
			req.Kind = KindGetBlock
			req.GetBlock, err = unmarshalGetBlockRequest(v)
		case reqFieldGetBlocks:
			req.Kind = KindGetBlocks
			req.GetBlocks, err = unmarshalChainIDMessage(v)
		case reqFieldVerifyChain:
			req.Kind = KindVerifyChain
			req.VerifyChain, err = unmarshalChainIDMessage(v)
		case reqFieldGetChainHeader:
			req.Kind = KindGetChainHeader
			req.GetHeader, err = unmarshalChainIDMessage(v)
		case reqFieldGetChainKeys:
			req.Kind = KindGetChainKeys
			req.GetKeys, err = unmarshalChainIDMessage(v)
		case reqFieldGetChainInfo:
			req.Kind = KindGetChainInfo
			req.GetInfo, err = unmarshalChainIDMessage(v)
		default:
			// unknown fields are skipped before the switch
		}
		if err != nil {
			return nil, err
		}
	}
	return req, nil
}

// --- request builders (client side) ---

func MarshalPingRequest(auth *AuthData) []byte {
	return marshalRequestEnvelope(auth, reqFieldPing, []byte{})
}

func MarshalCreateChainRequest(auth *AuthData, chainID uint64, data []byte) []byte {
	m := &ChainDataMessage{ChainID: chainID, Data: data}
	return marshalRequestEnvelope(auth, reqFieldCreateChain, m.marshal())
}

func MarshalRemoveChainRequest(auth *AuthData, chainID uint64) []byte {
	m := &ChainIDMessage{ChainID: chainID}
	return marshalRequestEnvelope(auth, reqFieldRemoveChain, m.marshal())
}

func MarshalAddBlockRequest(auth *AuthData, chainID uint64, data []byte) []byte {
	m := &ChainDataMessage{ChainID: chainID, Data: data}
	return marshalRequestEnvelope(auth, reqFieldAddBlock, m.marshal())
}

func MarshalGetBlockRequest(auth *AuthData, chainID, blockID uint64) []byte {
	m := &GetBlockRequest{ChainID: chainID, BlockID: blockID}
	return marshalRequestEnvelope(auth, reqFieldGetBlock, m.marshal())
}

func MarshalGetBlocksRequest(auth *AuthData, chainID uint64) []byte {
	m := &ChainIDMessage{ChainID: chainID}
	return marshalRequestEnvelope(auth, reqFieldGetBlocks, m.marshal())
}

func MarshalVerifyChainRequest(auth *AuthData, chainID uint64) []byte {
	m := &ChainIDMessage{ChainID: chainID}
	return marshalRequestEnvelope(auth, reqFieldVerifyChain, m.marshal())
}

func MarshalGetChainHeaderRequest(auth *AuthData, chainID uint64) []byte {
	m := &ChainIDMessage{ChainID: chainID}
	return marshalRequestEnvelope(auth, reqFieldGetChainHeader, m.marshal())
}

func MarshalGetChainKeysRequest(auth *AuthData, chainID uint64) []byte {
	m := &ChainIDMessage{ChainID: chainID}
	return marshalRequestEnvelope(auth, reqFieldGetChainKeys, m.marshal())
}

func MarshalGetChainInfoRequest(auth *AuthData, chainID uint64) []byte {
	m := &ChainIDMessage{ChainID: chainID}
	return marshalRequestEnvelope(auth, reqFieldGetChainInfo, m.marshal())
}

func marshalRequestEnvelope(auth *AuthData, bodyField uint64, body []byte) []byte {
	var b []byte
	if auth != nil {
		b = protowire.AppendTag(b, reqFieldAuthData, protowire.BytesType)
		b = protowire.AppendBytes(b, auth.Marshal())
	}
	b = protowire.AppendTag(b, bodyField, protowire.BytesType)
	b = protowire.AppendBytes(b, body)
	return b
}
