// Package wire implements the request dispatcher (C10): decoding a raw
// IPC request, checking password auth, routing to the chain manager, and
// encoding the response — the Go equivalent of Handler::handleMessage and
// its ten handleXRequest methods.
package wire

import (
	"crypto/subtle"

	"github.com/rs/zerolog"

	"github.com/yakush/chaindb/internal/chain"
	"github.com/yakush/chaindb/internal/crypto"
	"github.com/yakush/chaindb/internal/manager"
	"github.com/yakush/chaindb/pb"
)

// passwordSalt is mixed into the password hash the same way the original
// does via PASSWORD_SALT; it is a build-time constant, not a secret in
// itself — the password is.
const passwordSalt = "EMPTY_SALT/"

// Dispatcher decodes requests, enforces password auth when configured,
// and routes to a Manager, matching Handler's responsibilities.
type Dispatcher struct {
	manager  *manager.Manager
	password string
	log      zerolog.Logger
}

// New returns a Dispatcher. An empty password disables auth entirely,
// matching Handler::handleMessage's `if (!_password.empty())` guard.
func New(mgr *manager.Manager, password string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{manager: mgr, password: password, log: log}
}

// Handle decodes raw, dispatches it, and returns the encoded response.
// It never returns an error: every failure mode is represented as an
// encoded Response with a non-SUCCESS status, matching the original's
// Handler always producing a reply message.
func (d *Dispatcher) Handle(raw []byte) []byte {
	req, err := pb.UnmarshalRequest(raw)
	if err != nil {
		d.log.Error().Err(err).Msg("can't parse request")
		return pb.MarshalStatus(pb.StatusDataError, "can't parse data")
	}

	if d.password != "" {
		if req.Auth == nil {
			return pb.MarshalStatus(pb.StatusNotAuthorized, "no authorization data")
		}
		if !d.checkAuth(req.Auth) {
			return pb.MarshalStatus(pb.StatusNotAuthorized, "invalid password")
		}
	}

	switch req.Kind {
	case pb.KindPing:
		return d.handlePing()
	case pb.KindCreateChain:
		return d.handleCreateChain(req.CreateChain)
	case pb.KindRemoveChain:
		return d.handleRemoveChain(req.RemoveChain)
	case pb.KindAddBlock:
		return d.handleAddBlock(req.AddBlock)
	case pb.KindGetBlock:
		return d.handleGetBlock(req.GetBlock)
	case pb.KindGetBlocks:
		return d.handleGetBlocks(req.GetBlocks)
	case pb.KindVerifyChain:
		return d.handleVerifyChain(req.VerifyChain)
	case pb.KindGetChainHeader:
		return d.handleGetChainHeader(req.GetHeader)
	case pb.KindGetChainKeys:
		return d.handleGetChainKeys(req.GetKeys)
	case pb.KindGetChainInfo:
		return d.handleGetChainInfo(req.GetInfo)
	default:
		return pb.MarshalStatus(pb.StatusNotSupported, "method isn't supported")
	}
}

// checkAuth compares SHA256(salt || password) against the caller-supplied
// hash using a constant-time comparison, matching Handler::checkAuth's
// intent (memcmp there is not constant-time; this tightens it without
// changing the externally observable pass/fail behavior).
func (d *Dispatcher) checkAuth(auth *pb.AuthData) bool {
	if len(auth.PasswordHash) != chain.HashLength {
		return false
	}
	want := crypto.Hash([]byte(passwordSalt), []byte(d.password))
	return subtle.ConstantTimeCompare(want.Bytes(), auth.PasswordHash) == 1
}

func (d *Dispatcher) handlePing() []byte {
	d.log.Info().Msg("handle ping request")
	return pb.MarshalStatus(pb.StatusSuccess, "")
}

func (d *Dispatcher) handleCreateChain(req *pb.ChainDataMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle create chain request")

	if len(req.Data) > chain.MaxDataLength {
		return pb.MarshalStatus(pb.StatusDataError, "data field size is too large")
	}

	if err := d.manager.CreateChain(chain.ChainID(req.ChainID), req.Data); err != nil {
		d.log.Error().Err(err).Msg("can't create chain")
		return pb.MarshalStatus(pb.StatusError, "can't create chain")
	}
	return pb.MarshalStatus(pb.StatusSuccess, "")
}

func (d *Dispatcher) handleRemoveChain(req *pb.ChainIDMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle remove chain request")

	if err := d.manager.RemoveChain(chain.ChainID(req.ChainID)); err != nil {
		d.log.Error().Err(err).Msg("can't remove chain")
		return pb.MarshalStatus(pb.StatusError, "can't remove chain")
	}
	return pb.MarshalStatus(pb.StatusSuccess, "")
}

func (d *Dispatcher) handleAddBlock(req *pb.ChainDataMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle add block request")

	if len(req.Data) > chain.MaxDataLength {
		return pb.MarshalStatus(pb.StatusDataError, "data field size is too large")
	}

	block, err := d.manager.AddBlock(chain.ChainID(req.ChainID), req.Data)
	if err != nil {
		d.log.Error().Err(err).Msg("can't add block")
		return pb.MarshalStatus(pb.StatusError, "can't add block")
	}
	return pb.MarshalAddBlockResponse(blockToWire(block))
}

func (d *Dispatcher) handleGetBlock(req *pb.GetBlockRequest) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Uint64("block_id", req.BlockID).Msg("handle get block request")

	block, err := d.manager.GetBlock(chain.ChainID(req.ChainID), req.BlockID)
	if err != nil {
		d.log.Error().Err(err).Msg("can't get block")
		return pb.MarshalStatus(pb.StatusError, "can't get block")
	}
	return pb.MarshalGetBlockResponse(blockToWire(block))
}

func (d *Dispatcher) handleGetBlocks(req *pb.ChainIDMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle get blocks request")

	blocks, err := d.manager.GetBlocks(chain.ChainID(req.ChainID))
	if err != nil {
		d.log.Error().Err(err).Msg("can't get blocks")
		return pb.MarshalStatus(pb.StatusError, "can't get blocks")
	}

	out := make([]*pb.BlockData, len(blocks))
	for i, b := range blocks {
		out[i] = blockToWire(b)
	}
	return pb.MarshalGetBlocksResponse(out)
}

func (d *Dispatcher) handleVerifyChain(req *pb.ChainIDMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle verify chain request")

	if err := d.manager.VerifyChain(chain.ChainID(req.ChainID)); err != nil {
		d.log.Error().Err(err).Msg("chain is not valid")
		return pb.MarshalStatus(pb.StatusError, "chain is not valid")
	}
	return pb.MarshalStatus(pb.StatusSuccess, "")
}

func (d *Dispatcher) handleGetChainHeader(req *pb.ChainIDMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle get chain header request")

	header, err := d.manager.GetChainHeader(chain.ChainID(req.ChainID))
	if err != nil {
		d.log.Error().Err(err).Msg("can't get header")
		return pb.MarshalStatus(pb.StatusError, "can't get header")
	}

	return pb.MarshalGetChainHeaderResponse(&pb.Header{
		Version:    header.Version,
		Index:      header.Index,
		Data:       header.Data,
		PrivateKey: header.PrivateKey.Bytes(),
		PublicKey:  header.PublicKey.Bytes(),
	})
}

func (d *Dispatcher) handleGetChainKeys(req *pb.ChainIDMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle get chain keys request")

	header, err := d.manager.GetChainHeader(chain.ChainID(req.ChainID))
	if err != nil {
		d.log.Error().Err(err).Msg("can't get header")
		return pb.MarshalStatus(pb.StatusError, "can't get header")
	}

	return pb.MarshalGetChainKeysResponse(header.PrivateKey.Bytes(), header.PublicKey.Bytes())
}

func (d *Dispatcher) handleGetChainInfo(req *pb.ChainIDMessage) []byte {
	d.log.Info().Uint64("chain_id", req.ChainID).Msg("handle get chain info request")

	version, index, err := d.manager.GetChainInfo(chain.ChainID(req.ChainID))
	if err != nil {
		d.log.Error().Err(err).Msg("can't get chain info")
		return pb.MarshalStatus(pb.StatusError, "can't get chain info")
	}
	return pb.MarshalGetChainInfoResponse(req.ChainID, version, index)
}

func blockToWire(b *chain.Block) *pb.BlockData {
	return &pb.BlockData{
		Hash:      b.Hash.Bytes(),
		PrevHash:  b.PrevHash.Bytes(),
		Nonce:     b.Nonce.Bytes(),
		Data:      b.Data,
		Signature: b.Signature.Bytes(),
	}
}
