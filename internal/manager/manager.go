// Package manager implements the multi-tenant chain registry: translating
// a ChainID into a storage path, generating each chain's keypair on
// creation, assembling and signing each appended block,
// and walking a chain end-to-end to verify it. This is the crypto- and
// policy-bearing layer above internal/chain's dumb per-chain storage
// handle, mirroring the split between Storage::Manager and Storage::Chain
// in the original.
package manager

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/yakush/chaindb/internal/chain"
	"github.com/yakush/chaindb/internal/crypto"
)

// genesisHashRounds is the iteration count the original applies via
// SHA256::getHashN when deriving a chain's genesis seed: double SHA-256 of
// the header preimage (data || private key || public key).
const genesisHashRounds = 2

// Manager owns the root storage directory under which every tenant's
// chain lives as its own key/value store directory, named
// "<chainId>.blockchain", matching Manager::makeStoragePath.
type Manager struct {
	storageDir string
	log        zerolog.Logger
}

// New returns a Manager rooted at storageDir. The directory is not created
// here; it must already exist (or be creatable on first chain creation by
// the underlying store, which creates intermediate directories itself).
func New(storageDir string, log zerolog.Logger) *Manager {
	return &Manager{storageDir: storageDir, log: log}
}

func (m *Manager) pathFor(chainID chain.ChainID) string {
	return filepath.Join(m.storageDir, fmt.Sprintf("%d.blockchain", uint64(chainID)))
}

// CreateChain generates a fresh secp256k1 keypair and creates a new chain
// store whose header holds that keypair and the caller-supplied data. The
// genesis seed is not stored; AddBlock and VerifyChain derive it from the
// header. Fails if data exceeds MaxDataLength or a chain with this id
// already exists.
func (m *Manager) CreateChain(chainID chain.ChainID, data []byte) error {
	if len(data) > chain.MaxDataLength {
		return fmt.Errorf("create chain %d: %w", chainID, chain.ErrDataTooLarge)
	}

	priv, err := crypto.GeneratePrivateKey()
	if err != nil {
		return fmt.Errorf("create chain %d: %w", chainID, err)
	}
	pub, err := crypto.CreatePublicKey(priv)
	if err != nil {
		return fmt.Errorf("create chain %d: %w", chainID, err)
	}

	header := &chain.Header{
		Version:    chain.DBVersion,
		Index:      0,
		Data:       data,
		PrivateKey: priv,
		PublicKey:  pub,
	}

	if err := chain.Open(m.pathFor(chainID)).Create(header); err != nil {
		return fmt.Errorf("create chain %d: %w", chainID, err)
	}

	m.log.Info().Uint64("chain_id", uint64(chainID)).Msg("chain created")
	return nil
}

// RemoveChain destroys a chain's store. Removing an absent chain is not an
// error, matching the spec's idempotent-removeChain requirement.
func (m *Manager) RemoveChain(chainID chain.ChainID) error {
	if err := chain.Open(m.pathFor(chainID)).Remove(); err != nil {
		return fmt.Errorf("remove chain %d: %w", chainID, err)
	}
	m.log.Info().Uint64("chain_id", uint64(chainID)).Msg("chain removed")
	return nil
}

// genesisSeed derives the hash that stands in for block 0's hash when
// computing block 1's prev_hash, matching the original's
// SHA256::getHashN({header.data, header.privateKey, header.publicKey}, 2).
func genesisSeed(header *chain.Header) chain.Hash {
	return crypto.HashN(genesisHashRounds, header.Data, header.PrivateKey.Bytes(), header.PublicKey.Bytes())
}

// AddBlock assembles and appends a new signed block: it draws a fresh
// nonce, determines the previous block's hash (or the genesis seed for
// the first block), hashes the body, signs it under the chain's private
// key, and persists the result. Returns the appended block.
func (m *Manager) AddBlock(chainID chain.ChainID, data []byte) (*chain.Block, error) {
	if len(data) > chain.MaxDataLength {
		return nil, fmt.Errorf("add block to chain %d: %w", chainID, chain.ErrDataTooLarge)
	}

	c := chain.Open(m.pathFor(chainID))

	header, err := c.GetHeader()
	if err != nil {
		return nil, fmt.Errorf("add block to chain %d: %w", chainID, err)
	}

	prevHash := genesisSeed(header)
	if header.Index > 0 {
		prev, err := c.GetBlock(header.Index)
		if err != nil {
			return nil, fmt.Errorf("add block to chain %d: %w", chainID, err)
		}
		prevHash = prev.Hash
	}

	nonce, err := crypto.NewNonce()
	if err != nil {
		return nil, fmt.Errorf("add block to chain %d: %w", chainID, err)
	}

	bodyHash := crypto.Hash(prevHash.Bytes(), nonce.Bytes(), data)

	sig, err := crypto.Sign(bodyHash, header.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("add block to chain %d: %w", chainID, err)
	}

	blockHash := crypto.Hash(prevHash.Bytes(), nonce.Bytes(), data, sig.Bytes())

	block := &chain.Block{
		Hash:      blockHash,
		PrevHash:  prevHash,
		Nonce:     nonce,
		Data:      data,
		Signature: sig,
	}

	if _, err := c.AddBlock(block); err != nil {
		return nil, fmt.Errorf("add block to chain %d: %w", chainID, err)
	}

	m.log.Info().Uint64("chain_id", uint64(chainID)).Msg("block appended")
	return block, nil
}

// GetBlock returns the block at the given 1-based index.
func (m *Manager) GetBlock(chainID chain.ChainID, index uint64) (*chain.Block, error) {
	blk, err := chain.Open(m.pathFor(chainID)).GetBlock(index)
	if err != nil {
		return nil, fmt.Errorf("get block %d of chain %d: %w", index, chainID, err)
	}
	return blk, nil
}

// GetBlocks returns every block in the chain, in order.
func (m *Manager) GetBlocks(chainID chain.ChainID) ([]*chain.Block, error) {
	blocks, err := chain.Open(m.pathFor(chainID)).GetBlocks()
	if err != nil {
		return nil, fmt.Errorf("get blocks of chain %d: %w", chainID, err)
	}
	return blocks, nil
}

// GetChainHeader returns the chain's header record.
func (m *Manager) GetChainHeader(chainID chain.ChainID) (*chain.Header, error) {
	header, err := chain.Open(m.pathFor(chainID)).GetHeader()
	if err != nil {
		return nil, fmt.Errorf("get header of chain %d: %w", chainID, err)
	}
	return header, nil
}

// GetChainInfo returns a chain's schema version and current block index.
func (m *Manager) GetChainInfo(chainID chain.ChainID) (version, index uint64, err error) {
	header, err := m.GetChainHeader(chainID)
	if err != nil {
		return 0, 0, err
	}
	return header.Version, header.Index, nil
}

// ErrVerificationFailed indicates VerifyChain found a block whose stored
// hash or signature does not match its recomputed value.
var ErrVerificationFailed = errors.New("chain verification failed")

// VerifyChain walks every block in the chain from index 1 forward,
// recomputing each block's body hash, full hash, and signature against
// the chain's public key. Any mismatch — a tampered Data field, a
// reordered block, or a forged signature — fails verification.
func (m *Manager) VerifyChain(chainID chain.ChainID) error {
	c := chain.Open(m.pathFor(chainID))

	header, err := c.GetHeader()
	if err != nil {
		return fmt.Errorf("verify chain %d: %w", chainID, err)
	}

	prevHash := genesisSeed(header)

	for i := uint64(1); i <= header.Index; i++ {
		block, err := c.GetBlock(i)
		if err != nil {
			return fmt.Errorf("verify chain %d: block %d: %w", chainID, i, err)
		}

		if block.PrevHash != prevHash {
			return fmt.Errorf("verify chain %d: block %d: prev_hash mismatch: %w", chainID, i, ErrVerificationFailed)
		}

		bodyHash := crypto.Hash(block.PrevHash.Bytes(), block.Nonce.Bytes(), block.Data)
		if !crypto.Verify(bodyHash, header.PublicKey, block.Signature) {
			return fmt.Errorf("verify chain %d: block %d: invalid signature: %w", chainID, i, ErrVerificationFailed)
		}

		wantHash := crypto.Hash(block.PrevHash.Bytes(), block.Nonce.Bytes(), block.Data, block.Signature.Bytes())
		if block.Hash != wantHash {
			return fmt.Errorf("verify chain %d: block %d: hash mismatch: %w", chainID, i, ErrVerificationFailed)
		}

		prevHash = block.Hash
	}

	return nil
}
