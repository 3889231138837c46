package chain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakush/chaindb/internal/chain"
)

func testHeader() *chain.Header {
	return &chain.Header{
		Version: chain.DBVersion,
		Index:   0,
		Data:    []byte(`{"tenant":"acme"}`),
	}
}

func TestChainCreateThenGetHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.chain")
	c := chain.Open(path)

	require.NoError(t, c.Create(testHeader()))

	got, err := c.GetHeader()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.Index)
	assert.Equal(t, []byte(`{"tenant":"acme"}`), got.Data)
}

func TestChainAddBlockBumpsIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.chain")
	c := chain.Open(path)
	require.NoError(t, c.Create(testHeader()))

	blk := &chain.Block{Data: []byte("payload-1")}
	idx, err := c.AddBlock(blk)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), idx)

	idx2, err := c.AddBlock(&chain.Block{Data: []byte("payload-2")})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), idx2)

	header, err := c.GetHeader()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), header.Index)
}

func TestChainGetBlockBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.chain")
	c := chain.Open(path)
	require.NoError(t, c.Create(testHeader()))
	_, err := c.AddBlock(&chain.Block{Data: []byte("payload")})
	require.NoError(t, err)

	_, err = c.GetBlock(0)
	assert.ErrorIs(t, err, chain.ErrNotFound)

	_, err = c.GetBlock(2)
	assert.ErrorIs(t, err, chain.ErrNotFound)

	blk, err := c.GetBlock(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), blk.Data)
}

func TestChainGetBlocksOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.chain")
	c := chain.Open(path)
	require.NoError(t, c.Create(testHeader()))

	for i := 0; i < 3; i++ {
		_, err := c.AddBlock(&chain.Block{Data: []byte{byte('a' + i)}})
		require.NoError(t, err)
	}

	blocks, err := c.GetBlocks()
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, []byte("a"), blocks[0].Data)
	assert.Equal(t, []byte("b"), blocks[1].Data)
	assert.Equal(t, []byte("c"), blocks[2].Data)
}

func TestChainRemoveIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.chain")
	c := chain.Open(path)
	require.NoError(t, c.Create(testHeader()))
	require.NoError(t, c.Remove())
	require.NoError(t, c.Remove()) // second remove: no-op, not an error
}

func TestChainCreateRejectsDuplicate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.chain")
	c := chain.Open(path)
	require.NoError(t, c.Create(testHeader()))
	assert.Error(t, c.Create(testHeader()))
}
