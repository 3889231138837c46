package kv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakush/chaindb/internal/kv"
)

func TestCreateThenOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain.db")

	s := kv.New(dir)
	require.NoError(t, s.Create())
	require.NoError(t, s.Close())

	s2 := kv.New(dir)
	require.NoError(t, s2.Open())
	require.NoError(t, s2.Close())
}

func TestCreateRejectsExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain.db")

	s := kv.New(dir)
	require.NoError(t, s.Create())
	require.NoError(t, s.Close())

	s2 := kv.New(dir)
	err := s2.Create()
	assert.ErrorIs(t, err, kv.ErrExists)
}

func TestOpenRejectsMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist.db")

	s := kv.New(dir)
	assert.Error(t, s.Open())
}

func TestSetBatchAndGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain.db")

	s := kv.New(dir)
	require.NoError(t, s.Create())
	defer s.Close()

	require.NoError(t, s.SetBatch([]kv.KeyValue{
		{Key: []byte("header"), Value: []byte("h1")},
		{Key: []byte("block_1"), Value: []byte("b1")},
	}))

	v, err := s.Get([]byte("header"))
	require.NoError(t, err)
	assert.Equal(t, []byte("h1"), v)

	v, err = s.Get([]byte("block_1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("b1"), v)
}

func TestGetMissingKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain.db")

	s := kv.New(dir)
	require.NoError(t, s.Create())
	defer s.Close()

	_, err := s.Get([]byte("absent"))
	assert.Error(t, err)
}

func TestDestroyIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "chain.db")

	s := kv.New(dir)
	require.NoError(t, s.Create())
	require.NoError(t, s.Close())

	require.NoError(t, kv.Destroy(dir))
	require.NoError(t, kv.Destroy(dir)) // second call: directory already gone
}
