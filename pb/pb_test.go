package pb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakush/chaindb/pb"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := &pb.Header{
		Version:    0,
		Index:      3,
		Data:       []byte(`{"k":"v"}`),
		PrivateKey: make([]byte, 32),
		PublicKey:  make([]byte, 33),
	}
	got, err := pb.UnmarshalHeader(h.Marshal())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestBlockDataRoundTrip(t *testing.T) {
	bd := &pb.BlockData{
		Hash:      make([]byte, 32),
		PrevHash:  make([]byte, 32),
		Nonce:     make([]byte, 8),
		Data:      []byte("payload"),
		Signature: make([]byte, 64),
	}
	got, err := pb.UnmarshalBlockData(bd.Marshal())
	require.NoError(t, err)
	assert.Equal(t, bd, got)
}

func TestRequestRoundTripCreateChain(t *testing.T) {
	auth := &pb.AuthData{PasswordHash: make([]byte, 32)}
	raw := pb.MarshalCreateChainRequest(auth, 7, []byte("hello"))

	req, err := pb.UnmarshalRequest(raw)
	require.NoError(t, err)

	assert.Equal(t, pb.KindCreateChain, req.Kind)
	require.NotNil(t, req.Auth)
	assert.Equal(t, auth.PasswordHash, req.Auth.PasswordHash)
	require.NotNil(t, req.CreateChain)
	assert.Equal(t, uint64(7), req.CreateChain.ChainID)
	assert.Equal(t, []byte("hello"), req.CreateChain.Data)
}

func TestRequestRoundTripPing(t *testing.T) {
	raw := pb.MarshalPingRequest(nil)
	req, err := pb.UnmarshalRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, pb.KindPing, req.Kind)
	assert.Nil(t, req.Auth)
}

func TestRequestUnknownKindDecodesAsNone(t *testing.T) {
	// An envelope with no recognized oneof field (e.g. only auth_data set)
	// decodes successfully with KindNone, leaving dispatch to respond
	// NOT_SUPPORTED rather than failing to parse.
	auth := &pb.AuthData{PasswordHash: make([]byte, 32)}
	raw := pb.MarshalPingRequest(auth)
	// Drop the trailing empty ping_request field (one tag byte and one
	// zero length byte), leaving an envelope with only auth_data.
	req, err := pb.UnmarshalRequest(raw[:len(raw)-2])
	require.NoError(t, err)
	assert.Equal(t, pb.KindNone, req.Kind)
	require.NotNil(t, req.Auth)
}

func TestGetBlockRequestRoundTrip(t *testing.T) {
	raw := pb.MarshalGetBlockRequest(nil, 2, 5)
	req, err := pb.UnmarshalRequest(raw)
	require.NoError(t, err)
	assert.Equal(t, pb.KindGetBlock, req.Kind)
	assert.Equal(t, uint64(2), req.GetBlock.ChainID)
	assert.Equal(t, uint64(5), req.GetBlock.BlockID)
}

func TestResponseStatusRoundTrip(t *testing.T) {
	raw := pb.MarshalStatus(pb.StatusNotAuthorized, "invalid password")
	resp, err := pb.UnmarshalResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, pb.StatusNotAuthorized, resp.Status)
	assert.Equal(t, "invalid password", resp.Message)
}

func TestResponseAddBlockRoundTrip(t *testing.T) {
	blk := &pb.BlockData{
		Hash:      make([]byte, 32),
		PrevHash:  make([]byte, 32),
		Nonce:     make([]byte, 8),
		Data:      []byte("x"),
		Signature: make([]byte, 64),
	}
	raw := pb.MarshalAddBlockResponse(blk)
	resp, err := pb.UnmarshalResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, pb.StatusSuccess, resp.Status)
	require.NotNil(t, resp.Block)
	assert.Equal(t, blk, resp.Block)
}

func TestResponseGetChainInfoRoundTrip(t *testing.T) {
	raw := pb.MarshalGetChainInfoResponse(9, 0, 4)
	resp, err := pb.UnmarshalResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), resp.InfoChainID)
	assert.Equal(t, uint64(0), resp.InfoVersion)
	assert.Equal(t, uint64(4), resp.InfoIndex)
}
