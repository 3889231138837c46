package wire_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakush/chaindb/internal/crypto"
	"github.com/yakush/chaindb/internal/manager"
	"github.com/yakush/chaindb/internal/wire"
	"github.com/yakush/chaindb/pb"
)

func newTestDispatcher(t *testing.T, password string) *wire.Dispatcher {
	t.Helper()
	mgr := manager.New(t.TempDir(), zerolog.Nop())
	return wire.New(mgr, password, zerolog.Nop())
}

func statusOf(t *testing.T, raw []byte) (uint32, string) {
	t.Helper()
	resp, err := pb.UnmarshalResponse(raw)
	require.NoError(t, err)
	return resp.Status, resp.Message
}

func TestHandlePing(t *testing.T) {
	d := newTestDispatcher(t, "")
	status, _ := statusOf(t, d.Handle(pb.MarshalPingRequest(nil)))
	assert.Equal(t, pb.StatusSuccess, status)
}

func TestHandleUnparseableRequest(t *testing.T) {
	d := newTestDispatcher(t, "")
	status, _ := statusOf(t, d.Handle([]byte{0xff, 0xff, 0xff}))
	assert.Equal(t, pb.StatusDataError, status)
}

func TestHandleRequiresAuthWhenPasswordSet(t *testing.T) {
	d := newTestDispatcher(t, "hunter2")
	status, _ := statusOf(t, d.Handle(pb.MarshalPingRequest(nil)))
	assert.Equal(t, pb.StatusNotAuthorized, status)
}

func TestHandleRejectsWrongPassword(t *testing.T) {
	d := newTestDispatcher(t, "hunter2")
	wrongHash := crypto.Hash([]byte("EMPTY_SALT/"), []byte("wrong"))
	auth := &pb.AuthData{PasswordHash: wrongHash.Bytes()}
	status, _ := statusOf(t, d.Handle(pb.MarshalPingRequest(auth)))
	assert.Equal(t, pb.StatusNotAuthorized, status)
}

func TestHandleAcceptsCorrectPassword(t *testing.T) {
	d := newTestDispatcher(t, "hunter2")
	rightHash := crypto.Hash([]byte("EMPTY_SALT/"), []byte("hunter2"))
	auth := &pb.AuthData{PasswordHash: rightHash.Bytes()}
	status, _ := statusOf(t, d.Handle(pb.MarshalPingRequest(auth)))
	assert.Equal(t, pb.StatusSuccess, status)
}

func TestHandleUnsupportedKind(t *testing.T) {
	d := newTestDispatcher(t, "")
	// An envelope with no recognized body field decodes as KindNone.
	status, _ := statusOf(t, d.Handle([]byte{}))
	assert.Equal(t, pb.StatusNotSupported, status)
}

func TestHandleFullLifecycle(t *testing.T) {
	d := newTestDispatcher(t, "")
	const chainID = 42

	status, _ := statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, chainID, []byte("meta"))))
	require.Equal(t, pb.StatusSuccess, status)

	addResp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalAddBlockRequest(nil, chainID, []byte("entry-1"))))
	require.NoError(t, err)
	require.Equal(t, pb.StatusSuccess, addResp.Status)
	require.NotNil(t, addResp.Block)
	assert.Equal(t, []byte("entry-1"), addResp.Block.Data)

	getResp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetBlockRequest(nil, chainID, 1)))
	require.NoError(t, err)
	assert.Equal(t, []byte("entry-1"), getResp.Block.Data)

	blocksResp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetBlocksRequest(nil, chainID)))
	require.NoError(t, err)
	require.Len(t, blocksResp.Blocks, 1)

	verifyStatus, _ := statusOf(t, d.Handle(pb.MarshalVerifyChainRequest(nil, chainID)))
	assert.Equal(t, pb.StatusSuccess, verifyStatus)

	headerResp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetChainHeaderRequest(nil, chainID)))
	require.NoError(t, err)
	require.NotNil(t, headerResp.Header)
	assert.Equal(t, []byte("meta"), headerResp.Header.Data)

	keysResp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetChainKeysRequest(nil, chainID)))
	require.NoError(t, err)
	assert.Len(t, keysResp.PrivateKey, 32)
	assert.Len(t, keysResp.PublicKey, 33)

	infoResp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetChainInfoRequest(nil, chainID)))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), infoResp.InfoIndex)

	removeStatus, _ := statusOf(t, d.Handle(pb.MarshalRemoveChainRequest(nil, chainID)))
	assert.Equal(t, pb.StatusSuccess, removeStatus)
}

func TestHandleCreateChainRejectsOversizedData(t *testing.T) {
	d := newTestDispatcher(t, "")
	oversized := make([]byte, 8193)
	status, _ := statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, 1, oversized)))
	assert.Equal(t, pb.StatusDataError, status)
}

func TestHandleGetBlockUnknownChainIsError(t *testing.T) {
	d := newTestDispatcher(t, "")
	status, _ := statusOf(t, d.Handle(pb.MarshalGetBlockRequest(nil, 999, 1)))
	assert.Equal(t, pb.StatusError, status)
}
