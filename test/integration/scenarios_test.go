// Package integration exercises spec.md's S1-S8 end-to-end scenarios
// against a real wire.Dispatcher backed by an on-disk manager.Manager,
// the same path chaindb-server wires together at startup.
package integration_test

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

const passwordSalt = "EMPTY_SALT/"

func authFor(password string) *pb.AuthData {
	if password == "" {
		return nil
	}
	h := crypto.Hash([]byte(passwordSalt), []byte(password))
	return &pb.AuthData{PasswordHash: h.Bytes()}
}

func statusOf(t *testing.T, raw []byte) uint32 {
	t.Helper()
	resp, err := pb.UnmarshalResponse(raw)
	require.NoError(t, err)
	return resp.Status
}

// S1: Ping without auth when the server has no password configured.
func TestS1_PingNoAuthNoPassword(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "", zerolog.Nop())
	assert.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalPingRequest(nil))))
}

// S2: Ping with the correct password hash when the server requires one.
func TestS2_PingCorrectPassword(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "password", zerolog.Nop())
	req := pb.MarshalPingRequest(authFor("password"))
	assert.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(req)))
}

// S3: Ping with the wrong password is rejected.
func TestS3_PingWrongPassword(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "password", zerolog.Nop())
	req := pb.MarshalPingRequest(authFor("not-the-password"))
	assert.Equal(t, pb.StatusNotAuthorized, statusOf(t, d.Handle(req)))
}

// S4: Creating the same chain twice: first SUCCESS, second ERROR.
func TestS4_CreateChainTwice(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "", zerolog.Nop())

	first := statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, 1, []byte("data"))))
	assert.Equal(t, pb.StatusSuccess, first)

	second := statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, 1, []byte("data"))))
	assert.Equal(t, pb.StatusError, second)
}

// S5: create_chain then 8 add_block calls, get_blocks returns 8 blocks.
func TestS5_CreateThenEightBlocksThenGetBlocks(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "", zerolog.Nop())

	require.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, 1, []byte("data")))))

	for i := 0; i < 8; i++ {
		status := statusOf(t, d.Handle(pb.MarshalAddBlockRequest(nil, 1, []byte("data"))))
		require.Equal(t, pb.StatusSuccess, status)
	}

	resp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetBlocksRequest(nil, 1)))
	require.NoError(t, err)
	assert.Equal(t, pb.StatusSuccess, resp.Status)
	assert.Len(t, resp.Blocks, 8)
}

// S6: verify_chain on the populated chain succeeds; on an absent chain
// it fails.
func TestS6_VerifyChainSuccessAndFailure(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "", zerolog.Nop())

	require.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, 1, []byte("data")))))
	for i := 0; i < 8; i++ {
		require.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalAddBlockRequest(nil, 1, []byte("data")))))
	}

	assert.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalVerifyChainRequest(nil, 1))))
	assert.Equal(t, pb.StatusError, statusOf(t, d.Handle(pb.MarshalVerifyChainRequest(nil, 2))))
}

// S7: get_chain_info after one append reports chain_id/version/index.
func TestS7_GetChainInfoAfterOneAppend(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "", zerolog.Nop())

	require.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalCreateChainRequest(nil, 1, []byte("data")))))
	require.Equal(t, pb.StatusSuccess, statusOf(t, d.Handle(pb.MarshalAddBlockRequest(nil, 1, []byte("data")))))

	resp, err := pb.UnmarshalResponse(d.Handle(pb.MarshalGetChainInfoRequest(nil, 1)))
	require.NoError(t, err)
	assert.Equal(t, pb.StatusSuccess, resp.Status)
	assert.Equal(t, uint64(1), resp.InfoChainID)
	assert.Equal(t, uint64(0), resp.InfoVersion)
	assert.Equal(t, uint64(1), resp.InfoIndex)
}

// S8: an envelope with no recognized request body decodes as KindNone
// and is reported NOT_SUPPORTED.
func TestS8_UnknownRequestIsNotSupported(t *testing.T) {
	d := wire.New(manager.New(t.TempDir(), zerolog.Nop()), "", zerolog.Nop())
	assert.Equal(t, pb.StatusNotSupported, statusOf(t, d.Handle([]byte{})))
}
