package server_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakush/chaindb/internal/client"
	"github.com/yakush/chaindb/internal/manager"
	"github.com/yakush/chaindb/internal/server"
	"github.com/yakush/chaindb/internal/wire"
	"github.com/yakush/chaindb/pb"
)

const testPort = 28889

func TestServerPingRoundTrip(t *testing.T) {
	mgr := manager.New(t.TempDir(), zerolog.Nop())
	dispatcher := wire.New(mgr, "", zerolog.Nop())
	srv := server.New(testPort, dispatcher, zerolog.Nop())

	require.NoError(t, srv.Start())
	defer srv.Stop()

	c := client.New("127.0.0.1", testPort, 2*time.Second)
	raw, err := c.Send(pb.MarshalPingRequest(nil))
	require.NoError(t, err)

	resp, err := pb.UnmarshalResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, pb.StatusSuccess, resp.Status)
}

func TestServerStopIsIdempotentBeforeStart(t *testing.T) {
	mgr := manager.New(t.TempDir(), zerolog.Nop())
	dispatcher := wire.New(mgr, "", zerolog.Nop())
	srv := server.New(testPort+1, dispatcher, zerolog.Nop())

	assert.NotPanics(t, func() {
		srv.Stop()
		srv.Stop()
	})
}
