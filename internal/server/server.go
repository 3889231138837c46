// Package server implements the request/reply loop (C11): a single thread
// owns a REP socket bound to tcp://*:<port>, decodes each request via the
// wire dispatcher, and replies — the Go equivalent of Server::start/
// Server::run in the original, built on zmq4's REP socket instead of
// raw libzmq.
package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-zeromq/zmq4"
	"github.com/rs/zerolog"

	"github.com/yakush/chaindb/internal/wire"
)

// Server owns the bound REP socket and dispatches every request it
// receives to a single wire.Dispatcher, matching spec.md's single-
// threaded, no-fan-out scheduling model (§5): every chain operation runs
// synchronously on the loop goroutine.
type Server struct {
	port       int
	dispatcher *wire.Dispatcher
	log        zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Server bound to no socket yet; call Start to begin
// serving.
func New(port int, dispatcher *wire.Dispatcher, log zerolog.Logger) *Server {
	return &Server{port: port, dispatcher: dispatcher, log: log}
}

// Start binds the REP socket and runs the accept loop in a background
// goroutine. It returns once the socket is successfully bound.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	sock := zmq4.NewRep(ctx)
	endpoint := fmt.Sprintf("tcp://*:%d", s.port)
	if err := sock.Listen(endpoint); err != nil {
		cancel()
		return fmt.Errorf("server: listen %s: %w", endpoint, err)
	}

	s.log.Info().Int("port", s.port).Msg("server listening")

	s.wg.Add(1)
	go s.run(ctx, sock)
	return nil
}

// Stop cancels the accept loop's context and waits for it to exit,
// matching the original's signalHandler → Server::stop()/join() pair.
func (s *Server) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.log.Info().Msg("server stopped")
}

// run is the request/reply loop: receive, dispatch, reply. A receive
// that fails because the context was canceled ends the loop cleanly; any
// other receive error is logged and ends the loop (matching "on receive
// error, log and break"). A send error is logged and the loop continues
// (matching "on send error, log and continue").
func (s *Server) run(ctx context.Context, sock zmq4.Socket) {
	defer s.wg.Done()
	defer sock.Close()

	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.log.Error().Err(err).Msg("recv failed, stopping server loop")
			return
		}

		reply := s.dispatcher.Handle(msg.Bytes())

		if err := sock.Send(zmq4.NewMsg(reply)); err != nil {
			s.log.Error().Err(err).Msg("send failed, continuing")
		}
	}
}
