// Command chaindb-server runs the multi-tenant chain log service: it
// loads configuration, wires the manager and dispatcher, binds the REP
// socket, and serves until SIGINT/SIGTERM — the Go equivalent of
// ChainDB::initialize/run in the original application shell.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yakush/chaindb/internal/config"
	"github.com/yakush/chaindb/internal/crypto"
	"github.com/yakush/chaindb/internal/logging"
	"github.com/yakush/chaindb/internal/manager"
	"github.com/yakush/chaindb/internal/server"
	"github.com/yakush/chaindb/internal/wire"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseServer(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log := logging.New(cfg.LogPath, cfg.Daemonize)
	if cfg.Daemonize {
		signal.Ignore(syscall.SIGHUP)
	}

	if err := crypto.CheckSource(); err != nil {
		log.Error().Err(err).Msg("can't initialize random generator")
		return 1
	}

	if err := os.MkdirAll(cfg.StoragePath, 0o755); err != nil {
		log.Error().Err(err).Msg("can't create storage path")
		return 1
	}

	mgr := manager.New(cfg.StoragePath, log)
	dispatcher := wire.New(mgr, cfg.Password, log)
	srv := server.New(cfg.Port, dispatcher, log)

	log.Info().Str("version", config.Version).Msg("start")

	if err := srv.Start(); err != nil {
		log.Error().Err(err).Msg("can't start server")
		return 1
	}

	waitForShutdown()

	srv.Stop()
	log.Info().Msg("shutdown")
	return 0
}

// waitForShutdown blocks until SIGINT or SIGTERM arrives, matching
// ChainDB::initializeSignalHandler's handling of the same two signals.
func waitForShutdown() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	signal.Stop(stop)
}
