// Package config binds each binary's CLI flags via pflag, mirroring
// IApplication::parseArgs's flat `--key value` surface without the
// original's hand-rolled HandlerMap.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Version is logged once at server startup, matching SERVICE_VERSION.
const Version = "0.0"

// Server holds chaindb-server's flags, defaulted exactly as
// ChainDB::ChainDB()'s member-initializer list.
type Server struct {
	Daemonize   bool
	LogPath     string
	StoragePath string
	Password    string
	Port        int
}

// ParseServer binds and parses chaindb-server's flags from args (normally
// os.Args[1:]).
func ParseServer(args []string) (*Server, error) {
	fs := pflag.NewFlagSet("chaindb-server", pflag.ContinueOnError)

	cfg := &Server{}
	fs.BoolVar(&cfg.Daemonize, "daemonize", true, "detach console output and log only to the rotating file sink")
	fs.StringVar(&cfg.LogPath, "log-path", "chain_db_service.log", "path to the rotating log file")
	fs.StringVar(&cfg.StoragePath, "storage-path", "", "root directory under which every tenant chain is stored")
	fs.StringVar(&cfg.Password, "password", "", "shared password required on every request; empty disables auth")
	fs.IntVar(&cfg.Port, "port", 8888, "TCP port the request/reply socket binds to")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Server) validate() error {
	if c.StoragePath == "" {
		return fmt.Errorf("config: --storage-path is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: --port %d out of range", c.Port)
	}
	return nil
}

// Client holds chaindb-client's flags, defaulted exactly as
// Application::Application()'s member-initializer list.
type Client struct {
	Addr           string
	Port           int
	TimeoutSeconds int
	Password       string
	Data           string
	ChainID        uint64
	BlockID        uint64

	Ping            bool
	CreateChain     bool
	RemoveChain     bool
	AddBlock        bool
	GetBlock        bool
	GetBlocks       bool
	VerifyChain     bool
	GetChainHeader  bool
	GetChainKeys    bool
	GetChainInfo    bool
}

// ParseClient binds and parses chaindb-client's flags.
func ParseClient(args []string) (*Client, error) {
	fs := pflag.NewFlagSet("chaindb-client", pflag.ContinueOnError)

	cfg := &Client{}
	fs.StringVar(&cfg.Addr, "addr", "127.0.0.1", "server host")
	fs.IntVar(&cfg.Port, "port", 8888, "server port")
	fs.IntVar(&cfg.TimeoutSeconds, "timeout", 1, "per-call timeout, in seconds")
	fs.StringVar(&cfg.Password, "password", "", "shared password, must match the server's --password")
	fs.StringVar(&cfg.Data, "data", "{}", "payload for --create-chain/--add-block")
	fs.Uint64Var(&cfg.ChainID, "chain-id", 1, "target chain id")
	fs.Uint64Var(&cfg.BlockID, "block-id", 1, "target block id, for --get-block")

	fs.BoolVar(&cfg.Ping, "ping", false, "send a Ping request")
	fs.BoolVar(&cfg.CreateChain, "create-chain", false, "send a CreateChain request")
	fs.BoolVar(&cfg.RemoveChain, "remove-chain", false, "send a RemoveChain request")
	fs.BoolVar(&cfg.AddBlock, "add-block", false, "send an AddBlock request")
	fs.BoolVar(&cfg.GetBlock, "get-block", false, "send a GetBlock request")
	fs.BoolVar(&cfg.GetBlocks, "get-blocks", false, "send a GetBlocks request")
	fs.BoolVar(&cfg.VerifyChain, "verify-chain", false, "send a VerifyChain request")
	fs.BoolVar(&cfg.GetChainHeader, "get-header", false, "send a GetChainHeader request")
	fs.BoolVar(&cfg.GetChainKeys, "get-keys", false, "send a GetChainKeys request")
	fs.BoolVar(&cfg.GetChainInfo, "get-info", false, "send a GetChainInfo request")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Client) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: --port %d out of range", c.Port)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: --timeout must be positive")
	}
	return nil
}
