// Command chaindb-client sends a single request to a chaindb-server and
// prints the decoded reply, matching Application::run/processRequest in
// the original CLI peer.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/yakush/chaindb/internal/client"
	"github.com/yakush/chaindb/internal/config"
	"github.com/yakush/chaindb/internal/crypto"
	"github.com/yakush/chaindb/pb"
)

const passwordSalt = "EMPTY_SALT/"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.ParseClient(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	req, err := buildRequest(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	c := client.New(cfg.Addr, cfg.Port, time.Duration(cfg.TimeoutSeconds)*time.Second)
	raw, err := c.Send(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "request failed:", err)
		return 1
	}

	resp, err := pb.UnmarshalResponse(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "can't parse response:", err)
		return 1
	}

	printResponse(resp, cfg)
	if resp.Status != pb.StatusSuccess {
		return 1
	}
	return 0
}

// authData returns nil when no password is configured, matching
// Application::setAuthData's no-op on an empty password (the request is
// sent without auth_data at all, rather than with an empty hash).
func authData(password string) *pb.AuthData {
	if password == "" {
		return nil
	}
	hash := crypto.Hash([]byte(passwordSalt), []byte(password))
	return &pb.AuthData{PasswordHash: hash.Bytes()}
}

// buildRequest mirrors Application::run's if/else-if chain selecting
// exactly one operation from the boolean flags.
func buildRequest(cfg *config.Client) ([]byte, error) {
	auth := authData(cfg.Password)

	switch {
	case cfg.Ping:
		return pb.MarshalPingRequest(auth), nil
	case cfg.CreateChain:
		return pb.MarshalCreateChainRequest(auth, cfg.ChainID, []byte(cfg.Data)), nil
	case cfg.RemoveChain:
		return pb.MarshalRemoveChainRequest(auth, cfg.ChainID), nil
	case cfg.AddBlock:
		return pb.MarshalAddBlockRequest(auth, cfg.ChainID, []byte(cfg.Data)), nil
	case cfg.GetBlock:
		return pb.MarshalGetBlockRequest(auth, cfg.ChainID, cfg.BlockID), nil
	case cfg.GetBlocks:
		return pb.MarshalGetBlocksRequest(auth, cfg.ChainID), nil
	case cfg.VerifyChain:
		return pb.MarshalVerifyChainRequest(auth, cfg.ChainID), nil
	case cfg.GetChainHeader:
		return pb.MarshalGetChainHeaderRequest(auth, cfg.ChainID), nil
	case cfg.GetChainKeys:
		return pb.MarshalGetChainKeysRequest(auth, cfg.ChainID), nil
	case cfg.GetChainInfo:
		return pb.MarshalGetChainInfoRequest(auth, cfg.ChainID), nil
	default:
		return nil, fmt.Errorf("no operation flag given (one of --ping, --create-chain, ... is required)")
	}
}

func printResponse(resp *pb.Response, cfg *config.Client) {
	fmt.Printf("status: %d %q\n", resp.Status, resp.Message)
	switch {
	case resp.Block != nil:
		fmt.Printf("block: hash=%x prev_hash=%x data=%q\n", resp.Block.Hash, resp.Block.PrevHash, resp.Block.Data)
	case resp.Blocks != nil:
		for i, blk := range resp.Blocks {
			fmt.Printf("block[%d]: hash=%x data=%q\n", i+1, blk.Hash, blk.Data)
		}
	case resp.Header != nil:
		fmt.Printf("header: version=%d index=%d data=%q\n", resp.Header.Version, resp.Header.Index, resp.Header.Data)
	case cfg.GetChainKeys && (resp.PrivateKey != nil || resp.PublicKey != nil):
		fmt.Printf("keys: private_key=%x public_key=%x\n", resp.PrivateKey, resp.PublicKey)
	case cfg.GetChainInfo:
		fmt.Printf("info: chain_id=%d version=%d index=%d\n", resp.InfoChainID, resp.InfoVersion, resp.InfoIndex)
	}
}
