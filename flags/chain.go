package flags

import (
	"time"

	"gopkg.in/urfave/cli.v1"
)

// ChainFlags select the network, the endpoint and the contracts, and tune
// the refresh loop.

func ChainFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network rules (abstract-testnet|local|sim)",
			Value: "abstract-testnet",
		},
		cli.StringFlag{
			Name:  "rpc",
			Usage: "JSON-RPC endpoint (http, ws or ipc); ws enables new-head subscriptions",
		},
		cli.StringFlag{
			Name:  "contract",
			Usage: "HoneyGame contract address (defaults to the network's)",
		},
		cli.StringFlag{
			Name:  "token",
			Usage: "HONEY token address (read from the contract when empty)",
		},
		cli.Uint64Flag{
			Name:  "chainid",
			Usage: "Chain id used for signing (asked from the node when 0)",
		},
		cli.DurationFlag{
			Name:  "refresh",
			Usage: "Snapshot refresh interval",
			Value: 3 * time.Second,
		},
		cli.DurationFlag{
			Name:  "index.delay",
			Usage: "Pause between a confirmed action and its refresh",
			Value: time.Second,
		},
		cli.BoolFlag{
			Name:  "sim",
			Usage: "Run against an in-memory contract instead of an RPC endpoint",
		},
		cli.StringFlag{
			Name:  "sim.eth",
			Usage: "Starting ETH of the simulated wallet",
			Value: "1",
		},
		cli.StringFlag{
			Name:  "sim.honey",
			Usage: "Starting HONEY of the simulated wallet",
			Value: "500",
		},
		cli.BoolFlag{
			Name:  "skip-catalog-check",
			Usage: "Do not compare the built-in catalog with the contract at startup",
		},
	}
}

// InitFlags are the flags of the init command.
func InitFlags() []cli.Flag {
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "no-free-bee",
			Usage: "Initialize without claiming the free starter bee",
		},
	}
}

// BuyFlags are the flags of the buy command.
func BuyFlags() []cli.Flag {
	return []cli.Flag{
		cli.IntFlag{
			Name:  "bee",
			Usage: "Bee type id (see the catalog command)",
			Value: -1,
		},
		cli.UintFlag{
			Name:  "qty",
			Usage: "Number of bees to buy",
			Value: 1,
		},
	}
}
