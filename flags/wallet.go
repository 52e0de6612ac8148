package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// WalletFlags identify the player. A private key enables transactions;
// an address alone gives a read-only client.

func WalletFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "Hex private key of the player wallet (prefer HONEY_PRIVATE_KEY in .env)",
		},
		cli.StringFlag{
			Name:  "account",
			Usage: "Player address for read-only use",
		},
		cli.StringFlag{
			Name:  "referrer",
			Usage: "Referrer address passed to initialize",
		},
	}
}
