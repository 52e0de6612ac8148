package flags

import (
	"time"

	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands:
// configuration source, logging, error reporting and metrics.

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML configuration file",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Client profile applied before the config file (default|local|sim|monitor)",
		},
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Enable colored log output",
		},
		cli.StringFlag{
			Name:   "sentry.dsn",
			Usage:  "Sentry DSN receiving error level log entries",
			EnvVar: "HONEY_SENTRY_DSN",
		},
		cli.BoolFlag{
			Name:  "metrics",
			Usage: "Serve Prometheus metrics and /stats over HTTP",
		},
		cli.StringFlag{
			Name:  "metrics.addr",
			Usage: "Listen address of the metrics and stats server",
			Value: "127.0.0.1",
		},
		cli.IntFlag{
			Name:  "metrics.port",
			Usage: "Listen port of the metrics and stats server",
			Value: 6060,
		},
		cli.DurationFlag{
			Name:  "rpc.timeout",
			Usage: "Timeout of a single JSON-RPC call",
			Value: 30 * time.Second,
		},
	}
}
