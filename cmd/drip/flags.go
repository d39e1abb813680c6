// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases, empty for in-memory state",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8668",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	adminFlag = cli.StringFlag{
		Name:  "admin",
		Usage: "address of the administrator account",
	}
	mintFlag = cli.Uint64Flag{
		Name:  "mint",
		Usage: "dev supply of both assets minted to the administrator on first run",
	}
	durationFlag = cli.Uint64Flag{
		Name:  "duration",
		Value: 7 * 24 * 3600,
		Usage: "initial reward period duration in seconds",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection and the /metrics endpoint",
	}
)
