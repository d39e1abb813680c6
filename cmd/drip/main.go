// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	"github.com/driplabs/drip/api"
	"github.com/driplabs/drip/asset"
	"github.com/driplabs/drip/authority"
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/genesis"
	"github.com/driplabs/drip/kv"
	"github.com/driplabs/drip/log"
	"github.com/driplabs/drip/lvldb"
	"github.com/driplabs/drip/metrics"
	"github.com/driplabs/drip/pool"
	"github.com/driplabs/drip/state"
)

var (
	version   string
	gitCommit string
	release   = "dev"

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	if gitCommit == "" {
		return fmt.Sprintf("%s-%s", version, release)
	}
	return fmt.Sprintf("%s-%s-%.8s", version, release, gitCommit)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "drip",
		Usage:     "proportional time-weighted reward distribution ledger",
		Copyright: "2026 The Drip developers",
		Flags: []cli.Flag{
			dataDirFlag,
			apiAddrFlag,
			apiCorsFlag,
			adminFlag,
			mintFlag,
			durationFlag,
			verbosityFlag,
			enableMetricsFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	initLogger(ctx.Int(verbosityFlag.Name))
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	admin, err := drip.ParseAddress(ctx.String(adminFlag.Name))
	if err != nil {
		return errors.WithMessage(err, "parse admin address")
	}

	db, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	st := state.New(db)
	cfg := &genesis.Config{Administrator: *admin}
	if mint := ctx.Uint64(mintFlag.Name); mint > 0 {
		supply := new(big.Int).Mul(new(big.Int).SetUint64(mint), drip.ScaleFactor)
		cfg.StakeSupply = supply
		cfg.RewardSupply = new(big.Int).Set(supply)
	}
	if err := genesis.Build(st, cfg); err != nil {
		return errors.WithMessage(err, "build genesis state")
	}

	p := pool.New(
		drip.PoolAddress,
		st,
		authority.New(drip.AuthorityAddress, st),
		asset.New("stake", drip.StakeTokenAddress, st),
		asset.New("reward", drip.RewardTokenAddress, st),
		clockwork.NewRealClock(),
	)
	if err := bootstrapDuration(p, *admin, ctx.Uint64(durationFlag.Name)); err != nil {
		return err
	}

	handler := api.New(p, api.Config{
		AllowedOrigins: ctx.String(apiCorsFlag.Name),
		EnableMetrics:  ctx.Bool(enableMetricsFlag.Name),
	})
	apiURL, srvCloser, err := startAPIServer(handler, ctx.String(apiAddrFlag.Name))
	if err != nil {
		return err
	}
	defer srvCloser()

	logger.Info("api server started", "url", apiURL, "version", fullVersion())

	exitSignal := handleExitSignal()
	<-exitSignal
	logger.Info("exiting")
	return nil
}

// bootstrapDuration seeds the reward cadence on a fresh ledger. A running or
// completed period keeps whatever duration the administrator last set.
func bootstrapDuration(p *pool.Pool, admin drip.Address, duration uint64) error {
	status, err := p.Status()
	if err != nil {
		return err
	}
	if status.Duration != 0 {
		return nil
	}
	return p.SetRewardsDuration(admin, duration)
}

func openDB(ctx *cli.Context) (kv.GetPutCloser, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		logger.Warn("data-dir unset, state will not survive restart")
		return lvldb.NewMem()
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, errors.WithMessage(err, "create data dir")
	}
	db, err := lvldb.New(filepath.Join(dataDir, "state.db"), lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: 512,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "open state database")
	}
	return db, nil
}
