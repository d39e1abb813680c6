// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/driplabs/drip/asset"
	"github.com/driplabs/drip/authority"
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/log"
	"github.com/driplabs/drip/state"
)

var logger = log.WithContext("pkg", "genesis")

// Config describes the deployment-time state of the ledger.
type Config struct {
	Administrator drip.Address

	// Dev supplies, minted to the administrator on first build. Nil means
	// no minting.
	StakeSupply  *big.Int
	RewardSupply *big.Int
}

// Build initializes the world state on first run: records the administrator
// and mints the configured supplies. It is idempotent; an already-built state
// is left untouched.
func Build(st *state.State, cfg *Config) error {
	auth := authority.New(drip.AuthorityAddress, st)

	admin, err := auth.Administrator()
	if err != nil {
		return err
	}
	if !admin.IsZero() {
		logger.Debug("state already initialized", "administrator", admin)
		return nil
	}

	if err := auth.Init(cfg.Administrator); err != nil {
		return errors.Wrap(err, "init authority")
	}

	if cfg.StakeSupply != nil {
		stakeToken := asset.New("stake", drip.StakeTokenAddress, st)
		if err := stakeToken.Mint(cfg.Administrator, cfg.StakeSupply); err != nil {
			return errors.Wrap(err, "mint stake supply")
		}
	}
	if cfg.RewardSupply != nil {
		rewardToken := asset.New("reward", drip.RewardTokenAddress, st)
		if err := rewardToken.Mint(cfg.Administrator, cfg.RewardSupply); err != nil {
			return errors.Wrap(err, "mint reward supply")
		}
	}

	if err := st.Commit(); err != nil {
		return errors.Wrap(err, "commit genesis state")
	}

	logger.Info("genesis state built", "administrator", cfg.Administrator)
	return nil
}
