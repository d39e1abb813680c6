// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drip

import "math/big"

// Well-known addresses of the ledger's components. Each component owns a
// separate storage namespace in the world state.
var (
	PoolAddress        = BytesToAddress([]byte("drip-pool"))
	StakeTokenAddress  = BytesToAddress([]byte("drip-stake-token"))
	RewardTokenAddress = BytesToAddress([]byte("drip-reward-token"))
	AuthorityAddress   = BytesToAddress([]byte("drip-authority"))
)

// ScaleFactor is the fixed-point scale applied to the reward-per-share
// accumulator. All divisions by it truncate toward zero, which always favors
// the ledger over the claimant.
var ScaleFactor = big.NewInt(1e18)

// Keys of governance params.
var (
	KeyAdministrator = BytesToBytes32([]byte("administrator"))
)
