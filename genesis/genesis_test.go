// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driplabs/drip/asset"
	"github.com/driplabs/drip/authority"
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/genesis"
	"github.com/driplabs/drip/lvldb"
	"github.com/driplabs/drip/state"
)

var admin = drip.BytesToAddress([]byte("admin"))

func TestBuild(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	require.NoError(t, genesis.Build(st, &genesis.Config{
		Administrator: admin,
		StakeSupply:   big.NewInt(1000),
		RewardSupply:  big.NewInt(2000),
	}))

	got, err := authority.New(drip.AuthorityAddress, st).Administrator()
	assert.NoError(t, err)
	assert.Equal(t, admin, got)

	stakeBal, _ := asset.New("stake", drip.StakeTokenAddress, st).BalanceOf(admin)
	assert.Equal(t, big.NewInt(1000), stakeBal)
	rewardBal, _ := asset.New("reward", drip.RewardTokenAddress, st).BalanceOf(admin)
	assert.Equal(t, big.NewInt(2000), rewardBal)

	// committed, so a fresh state sees it
	st2 := state.New(db)
	got, err = authority.New(drip.AuthorityAddress, st2).Administrator()
	assert.NoError(t, err)
	assert.Equal(t, admin, got)
}

func TestBuildIdempotent(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	cfg := &genesis.Config{
		Administrator: admin,
		StakeSupply:   big.NewInt(1000),
	}
	require.NoError(t, genesis.Build(st, cfg))
	require.NoError(t, genesis.Build(st, cfg))

	bal, _ := asset.New("stake", drip.StakeTokenAddress, st).BalanceOf(admin)
	assert.Equal(t, big.NewInt(1000), bal, "second build must not mint again")
}
