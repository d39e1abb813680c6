// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/driplabs/drip/asset"
	"github.com/driplabs/drip/authority"
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/lvldb"
	"github.com/driplabs/drip/state"
)

const t0 = 1_000_000

var (
	admin = drip.BytesToAddress([]byte("admin"))
	alice = drip.BytesToAddress([]byte("alice"))
	bob   = drip.BytesToAddress([]byte("bob"))
	carol = drip.BytesToAddress([]byte("carol"))
)

type testPool struct {
	t *testing.T

	*Pool
	clock       *clockwork.FakeClock
	state       *state.State
	stakeToken  *asset.Token
	rewardToken *asset.Token
}

// newTestPool builds a pool over an in-memory store with the administrator
// installed, stake tokens minted to the named accounts and the reward reserve
// minted straight to the pool.
func newTestPool(t *testing.T, stakeSupply int64, rewardReserve int64) *testPool {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	auth := authority.New(drip.AuthorityAddress, st)
	require.NoError(t, auth.Init(admin))

	stakeToken := asset.New("stake", drip.StakeTokenAddress, st)
	for _, account := range []drip.Address{alice, bob, carol} {
		require.NoError(t, stakeToken.Mint(account, big.NewInt(stakeSupply)))
	}
	rewardToken := asset.New("reward", drip.RewardTokenAddress, st)
	require.NoError(t, rewardToken.Mint(drip.PoolAddress, big.NewInt(rewardReserve)))
	require.NoError(t, st.Commit())

	clock := clockwork.NewFakeClockAt(time.Unix(t0, 0))
	return &testPool{
		t:           t,
		Pool:        New(drip.PoolAddress, st, auth, stakeToken, rewardToken, clock),
		clock:       clock,
		state:       st,
		stakeToken:  stakeToken,
		rewardToken: rewardToken,
	}
}

// startPeriod sets the cadence and funds a period, both as the administrator.
func (tp *testPool) startPeriod(duration uint64, amount int64) {
	require.NoError(tp.t, tp.SetRewardsDuration(admin, duration))
	require.NoError(tp.t, tp.NotifyRewardAmount(admin, big.NewInt(amount)))
}

func (tp *testPool) advance(seconds int64) {
	tp.clock.Advance(time.Duration(seconds) * time.Second)
}

func (tp *testPool) mustStake(account drip.Address, amount int64) {
	require.NoError(tp.t, tp.Stake(account, big.NewInt(amount)))
}

func (tp *testPool) mustWithdraw(account drip.Address, amount int64) {
	require.NoError(tp.t, tp.Withdraw(account, big.NewInt(amount)))
}

func (tp *testPool) mustClaim(account drip.Address) *big.Int {
	paid, err := tp.Claim(account)
	require.NoError(tp.t, err)
	return paid
}

func (tp *testPool) earned(account drip.Address) *big.Int {
	earned, err := tp.Earned(account)
	require.NoError(tp.t, err)
	return earned
}

func (tp *testPool) stakedBalance(account drip.Address) *big.Int {
	bal, err := tp.StakedBalanceOf(account)
	require.NoError(tp.t, err)
	return bal
}

func (tp *testPool) totalStaked() *big.Int {
	total, err := tp.TotalStaked()
	require.NoError(tp.t, err)
	return total
}

func (tp *testPool) rewardBalance(holder drip.Address) *big.Int {
	bal, err := tp.rewardToken.BalanceOf(holder)
	require.NoError(tp.t, err)
	return bal
}

func (tp *testPool) stakeBalance(holder drip.Address) *big.Int {
	bal, err := tp.stakeToken.BalanceOf(holder)
	require.NoError(tp.t, err)
	return bal
}
