// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/lvldb"
	"github.com/driplabs/drip/pool/accrual"
	"github.com/driplabs/drip/pool/reverts"
	"github.com/driplabs/drip/slot"
	"github.com/driplabs/drip/state"
)

const t0 = 1_000_000

func newTestService(t *testing.T) (*accrual.Service, *clockwork.FakeClock) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	clock := clockwork.NewFakeClockAt(time.Unix(t0, 0))
	return accrual.New(slot.NewContext(drip.PoolAddress, st), clock), clock
}

// scaled converts a whole per-share amount into accumulator units.
func scaled(v int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(v), drip.ScaleFactor)
}

func TestNotifyFresh(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))

	require.NoError(t, svc.Notify(big.NewInt(2000), big.NewInt(2000)))

	rate, _ := svc.Rate()
	assert.Equal(t, big.NewInt(2), rate, "fresh rate is amount/duration")
	finish, _ := svc.PeriodFinish()
	assert.Equal(t, uint64(t0+1000), finish)
	lastUpdate, _ := svc.LastUpdate()
	assert.Equal(t, uint64(t0), lastUpdate)
}

func TestNotifyTopUp(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(3000)))

	clock.Advance(500 * time.Second)

	// 500 unpaid at rate 1 blends with the 1500 top-up over a full window
	require.NoError(t, svc.Notify(big.NewInt(1500), big.NewInt(3000)))

	rate, _ := svc.Rate()
	assert.Equal(t, big.NewInt(2), rate)
	finish, _ := svc.PeriodFinish()
	assert.Equal(t, uint64(t0+500+1000), finish, "top-up restarts a full window")
}

func TestNotifyRejections(t *testing.T) {
	svc, _ := newTestService(t)

	// duration never set
	assert.ErrorIs(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)), reverts.ErrZeroRate)

	require.NoError(t, svc.SetDuration(1000))

	// amount smaller than duration truncates to a zero rate
	assert.ErrorIs(t, svc.Notify(big.NewInt(999), big.NewInt(999)), reverts.ErrZeroRate)

	// commitment exceeding the reserve
	assert.ErrorIs(t, svc.Notify(big.NewInt(2000), big.NewInt(1999)), reverts.ErrInsufficientReserve)

	// a failed notify leaves the period untouched
	rate, _ := svc.Rate()
	assert.Equal(t, big.NewInt(0), rate)
	finish, _ := svc.PeriodFinish()
	assert.Equal(t, uint64(0), finish)
}

func TestSetDuration(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)))

	assert.ErrorIs(t, svc.SetDuration(500), reverts.ErrPeriodActive)

	clock.Advance(999 * time.Second)
	assert.ErrorIs(t, svc.SetDuration(500), reverts.ErrPeriodActive)

	// at the exact finish instant the period is over
	clock.Advance(1 * time.Second)
	require.NoError(t, svc.SetDuration(500))
	duration, _ := svc.Duration()
	assert.Equal(t, uint64(500), duration)
}

func TestRewardPerShare(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)))

	// nothing staked: the accumulator holds still
	rps, err := svc.RewardPerShare(big.NewInt(0))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), rps)

	clock.Advance(100 * time.Second)

	// 100s at rate 1 over 50 staked units
	rps, err = svc.RewardPerShare(big.NewInt(50))
	assert.NoError(t, err)
	assert.Equal(t, scaled(2), rps)

	// projection only; the stored value is unchanged
	stored, _ := svc.Stored()
	assert.Equal(t, big.NewInt(0), stored)
}

func TestRewardPerShareStopsAtFinish(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)))

	clock.Advance(5000 * time.Second)

	// only the 1000s inside the period count
	rps, err := svc.RewardPerShare(big.NewInt(100))
	assert.NoError(t, err)
	assert.Equal(t, scaled(10), rps)
}

func TestRefresh(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)))

	clock.Advance(100 * time.Second)

	rps, err := svc.Refresh(big.NewInt(100))
	assert.NoError(t, err)
	assert.Equal(t, scaled(1), rps)

	stored, _ := svc.Stored()
	assert.Equal(t, scaled(1), stored)
	lastUpdate, _ := svc.LastUpdate()
	assert.Equal(t, uint64(t0+100), lastUpdate)

	// refreshing again with no elapsed time is a fixed point
	rps, err = svc.Refresh(big.NewInt(100))
	assert.NoError(t, err)
	assert.Equal(t, scaled(1), rps)
}

func TestRefreshWithZeroStake(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)))

	// an empty interval advances the snapshot without minting per-share value
	clock.Advance(300 * time.Second)
	rps, err := svc.Refresh(big.NewInt(0))
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), rps)
	lastUpdate, _ := svc.LastUpdate()
	assert.Equal(t, uint64(t0+300), lastUpdate)

	// the skipped reward is not retroactively granted to later stakers
	clock.Advance(100 * time.Second)
	rps, err = svc.Refresh(big.NewInt(100))
	assert.NoError(t, err)
	assert.Equal(t, scaled(1), rps)
}

func TestAccumulatorMonotone(t *testing.T) {
	svc, clock := newTestService(t)
	require.NoError(t, svc.SetDuration(1000))
	require.NoError(t, svc.Notify(big.NewInt(1000), big.NewInt(1000)))

	prev := big.NewInt(0)
	for i := 0; i < 20; i++ {
		clock.Advance(100 * time.Second)
		rps, err := svc.Refresh(big.NewInt(7))
		require.NoError(t, err)
		assert.True(t, rps.Cmp(prev) >= 0, "accumulator must never decrease")
		prev = rps
	}
}
