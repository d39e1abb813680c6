// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"math/big"

	"github.com/jonboulle/clockwork"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/pool/reverts"
	"github.com/driplabs/drip/slot"
)

var (
	slotRewardRate     = drip.BytesToBytes32([]byte("reward-rate"))
	slotPeriodFinish   = drip.BytesToBytes32([]byte("period-finish"))
	slotLastUpdate     = drip.BytesToBytes32([]byte("last-update"))
	slotRewardPerShare = drip.BytesToBytes32([]byte("reward-per-share"))
	slotDuration       = drip.BytesToBytes32([]byte("rewards-duration"))
)

// Service owns the reward-per-share accumulator and the reward-period state
// machine. The accumulator is a monotone measure of cumulative reward per
// unit of stake, scaled by drip.ScaleFactor.
type Service struct {
	clock clockwork.Clock

	rate       *slot.Uint256
	finish     *slot.Uint256
	lastUpdate *slot.Uint256
	stored     *slot.Uint256
	duration   *slot.Uint256
}

func New(sctx *slot.Context, clock clockwork.Clock) *Service {
	return &Service{
		clock:      clock,
		rate:       slot.NewUint256(sctx, slotRewardRate),
		finish:     slot.NewUint256(sctx, slotPeriodFinish),
		lastUpdate: slot.NewUint256(sctx, slotLastUpdate),
		stored:     slot.NewUint256(sctx, slotRewardPerShare),
		duration:   slot.NewUint256(sctx, slotDuration),
	}
}

// Now returns the current time as unix seconds.
func (s *Service) Now() uint64 {
	return uint64(s.clock.Now().Unix())
}

// EffectiveTime returns min(now, periodFinish), the last instant at which
// reward emission still applies. After period expiry the accumulator stops
// advancing.
func (s *Service) EffectiveTime() (uint64, error) {
	finish, err := s.finish.GetUint64()
	if err != nil {
		return 0, err
	}
	if now := s.Now(); now < finish {
		return now, nil
	}
	return finish, nil
}

// RewardPerShare projects what the accumulator would be right now, without
// committing it. With zero total stake the stored value is returned
// unchanged: reward is simply not distributed while nobody is staked.
func (s *Service) RewardPerShare(totalStake *big.Int) (*big.Int, error) {
	stored, err := s.stored.Get()
	if err != nil {
		return nil, err
	}
	if totalStake.Sign() == 0 {
		return stored, nil
	}

	effective, err := s.EffectiveTime()
	if err != nil {
		return nil, err
	}
	lastUpdate, err := s.lastUpdate.GetUint64()
	if err != nil {
		return nil, err
	}
	if effective <= lastUpdate {
		return stored, nil
	}
	rate, err := s.rate.Get()
	if err != nil {
		return nil, err
	}

	x := new(big.Int).SetUint64(effective - lastUpdate)
	x.Mul(x, rate)
	x.Mul(x, drip.ScaleFactor)
	x.Div(x, totalStake)
	return stored.Add(stored, x), nil
}

// Refresh commits the accumulator projection and advances the last-update
// snapshot. It must run as the very first step of every state-mutating pool
// operation, while the pre-mutation total stake is still in effect, so that
// the interval since the previous update is priced correctly. It returns the
// up-to-date accumulator value.
func (s *Service) Refresh(totalStake *big.Int) (*big.Int, error) {
	rps, err := s.RewardPerShare(totalStake)
	if err != nil {
		return nil, err
	}
	if totalStake.Sign() != 0 {
		s.stored.Set(rps)
	}
	effective, err := s.EffectiveTime()
	if err != nil {
		return nil, err
	}
	s.lastUpdate.SetUint64(effective)
	return rps, nil
}

// SetDuration sets the length of the next reward period. The cadence cannot
// change while a period is running.
func (s *Service) SetDuration(duration uint64) error {
	finish, err := s.finish.GetUint64()
	if err != nil {
		return err
	}
	if s.Now() < finish {
		return reverts.ErrPeriodActive
	}
	s.duration.SetUint64(duration)
	return nil
}

// Notify starts a reward period, or tops up the running one. The caller must
// Refresh first. reserve is the reward asset balance held for distribution;
// the new commitment may never exceed it.
//
// When a period is active the unpaid remainder is blended with the new
// amount and re-smoothed over a full duration window starting now.
func (s *Service) Notify(amount, reserve *big.Int) error {
	duration, err := s.duration.Get()
	if err != nil {
		return err
	}
	if duration.Sign() == 0 {
		return reverts.ErrZeroRate
	}

	now := s.Now()
	finish, err := s.finish.GetUint64()
	if err != nil {
		return err
	}

	var rate *big.Int
	if now >= finish {
		rate = new(big.Int).Div(amount, duration)
	} else {
		oldRate, err := s.rate.Get()
		if err != nil {
			return err
		}
		remaining := new(big.Int).SetUint64(finish - now)
		remaining.Mul(remaining, oldRate)
		rate = new(big.Int).Add(amount, remaining)
		rate.Div(rate, duration)
	}
	if rate.Sign() == 0 {
		return reverts.ErrZeroRate
	}

	committed := new(big.Int).Mul(rate, duration)
	if committed.Cmp(reserve) > 0 {
		return reverts.ErrInsufficientReserve
	}

	s.rate.Set(rate)
	s.lastUpdate.SetUint64(now)
	s.finish.SetUint64(now + duration.Uint64())
	return nil
}

//
// Getters - no state change
//

func (s *Service) Rate() (*big.Int, error) {
	return s.rate.Get()
}

func (s *Service) PeriodFinish() (uint64, error) {
	return s.finish.GetUint64()
}

func (s *Service) LastUpdate() (uint64, error) {
	return s.lastUpdate.GetUint64()
}

func (s *Service) Stored() (*big.Int, error) {
	return s.stored.Get()
}

func (s *Service) Duration() (uint64, error) {
	return s.duration.GetUint64()
}
