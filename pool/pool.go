// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"math/big"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/driplabs/drip/asset"
	"github.com/driplabs/drip/authority"
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/log"
	"github.com/driplabs/drip/metrics"
	"github.com/driplabs/drip/pool/accrual"
	"github.com/driplabs/drip/pool/reverts"
	"github.com/driplabs/drip/pool/settle"
	"github.com/driplabs/drip/pool/stakes"
	"github.com/driplabs/drip/slot"
	"github.com/driplabs/drip/state"
)

var logger = log.WithContext("pkg", "pool")

var (
	metricOps         = metrics.LazyLoadCounterVec("pool_ops_total", []string{"op", "outcome"})
	metricTotalStaked = metrics.LazyLoadGauge("pool_total_staked")
	metricRewardRate  = metrics.LazyLoadGauge("pool_reward_rate")
)

func countOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "reverted"
	}
	metricOps().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome})
}

// Pool is the reward-distribution ledger: participants stake one asset and
// accrue a second one in proportion to their share of total stake and elapsed
// time.
//
// Every public mutating operation follows the same discipline: refresh the
// global accumulator, settle the calling account at its pre-mutation balance,
// then apply the operation's own effect. Calls are serialized by a single
// mutex and run all-or-nothing against a state checkpoint, so a failed call
// leaves no trace.
type Pool struct {
	mu sync.Mutex

	addr  drip.Address
	state *state.State

	auth        *authority.Authority
	stakeToken  *asset.Token
	rewardToken *asset.Token

	accrual *accrual.Service
	stakes  *stakes.Service
	settle  *settle.Service
}

// New create a pool instance bound to the given state.
func New(
	addr drip.Address,
	st *state.State,
	auth *authority.Authority,
	stakeToken *asset.Token,
	rewardToken *asset.Token,
	clock clockwork.Clock,
) *Pool {
	sctx := slot.NewContext(addr, st)
	return &Pool{
		addr:        addr,
		state:       st,
		auth:        auth,
		stakeToken:  stakeToken,
		rewardToken: rewardToken,
		accrual:     accrual.New(sctx, clock),
		stakes:      stakes.New(sctx),
		settle:      settle.New(sctx),
	}
}

// Address returns the pool's own account address; it holds the staked asset
// and the reward reserve.
func (p *Pool) Address() drip.Address {
	return p.addr
}

// run executes fn atomically: serialized with other calls, reverted entirely
// on error, committed to the backing store on success.
func (p *Pool) run(op string, fn func() error) (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() { countOp(op, err) }()

	cp := p.state.NewCheckpoint()
	if err = fn(); err != nil {
		p.state.RevertTo(cp)
		return err
	}
	if err = p.state.Commit(); err != nil {
		return err
	}

	p.updateGauges()
	return nil
}

func (p *Pool) updateGauges() {
	if total, err := p.stakes.TotalStaked(); err == nil && total.IsInt64() {
		metricTotalStaked().Set(total.Int64())
	}
	if rate, err := p.accrual.Rate(); err == nil && rate.IsInt64() {
		metricRewardRate().Set(rate.Int64())
	}
}

// settleAccount brings the global accumulator, then the account's checkpoint,
// up to date. It must run before any balance mutation, with the account's
// pre-mutation balance still in effect.
func (p *Pool) settleAccount(account drip.Address) error {
	total, err := p.stakes.TotalStaked()
	if err != nil {
		return err
	}
	rps, err := p.accrual.Refresh(total)
	if err != nil {
		return err
	}
	bal, err := p.stakes.BalanceOf(account)
	if err != nil {
		return err
	}
	return p.settle.Settle(account, bal, rps)
}

//
// Setters - state change
//

// Stake deposits amount of the stake asset from the caller and credits its
// stake balance.
func (p *Pool) Stake(caller drip.Address, amount *big.Int) error {
	logger.Debug("staking", "caller", caller, "amount", amount)

	err := p.run("stake", func() error {
		if amount == nil || amount.Sign() <= 0 {
			return reverts.ErrInvalidAmount
		}
		if err := p.settleAccount(caller); err != nil {
			return err
		}
		// deposit must succeed before balances update
		if err := p.stakeToken.Transfer(caller, p.addr, amount); err != nil {
			return err
		}
		return p.stakes.Add(caller, amount)
	})
	if err != nil {
		logger.Info("stake failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("staked", "caller", caller, "amount", amount)
	return nil
}

// Withdraw debits the caller's stake balance and returns amount of the stake
// asset to it.
func (p *Pool) Withdraw(caller drip.Address, amount *big.Int) error {
	logger.Debug("withdrawing", "caller", caller, "amount", amount)

	err := p.run("withdraw", func() error {
		if amount == nil || amount.Sign() <= 0 {
			return reverts.ErrInvalidAmount
		}
		if err := p.settleAccount(caller); err != nil {
			return err
		}
		// all bookkeeping precedes the outbound transfer
		if err := p.stakes.Sub(caller, amount); err != nil {
			return err
		}
		return p.stakeToken.Transfer(p.addr, caller, amount)
	})
	if err != nil {
		logger.Info("withdraw failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("withdrawn", "caller", caller, "amount", amount)
	return nil
}

// Claim pays out the caller's accrued reward. Claiming with nothing owed is a
// no-op, not an error. It returns the amount paid.
func (p *Pool) Claim(caller drip.Address) (*big.Int, error) {
	logger.Debug("claiming", "caller", caller)

	var owed *big.Int
	err := p.run("claim", func() error {
		if err := p.settleAccount(caller); err != nil {
			return err
		}
		var err error
		if owed, err = p.settle.Clear(caller); err != nil {
			return err
		}
		if owed.Sign() == 0 {
			return nil
		}
		// owed is already zeroed; a reentrant call cannot double-claim
		return p.rewardToken.Transfer(p.addr, caller, owed)
	})
	if err != nil {
		logger.Info("claim failed", "caller", caller, "error", err)
		return nil, err
	}

	logger.Info("claimed", "caller", caller, "reward", owed)
	return owed, nil
}

// SetRewardsDuration sets the length of the next reward period. Administrator
// only; rejected while a period is running.
func (p *Pool) SetRewardsDuration(caller drip.Address, duration uint64) error {
	logger.Debug("setting rewards duration", "caller", caller, "duration", duration)

	err := p.run("set_duration", func() error {
		if err := p.checkAdministrator(caller); err != nil {
			return err
		}
		return p.accrual.SetDuration(duration)
	})
	if err != nil {
		logger.Info("set rewards duration failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("rewards duration set", "duration", duration)
	return nil
}

// NotifyRewardAmount starts a reward period, or tops up the running one, with
// amount of the reward asset. Administrator only. The reward asset must
// already sit in the pool's reserve.
func (p *Pool) NotifyRewardAmount(caller drip.Address, amount *big.Int) error {
	logger.Debug("notifying reward amount", "caller", caller, "amount", amount)

	err := p.run("notify", func() error {
		if err := p.checkAdministrator(caller); err != nil {
			return err
		}
		if amount == nil || amount.Sign() < 0 {
			return reverts.ErrInvalidAmount
		}
		total, err := p.stakes.TotalStaked()
		if err != nil {
			return err
		}
		if _, err := p.accrual.Refresh(total); err != nil {
			return err
		}
		reserve, err := p.rewardToken.BalanceOf(p.addr)
		if err != nil {
			return err
		}
		return p.accrual.Notify(amount, reserve)
	})
	if err != nil {
		logger.Info("notify reward amount failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("reward period notified", "amount", amount)
	return nil
}

func (p *Pool) checkAdministrator(caller drip.Address) error {
	ok, err := p.auth.IsAdministrator(caller)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotAuthorized
	}
	return nil
}

//
// Getters - no state change
//

// Earned returns the account's pending reward at the current time, without
// mutating any state.
func (p *Pool) Earned(account drip.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total, err := p.stakes.TotalStaked()
	if err != nil {
		return nil, err
	}
	rps, err := p.accrual.RewardPerShare(total)
	if err != nil {
		return nil, err
	}
	bal, err := p.stakes.BalanceOf(account)
	if err != nil {
		return nil, err
	}
	return p.settle.Earned(account, bal, rps)
}

// TotalStaked returns the sum of all stake balances.
func (p *Pool) TotalStaked() (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stakes.TotalStaked()
}

// StakedBalanceOf returns the stake balance of the account.
func (p *Pool) StakedBalanceOf(account drip.Address) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stakes.BalanceOf(account)
}

// Status is a read-only snapshot of the period state machine.
type Status struct {
	TotalStaked    *big.Int
	RewardRate     *big.Int
	RewardPerShare *big.Int
	PeriodFinish   uint64
	LastUpdate     uint64
	Duration       uint64
}

// Status returns a consistent snapshot of the pool's global state.
func (p *Pool) Status() (*Status, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total, err := p.stakes.TotalStaked()
	if err != nil {
		return nil, err
	}
	rate, err := p.accrual.Rate()
	if err != nil {
		return nil, err
	}
	rps, err := p.accrual.RewardPerShare(total)
	if err != nil {
		return nil, err
	}
	finish, err := p.accrual.PeriodFinish()
	if err != nil {
		return nil, err
	}
	lastUpdate, err := p.accrual.LastUpdate()
	if err != nil {
		return nil, err
	}
	duration, err := p.accrual.Duration()
	if err != nil {
		return nil, err
	}
	return &Status{
		TotalStaked:    total,
		RewardRate:     rate,
		RewardPerShare: rps,
		PeriodFinish:   finish,
		LastUpdate:     lastUpdate,
		Duration:       duration,
	}, nil
}
