// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settle

import (
	"math/big"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/slot"
)

var slotRecords = drip.BytesToBytes32([]byte("settlements"))

// Record is the per-account settlement checkpoint. Paid is the accumulator
// value at the account's last touch-point; Owed is reward accrued but not yet
// claimed. Records are created lazily and never deleted.
type Record struct {
	Paid *big.Int
	Owed *big.Int
}

func (r *Record) normalize() {
	if r.Paid == nil {
		r.Paid = new(big.Int)
	}
	if r.Owed == nil {
		r.Owed = new(big.Int)
	}
}

// Service is the settlement layer: it rolls the global accumulator into
// per-account owed amounts, one account at a time.
type Service struct {
	records *slot.Mapping[drip.Address, *Record]
}

func New(sctx *slot.Context) *Service {
	return &Service{
		records: slot.NewMapping[drip.Address, *Record](sctx, slotRecords),
	}
}

// accrued computes stakeBalance*(rewardPerShare-checkpoint)/scale, the reward
// earned since the account's last settlement. Truncation is downward, in the
// ledger's favor.
func accrued(rec *Record, stakeBalance, rewardPerShare *big.Int) *big.Int {
	x := new(big.Int).Sub(rewardPerShare, rec.Paid)
	x.Mul(x, stakeBalance)
	return x.Div(x, drip.ScaleFactor)
}

// Settle moves the account's checkpoint up to rewardPerShare, folding the
// newly accrued reward into its owed amount. stakeBalance must be the
// account's pre-mutation balance. Calling twice with no intervening global
// update adds zero.
func (s *Service) Settle(account drip.Address, stakeBalance, rewardPerShare *big.Int) error {
	rec, err := s.records.Get(account)
	if err != nil {
		return err
	}
	rec.normalize()

	rec.Owed.Add(rec.Owed, accrued(rec, stakeBalance, rewardPerShare))
	rec.Paid.Set(rewardPerShare)
	return s.records.Set(account, rec)
}

// Earned returns what Settle would leave owed, without mutating state.
// rewardPerShare is the caller's projection of the accumulator at the
// current time.
func (s *Service) Earned(account drip.Address, stakeBalance, rewardPerShare *big.Int) (*big.Int, error) {
	rec, err := s.records.Get(account)
	if err != nil {
		return nil, err
	}
	rec.normalize()
	return new(big.Int).Add(rec.Owed, accrued(rec, stakeBalance, rewardPerShare)), nil
}

// Owed returns the account's settled-but-unclaimed reward.
func (s *Service) Owed(account drip.Address) (*big.Int, error) {
	rec, err := s.records.Get(account)
	if err != nil {
		return nil, err
	}
	rec.normalize()
	return rec.Owed, nil
}

// Clear zeroes the account's owed amount and returns what it was. The caller
// must have settled the account first.
func (s *Service) Clear(account drip.Address) (*big.Int, error) {
	rec, err := s.records.Get(account)
	if err != nil {
		return nil, err
	}
	rec.normalize()

	owed := rec.Owed
	rec.Owed = new(big.Int)
	if err := s.records.Set(account, rec); err != nil {
		return nil, err
	}
	return owed, nil
}
