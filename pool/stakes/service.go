// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/pool/reverts"
	"github.com/driplabs/drip/slot"
)

var (
	slotTotalStaked = drip.BytesToBytes32([]byte("total-staked"))
	slotBalances    = drip.BytesToBytes32([]byte("stake-balances"))
)

// Service is the staking ledger: per-account stake balances and the total.
// The total always equals the exact sum of all balances; both are mutated
// together, never separately.
type Service struct {
	total    *slot.Uint256
	balances *slot.Mapping[drip.Address, *big.Int]
}

func New(sctx *slot.Context) *Service {
	return &Service{
		total:    slot.NewUint256(sctx, slotTotalStaked),
		balances: slot.NewMapping[drip.Address, *big.Int](sctx, slotBalances),
	}
}

// TotalStaked returns the sum of all stake balances.
func (s *Service) TotalStaked() (*big.Int, error) {
	return s.total.Get()
}

// BalanceOf returns the stake balance of the account.
func (s *Service) BalanceOf(account drip.Address) (*big.Int, error) {
	return s.balances.Get(account)
}

// Add credits stake to the account. A non-positive amount is rejected.
func (s *Service) Add(account drip.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	bal, err := s.balances.Get(account)
	if err != nil {
		return err
	}
	if err := s.balances.Set(account, bal.Add(bal, amount)); err != nil {
		return err
	}
	return s.total.Add(amount)
}

// Sub debits stake from the account. A non-positive amount is rejected, as is
// a debit exceeding the account's balance.
func (s *Service) Sub(account drip.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	bal, err := s.balances.Get(account)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	if err := s.balances.Set(account, bal.Sub(bal, amount)); err != nil {
		return err
	}
	return s.total.Sub(amount)
}
