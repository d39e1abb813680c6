// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package asset

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/slot"
	"github.com/driplabs/drip/state"
)

var (
	slotBalances    = drip.BytesToBytes32([]byte("balances"))
	slotTotalSupply = drip.BytesToBytes32([]byte("total-supply"))
)

// ErrInsufficientFunds is returned when a transfer exceeds the sender's balance.
var ErrInsufficientFunds = errors.New("insufficient token balance")

// Token is a fungible asset ledger kept in its own storage namespace of the
// world state. The reward pool consumes two instances of it: one for the
// stake asset and one for the reward asset.
type Token struct {
	name     string
	balances *slot.Mapping[drip.Address, *big.Int]
	supply   *slot.Uint256
}

// New create a token ledger bound to the given address.
func New(name string, addr drip.Address, state *state.State) *Token {
	sctx := slot.NewContext(addr, state)
	return &Token{
		name:     name,
		balances: slot.NewMapping[drip.Address, *big.Int](sctx, slotBalances),
		supply:   slot.NewUint256(sctx, slotTotalSupply),
	}
}

// Name returns the token's display name.
func (t *Token) Name() string {
	return t.name
}

// BalanceOf returns the token balance of the holder.
func (t *Token) BalanceOf(holder drip.Address) (*big.Int, error) {
	return t.balances.Get(holder)
}

// TotalSupply returns total minted supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

// Mint credits newly issued tokens to the holder.
func (t *Token) Mint(holder drip.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative mint amount")
	}
	bal, err := t.balances.Get(holder)
	if err != nil {
		return err
	}
	if err := t.balances.Set(holder, bal.Add(bal, amount)); err != nil {
		return err
	}
	return t.supply.Add(amount)
}

// Transfer moves amount from one holder to another. A zero-amount transfer is
// a no-op. It returns ErrInsufficientFunds when the sender's balance is too
// low; the caller must treat any error as a fatal abort of the enclosing
// operation.
func (t *Token) Transfer(from, to drip.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.New("negative transfer amount")
	}
	if amount.Sign() == 0 {
		return nil
	}

	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	if err := t.balances.Set(from, fromBal.Sub(fromBal, amount)); err != nil {
		return err
	}

	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	return t.balances.Set(to, toBal.Add(toBal, amount))
}
