// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/driplabs/drip/drip"
)

// Uint256 is a storage accessor for a single unsigned big integer, similar to
// storing an uint256 in a smart contract. If the stored value exceeds 256
// bits, it will be truncated to fit into drip.Bytes32.
type Uint256 struct {
	context *Context
	pos     drip.Bytes32
}

func NewUint256(context *Context, pos drip.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	storage, err := u.context.state.GetStorage(u.context.address, u.pos)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(storage.Bytes()), nil
}

func (u *Uint256) Set(value *big.Int) {
	storage := drip.BytesToBytes32(value.Bytes())
	u.context.state.SetStorage(u.context.address, u.pos, storage)
}

// GetUint64 reads the slot as an uint64, for timestamp-like values.
func (u *Uint256) GetUint64() (uint64, error) {
	v, err := u.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// SetUint64 writes an uint64 into the slot.
func (u *Uint256) SetUint64(value uint64) {
	u.Set(new(big.Int).SetUint64(value))
}

func (u *Uint256) Add(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	storage.Add(storage, value)
	u.Set(storage)
	return nil
}

func (u *Uint256) Sub(value *big.Int) error {
	storage, err := u.Get()
	if err != nil {
		return err
	}
	storage.Sub(storage, value)
	if storage.Sign() < 0 {
		return errors.New("uint256 underflow")
	}
	u.Set(storage)
	return nil
}
