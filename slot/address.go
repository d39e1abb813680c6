// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import "github.com/driplabs/drip/drip"

// Address is a storage accessor for a single account address.
type Address struct {
	context *Context
	pos     drip.Bytes32
}

func NewAddress(context *Context, pos drip.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (drip.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return drip.Address{}, err
	}
	return drip.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(value drip.Address) {
	a.context.state.SetStorage(a.context.address, a.pos, drip.BytesToBytes32(value.Bytes()))
}
