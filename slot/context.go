// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/state"
)

// Context binds a storage namespace (an address) to the world state.
// All slot accessors of one component share a context.
type Context struct {
	address drip.Address
	state   *state.State
}

func NewContext(address drip.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() drip.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
