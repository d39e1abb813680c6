// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"github.com/pkg/errors"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/slot"
	"github.com/driplabs/drip/state"
)

// Authority answers the "is caller the administrator" question for the
// owner-gated operations. The administrator address lives under a well-known
// key in the authority's storage namespace.
type Authority struct {
	admin *slot.Address
}

func New(addr drip.Address, state *state.State) *Authority {
	sctx := slot.NewContext(addr, state)
	return &Authority{
		admin: slot.NewAddress(sctx, drip.KeyAdministrator),
	}
}

// Init records the administrator. It fails if one is already recorded; the
// administrator is set once at deployment and changed only via Handover.
func (a *Authority) Init(admin drip.Address) error {
	if admin.IsZero() {
		return errors.New("zero administrator address")
	}
	existing, err := a.admin.Get()
	if err != nil {
		return err
	}
	if !existing.IsZero() {
		return errors.New("administrator already initialized")
	}
	a.admin.Set(admin)
	return nil
}

// Administrator returns the current administrator address.
func (a *Authority) Administrator() (drip.Address, error) {
	return a.admin.Get()
}

// IsAdministrator reports whether caller is the administrator.
func (a *Authority) IsAdministrator(caller drip.Address) (bool, error) {
	admin, err := a.admin.Get()
	if err != nil {
		return false, err
	}
	return !admin.IsZero() && admin == caller, nil
}

// Handover transfers the administrator role. Only the current administrator
// may call it.
func (a *Authority) Handover(caller, next drip.Address) error {
	ok, err := a.IsAdministrator(caller)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("caller is not the administrator")
	}
	if next.IsZero() {
		return errors.New("zero administrator address")
	}
	a.admin.Set(next)
	return nil
}
