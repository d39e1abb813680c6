// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/lvldb"
	"github.com/driplabs/drip/slot"
	"github.com/driplabs/drip/state"
)

func newTestContext(t *testing.T) *slot.Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)
	return slot.NewContext(drip.BytesToAddress([]byte("test")), st)
}

func TestUint256(t *testing.T) {
	sctx := newTestContext(t)
	u := slot.NewUint256(sctx, drip.BytesToBytes32([]byte("pos")))

	v, err := u.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), v, "unset slot should read zero")

	u.Set(big.NewInt(42))
	v, err = u.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(42), v)

	assert.NoError(t, u.Add(big.NewInt(8)))
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(50), v)

	assert.NoError(t, u.Sub(big.NewInt(20)))
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(30), v)

	assert.Error(t, u.Sub(big.NewInt(31)), "underflow should be rejected")
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(30), v, "failed sub must not change the slot")
}

func TestUint256Uint64(t *testing.T) {
	sctx := newTestContext(t)
	u := slot.NewUint256(sctx, drip.BytesToBytes32([]byte("pos")))

	u.SetUint64(1_000_000)
	v, err := u.GetUint64()
	assert.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), v)
}

func TestMapping(t *testing.T) {
	sctx := newTestContext(t)
	m := slot.NewMapping[drip.Address, *big.Int](sctx, drip.BytesToBytes32([]byte("balances")))

	alice := drip.BytesToAddress([]byte("alice"))
	bob := drip.BytesToAddress([]byte("bob"))

	v, err := m.Get(alice)
	assert.NoError(t, err)
	require.NotNil(t, v, "never-written pointer entry should be allocated")
	assert.Equal(t, big.NewInt(0), v)

	require.NoError(t, m.Set(alice, big.NewInt(7)))
	v, err = m.Get(alice)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(7), v)

	v, err = m.Get(bob)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(0), v, "entries must not alias across keys")
}

func TestMappingStruct(t *testing.T) {
	type entry struct {
		A *big.Int
		B *big.Int
	}

	sctx := newTestContext(t)
	m := slot.NewMapping[drip.Address, *entry](sctx, drip.BytesToBytes32([]byte("entries")))

	alice := drip.BytesToAddress([]byte("alice"))
	require.NoError(t, m.Set(alice, &entry{A: big.NewInt(1), B: big.NewInt(2)}))

	got, err := m.Get(alice)
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1), got.A)
	assert.Equal(t, big.NewInt(2), got.B)
}

func TestAddress(t *testing.T) {
	sctx := newTestContext(t)
	a := slot.NewAddress(sctx, drip.BytesToBytes32([]byte("admin")))

	v, err := a.Get()
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	addr := drip.BytesToAddress([]byte("somebody"))
	a.Set(addr)
	v, err = a.Get()
	assert.NoError(t, err)
	assert.Equal(t, addr, v)
}
