// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/lvldb"
	"github.com/driplabs/drip/state"
)

func TestStorage(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	addr := drip.BytesToAddress([]byte("addr"))
	key := drip.BytesToBytes32([]byte("key"))
	value := drip.BytesToBytes32([]byte("value"))

	got, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, drip.Bytes32{}, got, "unset storage should read zero")

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)

	st.SetStorage(addr, key, drip.Bytes32{})
	got, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, drip.Bytes32{}, got, "zero value should clear the slot")
}

func TestCheckpointRevert(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	st := state.New(db)

	addr := drip.BytesToAddress([]byte("addr"))
	key := drip.BytesToBytes32([]byte("key"))
	v1 := drip.BytesToBytes32([]byte("v1"))
	v2 := drip.BytesToBytes32([]byte("v2"))

	st.SetStorage(addr, key, v1)

	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, v2)

	got, _ := st.GetStorage(addr, key)
	assert.Equal(t, v2, got)

	st.RevertTo(cp)
	got, _ = st.GetStorage(addr, key)
	assert.Equal(t, v1, got, "revert should restore the checkpointed value")
}

func TestCommit(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	addr := drip.BytesToAddress([]byte("addr"))
	key := drip.BytesToBytes32([]byte("key"))
	value := drip.BytesToBytes32([]byte("value"))

	st := state.New(db)
	st.SetStorage(addr, key, value)
	require.NoError(t, st.Commit())

	// a fresh state over the same store sees committed data
	st2 := state.New(db)
	got, err := st2.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestUncommittedNotPersisted(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	addr := drip.BytesToAddress([]byte("addr"))
	key := drip.BytesToBytes32([]byte("key"))
	value := drip.BytesToBytes32([]byte("value"))

	st := state.New(db)
	st.SetStorage(addr, key, value)

	st2 := state.New(db)
	got, err := st2.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, drip.Bytes32{}, got, "journaled writes must not leak to the store before commit")
}

func TestCommitAfterRevert(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	addr := drip.BytesToAddress([]byte("addr"))
	key := drip.BytesToBytes32([]byte("key"))
	value := drip.BytesToBytes32([]byte("value"))

	st := state.New(db)
	cp := st.NewCheckpoint()
	st.SetStorage(addr, key, value)
	st.RevertTo(cp)
	require.NoError(t, st.Commit())

	st2 := state.New(db)
	got, err := st2.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, drip.Bytes32{}, got, "reverted writes must not be committed")
}
