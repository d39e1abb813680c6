// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/driplabs/drip/drip"
	"github.com/driplabs/drip/kv"
	"github.com/driplabs/drip/stackedmap"
)

// storageKeyPrefix namespaces storage entries in the underlying kv store.
const storageKeyPrefix = "s"

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// State manages the world state: per-address storage namespaces over a kv
// store, with checkpoint/revert journaling. All mutations stay in the journal
// until Commit flushes them to the store in one batch.
type State struct {
	kv kv.GetPutter
	sm *stackedmap.StackedMap
}

type storageKey struct {
	addr drip.Address
	key  drip.Bytes32
}

// New create state object.
func New(kv kv.GetPutter) *State {
	state := State{kv: kv}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.srcGetter(key)
	})
	// base level, holds writes made outside any checkpoint
	state.sm.Push()
	return &state
}

// srcGetter implements stackedmap.MapGetter.
func (s *State) srcGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case storageKey:
		data, err := s.kv.Get(persistentKey(k))
		if err != nil {
			if s.kv.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(data), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func persistentKey(k storageKey) []byte {
	pk := make([]byte, 0, len(storageKeyPrefix)+drip.AddressLength+32)
	pk = append(pk, storageKeyPrefix...)
	pk = append(pk, k.addr.Bytes()...)
	return append(pk, k.key.Bytes()...)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr drip.Address, key drip.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr drip.Address, key drip.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr drip.Address, key drip.Bytes32) (drip.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return drip.Bytes32{}, err
	}
	if len(raw) == 0 {
		return drip.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return drip.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return drip.Blake2b(raw), nil
	}
	return drip.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr drip.Address, key, value drip.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr drip.Address, key drip.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr drip.Address, key drip.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit flushes all journaled changes to the kv store in one batch, then
// resets the journal. Storage set to empty raw value is deleted from the
// store.
func (s *State) Commit() error {
	batch := s.kv.NewBatch()

	var jerr error
	s.sm.Journal(func(k, v any) bool {
		key := k.(storageKey)
		raw := v.(rlp.RawValue)
		if len(raw) == 0 {
			jerr = batch.Delete(persistentKey(key))
		} else {
			jerr = batch.Put(persistentKey(key), raw)
		}
		return jerr == nil
	})
	if jerr != nil {
		return &Error{jerr}
	}

	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	s.sm = stackedmap.New(func(key any) (any, bool, error) {
		return s.srcGetter(key)
	})
	s.sm.Push()
	return nil
}
