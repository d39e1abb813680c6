// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/driplabs/drip/drip"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a keyed storage accessor, similar to the mapping in Solidity.
// Values are rlp-coded; the storage position of an entry is derived from the
// key and the mapping's base position.
type Mapping[K Key, V any] struct {
	context *Context
	basePos drip.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos drip.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) drip.Bytes32 {
	return drip.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get loads the entry for the key. A never-written entry decodes to the zero
// value of V (allocated, for pointer types).
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores the entry for the key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
