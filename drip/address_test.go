// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package drip_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driplabs/drip/drip"
)

func TestParseAddress(t *testing.T) {
	addr := drip.BytesToAddress([]byte("alice"))

	parsed, err := drip.ParseAddress(addr.String())
	assert.NoError(t, err)
	assert.Equal(t, addr, *parsed)

	// without the 0x prefix
	parsed, err = drip.ParseAddress(addr.String()[2:])
	assert.NoError(t, err)
	assert.Equal(t, addr, *parsed)

	_, err = drip.ParseAddress("0x123")
	assert.Error(t, err)
	_, err = drip.ParseAddress("zz" + addr.String()[2:])
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := drip.BytesToAddress([]byte("alice"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)

	var decoded drip.Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)
}

func TestBlake2b(t *testing.T) {
	// multi-part hashing equals hashing the concatenation
	assert.Equal(t,
		drip.Blake2b([]byte("foobar")),
		drip.Blake2b([]byte("foo"), []byte("bar")),
	)
	assert.NotEqual(t, drip.Blake2b([]byte("foo")), drip.Blake2b([]byte("bar")))
}
