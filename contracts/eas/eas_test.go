// Copyright 2024 The treeflow Authors
// This file is part of the treeflow library.
//
// The treeflow library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The treeflow library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the treeflow library. If not, see <http://www.gnu.org/licenses/>.

package eas

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registryAddr = common.HexToAddress("0x4200000000000000000000000000000000000021")

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(nil, registryAddr, nil)
	require.NoError(t, err)
	return r
}

func attestedLog(addr common.Address, uid common.Hash) *types.Log {
	return &types.Log{
		Address: addr,
		Topics: []common.Hash{
			attestedTopic,
			common.HexToHash("0x01"), // recipient
			common.HexToHash("0x02"), // attester
			common.HexToHash("0x03"), // schema UID
		},
		Data: uid.Bytes(),
	}
}

func TestUIDFromReceipt(t *testing.T) {
	r := newTestRegistry(t)
	want := common.HexToHash("0xabc")

	receipt := &types.Receipt{Logs: []*types.Log{
		{Address: registryAddr}, // unrelated, no topics
		attestedLog(common.HexToAddress("0x99"), common.HexToHash("0xbad")), // wrong contract
		attestedLog(registryAddr, want),
	}}

	uid, err := r.uidFromReceipt(receipt)
	require.NoError(t, err)
	assert.Equal(t, want, uid)
}

func TestUIDFromReceiptMissing(t *testing.T) {
	r := newTestRegistry(t)
	_, err := r.uidFromReceipt(&types.Receipt{})
	assert.ErrorIs(t, err, ErrNoUID)
}

func TestRegistryParsesABI(t *testing.T) {
	r := newTestRegistry(t)
	assert.Equal(t, registryAddr, r.Address())

	_, ok := r.abi.Methods["attest"]
	assert.True(t, ok)
	_, ok = r.abi.Methods["isAttestationValid"]
	assert.True(t, ok)
	ev, ok := r.abi.Events["Attested"]
	require.True(t, ok)
	assert.Equal(t, attestedTopic, ev.ID)
}
