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

package treenft

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeNFTParsesABI(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000000000042")
	nft, err := NewTreeNFT(nil, addr, nil)
	require.NoError(t, err)
	assert.Equal(t, addr, nft.Address())

	for _, method := range []string{
		"mint", "updateTokenMetadata", "updateBaseURI",
		"getTokenMetadata", "getMetadataHistory", "uri", "owner",
	} {
		_, ok := nft.abi.Methods[method]
		assert.True(t, ok, "missing method %s", method)
	}
	_, ok := nft.abi.Events["MetadataUpdated"]
	assert.True(t, ok)
}
