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

// Package contract contains the ABI for the TreeNFT metadata extension.
// Only the extension surface is declared — the inherited ERC-1155 base
// (transfers, balances, approvals) is not touched by the workflow.
package contract

// TreeNFTABI is the ABI of the TreeNFT contract's metadata extension.
const TreeNFTABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "_to",          "type": "address"},
			{"name": "_tokenId",     "type": "uint256"},
			{"name": "_quantity",    "type": "uint256"},
			{"name": "_metadataURI", "type": "string"}
		],
		"name": "mint",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_tokenId",     "type": "uint256"},
			{"name": "_metadataURI", "type": "string"}
		],
		"name": "updateTokenMetadata",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [{"name": "_newBaseURI", "type": "string"}],
		"name": "updateBaseURI",
		"outputs": [],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_tokenId", "type": "uint256"}],
		"name": "getTokenMetadata",
		"outputs": [{"name": "", "type": "string"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_tokenId", "type": "uint256"}],
		"name": "getMetadataHistory",
		"outputs": [{"name": "", "type": "string[]"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "_tokenId", "type": "uint256"}],
		"name": "uri",
		"outputs": [{"name": "", "type": "string"}],
		"payable": false,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [],
		"name": "owner",
		"outputs": [{"name": "", "type": "address"}],
		"payable": false,
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "tokenId",     "type": "uint256"},
			{"indexed": false, "name": "metadataURI", "type": "string"}
		],
		"name": "MetadataUpdated",
		"type": "event"
	}
]`
