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

// Package contract contains the ABI fragments for the attestation registry.
// Only the entry points the workflow touches are declared; the registry's
// full surface (revocation, delegated attestations, timestamping) is out of
// scope here.
package contract

// RegistryABI is the ABI fragment of the attestation registry contract.
const RegistryABI = `[
	{
		"constant": false,
		"inputs": [
			{
				"name": "request",
				"type": "tuple",
				"components": [
					{"name": "schema", "type": "bytes32"},
					{
						"name": "data",
						"type": "tuple",
						"components": [
							{"name": "recipient",      "type": "address"},
							{"name": "expirationTime", "type": "uint64"},
							{"name": "revocable",      "type": "bool"},
							{"name": "refUID",         "type": "bytes32"},
							{"name": "data",           "type": "bytes"},
							{"name": "value",          "type": "uint256"}
						]
					}
				]
			}
		],
		"name": "attest",
		"outputs": [{"name": "uid", "type": "bytes32"}],
		"payable": true,
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [{"name": "uid", "type": "bytes32"}],
		"name": "isAttestationValid",
		"outputs": [{"name": "", "type": "bool"}],
		"payable": false,
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true,  "name": "recipient", "type": "address"},
			{"indexed": true,  "name": "attester",  "type": "address"},
			{"indexed": false, "name": "uid",       "type": "bytes32"},
			{"indexed": true,  "name": "schemaUID", "type": "bytes32"}
		],
		"name": "Attested",
		"type": "event"
	}
]`
