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

// Package treenft provides high-level Go bindings for the TreeNFT contract's
// metadata extension: per-token metadata pointers with an append-only
// history, alongside the ERC-1155 global base URI.
package treenft

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/treenft/contract"
)

// TreeNFT is a high-level wrapper around the on-chain TreeNFT contract.
type TreeNFT struct {
	abi             abi.ABI
	address         common.Address
	contract        *bind.BoundContract
	contractBackend bind.ContractBackend
	transactOpts    *bind.TransactOpts
}

// NewTreeNFT connects to an already-deployed TreeNFT contract.
func NewTreeNFT(opts *bind.TransactOpts, addr common.Address, backend bind.ContractBackend) (*TreeNFT, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.TreeNFTABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &TreeNFT{
		abi:             parsed,
		address:         addr,
		contract:        bound,
		contractBackend: backend,
		transactOpts:    opts,
	}, nil
}

// Address returns the contract address.
func (t *TreeNFT) Address() common.Address {
	return t.address
}

// ──────────────────────────────────────────────
//  Write methods (owner-only on-chain)
// ──────────────────────────────────────────────

// Mint creates `quantity` units of a token class for `to` and records the
// metadata URI.  Minting an existing class appends the URI to its history.
func (t *TreeNFT) Mint(to common.Address, tokenId, quantity *big.Int, metadataURI string) (*types.Transaction, error) {
	return t.contract.Transact(t.transactOpts, "mint", to, tokenId, quantity, metadataURI)
}

// UpdateTokenMetadata advances a minted token class to a new metadata URI.
func (t *TreeNFT) UpdateTokenMetadata(tokenId *big.Int, metadataURI string) (*types.Transaction, error) {
	return t.contract.Transact(t.transactOpts, "updateTokenMetadata", tokenId, metadataURI)
}

// UpdateBaseURI replaces the global base URI applied to all token classes.
func (t *TreeNFT) UpdateBaseURI(newBaseURI string) (*types.Transaction, error) {
	return t.contract.Transact(t.transactOpts, "updateBaseURI", newBaseURI)
}

// ──────────────────────────────────────────────
//  Read methods
// ──────────────────────────────────────────────

// GetTokenMetadata returns the current metadata URI of a token class.
func (t *TreeNFT) GetTokenMetadata(tokenId *big.Int) (string, error) {
	var out []interface{}
	err := t.contract.Call(&bind.CallOpts{}, &out, "getTokenMetadata", tokenId)
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// GetMetadataHistory returns every metadata URI a token class has pointed at,
// oldest first.
func (t *TreeNFT) GetMetadataHistory(tokenId *big.Int) ([]string, error) {
	var out []interface{}
	err := t.contract.Call(&bind.CallOpts{}, &out, "getMetadataHistory", tokenId)
	if err != nil {
		return nil, err
	}
	return out[0].([]string), nil
}

// URI returns the ERC-1155 global base URI.  The contract ignores the token
// argument; see MetadataLedger.ResolveURI for the two-tier resolution rule.
func (t *TreeNFT) URI(tokenId *big.Int) (string, error) {
	var out []interface{}
	err := t.contract.Call(&bind.CallOpts{}, &out, "uri", tokenId)
	if err != nil {
		return "", err
	}
	return out[0].(string), nil
}

// Owner returns the contract's owning authority.
func (t *TreeNFT) Owner() (common.Address, error) {
	var out []interface{}
	err := t.contract.Call(&bind.CallOpts{}, &out, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return out[0].(common.Address), nil
}
