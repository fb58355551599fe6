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

// Package eas provides high-level Go bindings for the attestation registry
// contract.  It submits attestations and resolves the UID assigned by the
// registry at confirmation time.
package eas

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/eas/contract"
)

// Errors returned by registry operations.
var (
	ErrReverted = errors.New("eas: attestation transaction reverted")
	ErrNoUID    = errors.New("eas: confirmation receipt carries no attestation UID")
)

// attestedTopic is the topic hash of the registry's Attested event.
var attestedTopic = crypto.Keccak256Hash([]byte("Attested(address,address,bytes32,bytes32)"))

// Backend bundles the node capabilities the registry wrapper needs: calls,
// transactions, and receipt lookups for confirmation waits.  *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// RequestData is the per-attestation payload submitted alongside the schema
// identifier.  Data carries the schema-encoded field values.
type RequestData struct {
	Recipient      common.Address
	ExpirationTime uint64
	Revocable      bool
	RefUID         [32]byte
	Data           []byte
	Value          *big.Int
}

// Registry is a high-level wrapper around the deployed attestation registry.
type Registry struct {
	abi          abi.ABI
	address      common.Address
	contract     *bind.BoundContract
	backend      Backend
	transactOpts *bind.TransactOpts
}

// NewRegistry connects to an already-deployed attestation registry.
func NewRegistry(opts *bind.TransactOpts, addr common.Address, backend Backend) (*Registry, error) {
	parsed, err := abi.JSON(strings.NewReader(contract.RegistryABI))
	if err != nil {
		return nil, err
	}
	bound := bind.NewBoundContract(addr, parsed, backend, backend, backend)
	return &Registry{
		abi:          parsed,
		address:      addr,
		contract:     bound,
		backend:      backend,
		transactOpts: opts,
	}, nil
}

// Address returns the registry contract address.
func (r *Registry) Address() common.Address {
	return r.address
}

// Attest submits one attestation and blocks until the transaction is mined.
// It returns the UID the registry assigned, extracted from the Attested
// event in the confirmation receipt.
func (r *Registry) Attest(ctx context.Context, schema [32]byte, data RequestData) (common.Hash, error) {
	if data.Value == nil {
		data.Value = new(big.Int)
	}
	request := struct {
		Schema [32]byte
		Data   RequestData
	}{Schema: schema, Data: data}

	tx, err := r.contract.Transact(r.transactOpts, "attest", request)
	if err != nil {
		return common.Hash{}, fmt.Errorf("eas: attest transaction failed: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, r.backend, tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("eas: confirmation wait failed: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return common.Hash{}, ErrReverted
	}
	return r.uidFromReceipt(receipt)
}

// IsAttestationValid reports whether the registry knows the given UID.
func (r *Registry) IsAttestationValid(uid common.Hash) (bool, error) {
	var out []interface{}
	err := r.contract.Call(&bind.CallOpts{}, &out, "isAttestationValid", [32]byte(uid))
	if err != nil {
		return false, err
	}
	return out[0].(bool), nil
}

// uidFromReceipt scans the receipt logs for the registry's Attested event
// and returns the non-indexed UID word.
func (r *Registry) uidFromReceipt(receipt *types.Receipt) (common.Hash, error) {
	for _, lg := range receipt.Logs {
		if lg.Address != r.address || len(lg.Topics) == 0 {
			continue
		}
		if lg.Topics[0] != attestedTopic || len(lg.Data) < common.HashLength {
			continue
		}
		return common.BytesToHash(lg.Data[:common.HashLength]), nil
	}
	return common.Hash{}, ErrNoUID
}
