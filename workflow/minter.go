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

package workflow

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/treenft"
)

// ErrMintReverted is returned when the mint transaction is mined but fails.
var ErrMintReverted = errors.New("workflow: mint transaction reverted")

// ContractMinter mints through the deployed TreeNFT contract.
type ContractMinter struct {
	nft     *treenft.TreeNFT
	backend bind.DeployBackend
}

// NewContractMinter wires a minter to a connected TreeNFT wrapper.  The nft
// wrapper must be non-nil, which the caller guarantees by validating the
// connection parameters before construction.
func NewContractMinter(nft *treenft.TreeNFT, backend bind.DeployBackend) *ContractMinter {
	return &ContractMinter{nft: nft, backend: backend}
}

// Mint submits the mint transaction and blocks until it is mined.  RPC
// failures and on-chain reverts (non-owner caller, empty URI) surface as
// ErrMintFailed with the cause attached.
func (m *ContractMinter) Mint(ctx context.Context, recipient common.Address, tokenID, quantity uint64, metadataURI string) (*MintReceipt, error) {
	tx, err := m.nft.Mint(recipient, new(big.Int).SetUint64(tokenID), new(big.Int).SetUint64(quantity), metadataURI)
	if err != nil {
		return nil, failStep(ErrMintFailed, err)
	}
	receipt, err := bind.WaitMined(ctx, m.backend, tx)
	if err != nil {
		return nil, failStep(ErrMintFailed, err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, failStep(ErrMintFailed, ErrMintReverted)
	}
	return &MintReceipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
		Status:      receipt.Status,
	}, nil
}
