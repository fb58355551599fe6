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

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
)

// Attester issues one attestation and returns its registry-assigned UID.
// The UID is an opaque string; the workflow passes it through unmodified.
//
// Implementations block until the attestation is confirmed.
type Attester interface {
	Attest(ctx context.Context, req *AttestationRequest) (uid string, err error)
}

// Pinner uploads a local file to a content-addressed pinning service and
// returns a resolvable URL for the stored content.  Missing credentials or
// a missing file must fail before any network call.
type Pinner interface {
	Pin(ctx context.Context, filePath string) (resolvableURL string, err error)
}

// Minter submits a mint transaction and blocks until it is confirmed.
type Minter interface {
	Mint(ctx context.Context, recipient common.Address, tokenID, quantity uint64, metadataURI string) (*MintReceipt, error)
}

// Runner sequences the four workflow steps.  Every step is a blocking call;
// the first failure aborts the remaining sequence.  Already-completed steps
// are not compensated — a confirmed attestation stays on-chain even if the
// mint later fails, and operators reconcile manually.
type Runner struct {
	attester Attester
	pinner   Pinner
	minter   Minter

	request *AttestationRequest
	params  Params
}

// NewRunner wires a workflow run from its three collaborators, the
// attestation input, and the run parameters.
func NewRunner(attester Attester, pinner Pinner, minter Minter, req *AttestationRequest, params Params) *Runner {
	return &Runner{
		attester: attester,
		pinner:   pinner,
		minter:   minter,
		request:  req,
		params:   params,
	}
}

// Run executes the workflow: attest → persist UID → pin metadata → mint.
// It returns the collected step outputs, or the first step's error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	// 1. Attestation, confirmed on-chain before anything else happens.
	uid, err := r.attester.Attest(ctx, r.request)
	if err != nil {
		return nil, err
	}
	log.Info("Attestation confirmed", "uid", uid)

	// 2. Persist the UID record, overwriting any previous run's record.
	if err := WriteAttestationRecord(r.params.RecordFile, uid); err != nil {
		return nil, err
	}
	log.Info("Attestation record written", "path", r.params.RecordFile)

	// 3. Pin the metadata file.
	url, err := r.pinner.Pin(ctx, r.params.MetadataFile)
	if err != nil {
		return nil, err
	}
	log.Info("Metadata pinned", "url", url)

	// 4. Recipient must be configured before the mint is attempted at all.
	if r.params.Recipient == (common.Address{}) {
		return nil, ErrMissingRecipient
	}

	// 5. Mint, with the pinned URL as the token metadata URI.
	receipt, err := r.minter.Mint(ctx, r.params.Recipient, r.params.TokenID, r.params.Quantity, url)
	if err != nil {
		return nil, err
	}
	log.Info("Token minted",
		"recipient", r.params.Recipient.Hex(),
		"tokenID", r.params.TokenID,
		"quantity", r.params.Quantity,
		"tx", receipt.TxHash.Hex(),
		"block", receipt.BlockNumber,
	)

	return &Result{
		AttestationUID: uid,
		MetadataURL:    url,
		Mint:           receipt,
	}, nil
}
