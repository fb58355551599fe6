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
	"encoding/binary"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/treenft"
)

// The dry-run collaborators exercise the full workflow sequence without a
// node or a pinning service.  Attestation UIDs and content identifiers are
// derived deterministically from the inputs, so repeated dry runs over the
// same data produce the same artifacts.

// DryRunAttester derives the UID from the encoded request instead of
// submitting a transaction.
type DryRunAttester struct{}

func (DryRunAttester) Attest(ctx context.Context, req *AttestationRequest) (string, error) {
	encoded, err := encodeTreeFields(req.Tree)
	if err != nil {
		return "", failStep(ErrAttestationFailed, err)
	}
	uid := crypto.Keccak256Hash(req.SchemaUID.Bytes(), req.Recipient.Bytes(), encoded)
	return uid.Hex(), nil
}

// DryRunPinner computes the file's content identifier locally — the same
// sha2-256 multihash addressing a cidVersion-0 pin would use — and composes
// the gateway URL without uploading anything.
type DryRunPinner struct {
	GatewayBase string
}

func (p DryRunPinner) Pin(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", failStep(ErrFileNotFound, err)
	}
	sum, err := mh.Sum(data, mh.SHA2_256, -1)
	if err != nil {
		return "", failStep(ErrUploadFailed, err)
	}
	return p.GatewayBase + cid.NewCidV0(sum).String(), nil
}

// LedgerMinter records mints in an in-memory metadata ledger instead of the
// deployed contract.  The ledger enforces the same rules the contract does
// (owner gating, non-empty URI, append-only history).
type LedgerMinter struct {
	ledger *treenft.MetadataLedger
	caller common.Address
}

// NewLedgerMinter wires a minter to a ledger, acting as the given caller.
func NewLedgerMinter(ledger *treenft.MetadataLedger, caller common.Address) *LedgerMinter {
	return &LedgerMinter{ledger: ledger, caller: caller}
}

func (m *LedgerMinter) Mint(ctx context.Context, recipient common.Address, tokenID, quantity uint64, metadataURI string) (*MintReceipt, error) {
	if err := m.ledger.Mint(m.caller, tokenID, quantity, metadataURI); err != nil {
		return nil, failStep(ErrMintFailed, err)
	}
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], tokenID)
	return &MintReceipt{
		TxHash: crypto.Keccak256Hash(recipient.Bytes(), id[:], []byte(metadataURI)),
		Status: 1,
	}, nil
}

// Ledger exposes the backing ledger so callers can inspect dry-run state.
func (m *LedgerMinter) Ledger() *treenft.MetadataLedger {
	return m.ledger
}
