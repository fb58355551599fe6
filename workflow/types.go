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

// Package workflow implements the tree attestation and NFT minting workflow:
// attest a planted tree on-chain, pin its metadata file to IPFS, and mint an
// ERC-1155 token pointing at the pinned metadata.  The heavy lifting happens
// in external services — this package only sequences them and carries the
// handoff values (attestation UID, metadata URL) from one step to the next.
package workflow

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TreeAttestation is the structured fact set certified by a single
// attestation.  Field order matches the registered schema exactly:
//
//	uint256 treeId, address planter, string species, string[] geoTags,
//	string region, string plantedAt, int256 latitudeE6, int256 longitudeE6
//
// Coordinates are signed microdegrees to keep the schema integer-only.
type TreeAttestation struct {
	TreeID      *big.Int       `json:"tree_id"`
	Planter     common.Address `json:"planter"`
	Species     string         `json:"species"`
	GeoTags     []string       `json:"geo_tags"`
	Region      string         `json:"region"`
	PlantedAt   string         `json:"planted_at"` // ISO-8601 date
	LatitudeE6  *big.Int       `json:"latitude_e6"`
	LongitudeE6 *big.Int       `json:"longitude_e6"`
}

// AttestationRequest is the full input for one attestation.  All values are
// caller-supplied; nothing is hardwired into the attester itself.
type AttestationRequest struct {
	// SchemaUID identifies the registered schema the fields are encoded
	// against.
	SchemaUID common.Hash `json:"schema_uid"`

	// Recipient is the address the attestation is issued to.
	Recipient common.Address `json:"recipient"`

	// Tree holds the schema field values.
	Tree TreeAttestation `json:"tree"`

	// Revocable marks whether the attester may later revoke.
	Revocable bool `json:"revocable"`

	// Expiration is a unix timestamp; zero means the attestation never
	// expires.
	Expiration uint64 `json:"expiration"`
}

// MintReceipt is the confirmation summary returned after a successful mint.
type MintReceipt struct {
	TxHash      common.Hash `json:"tx_hash"`
	BlockNumber uint64      `json:"block_number"`
	GasUsed     uint64      `json:"gas_used"`
	Status      uint64      `json:"status"`
}

// Params are the run parameters of the workflow.  They are explicit inputs
// with documented defaults in the CLI rather than constants baked into the
// clients.
type Params struct {
	// Recipient receives the minted tokens.  The zero address means
	// "not configured" and aborts the run before minting.
	Recipient common.Address

	// TokenID is the ERC-1155 token class to mint.
	TokenID uint64

	// Quantity is the number of units to mint.
	Quantity uint64

	// MetadataFile is the local file whose bytes become the token metadata
	// payload.  It is produced by an upstream step; the workflow only
	// requires that it exists and is readable.
	MetadataFile string

	// RecordFile is where the attestation UID record is written.  The file
	// is overwritten on every run.
	RecordFile string
}

// Result collects the key outputs of one completed run.
type Result struct {
	AttestationUID string       `json:"attestation_uid"`
	MetadataURL    string       `json:"metadata_url"`
	Mint           *MintReceipt `json:"mint"`
}
