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
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/eas"
)

// treeSchemaArgs mirrors the registered schema's declared types, in order.
var treeSchemaArgs = abi.Arguments{
	{Name: "treeId", Type: mustType("uint256")},
	{Name: "planter", Type: mustType("address")},
	{Name: "species", Type: mustType("string")},
	{Name: "geoTags", Type: mustType("string[]")},
	{Name: "region", Type: mustType("string")},
	{Name: "plantedAt", Type: mustType("string")},
	{Name: "latitudeE6", Type: mustType("int256")},
	{Name: "longitudeE6", Type: mustType("int256")},
}

func mustType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return ty
}

// encodeTreeFields ABI-encodes the schema field values.  Unset big integers
// encode as zero so a partially filled attestation still packs.
func encodeTreeFields(t TreeAttestation) ([]byte, error) {
	return treeSchemaArgs.Pack(
		orZero(t.TreeID),
		t.Planter,
		t.Species,
		orEmpty(t.GeoTags),
		t.Region,
		t.PlantedAt,
		orZero(t.LatitudeE6),
		orZero(t.LongitudeE6),
	)
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

// EASAttester issues attestations through the on-chain registry.
type EASAttester struct {
	registry *eas.Registry
}

// NewEASAttester wires an attester to a connected registry wrapper.
func NewEASAttester(registry *eas.Registry) *EASAttester {
	return &EASAttester{registry: registry}
}

// Attest encodes the tree fields against the schema, submits the attestation
// and blocks until it is confirmed.  Any failure — encoding, signing, RPC, or
// revert — surfaces as ErrAttestationFailed with the cause attached.
func (a *EASAttester) Attest(ctx context.Context, req *AttestationRequest) (string, error) {
	encoded, err := encodeTreeFields(req.Tree)
	if err != nil {
		return "", failStep(ErrAttestationFailed, err)
	}
	uid, err := a.registry.Attest(ctx, req.SchemaUID, eas.RequestData{
		Recipient:      req.Recipient,
		ExpirationTime: req.Expiration,
		Revocable:      req.Revocable,
		Data:           encoded,
	})
	if err != nil {
		return "", failStep(ErrAttestationFailed, err)
	}
	return uid.Hex(), nil
}
