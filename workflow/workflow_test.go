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
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAttester struct {
	uid   string
	err   error
	calls int
}

func (a *stubAttester) Attest(ctx context.Context, req *AttestationRequest) (string, error) {
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return a.uid, nil
}

type stubPinner struct {
	url      string
	err      error
	calls    int
	lastPath string
}

func (p *stubPinner) Pin(ctx context.Context, filePath string) (string, error) {
	p.calls++
	p.lastPath = filePath
	if p.err != nil {
		return "", p.err
	}
	return p.url, nil
}

type mintCall struct {
	recipient common.Address
	tokenID   uint64
	quantity  uint64
	uri       string
}

type stubMinter struct {
	err   error
	calls []mintCall
}

func (m *stubMinter) Mint(ctx context.Context, recipient common.Address, tokenID, quantity uint64, metadataURI string) (*MintReceipt, error) {
	m.calls = append(m.calls, mintCall{recipient, tokenID, quantity, metadataURI})
	if m.err != nil {
		return nil, m.err
	}
	return &MintReceipt{TxHash: common.HexToHash("0xdead"), BlockNumber: 7, GasUsed: 21000, Status: 1}, nil
}

func testParams(t *testing.T) Params {
	t.Helper()
	dir := t.TempDir()
	meta := filepath.Join(dir, "metadataNFTree.json")
	require.NoError(t, os.WriteFile(meta, []byte(`{"name":"NFTree #1"}`), 0644))
	return Params{
		Recipient:    common.HexToAddress("0x1111111111111111111111111111111111111111"),
		TokenID:      1,
		Quantity:     1,
		MetadataFile: meta,
		RecordFile:   filepath.Join(dir, "attestationUID.json"),
	}
}

func testRequest() *AttestationRequest {
	return &AttestationRequest{
		SchemaUID: common.HexToHash("0x01"),
		Recipient: common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Tree: TreeAttestation{
			TreeID:  big.NewInt(1),
			Species: "Handroanthus albus",
			Region:  "Serra do Mar",
		},
	}
}

func TestRunFullSequence(t *testing.T) {
	const gateway = "https://gateway.pinata.cloud/ipfs/"

	attester := &stubAttester{uid: "0xabc"}
	pinner := &stubPinner{url: gateway + "Qm123"}
	minter := &stubMinter{}
	params := testParams(t)

	result, err := NewRunner(attester, pinner, minter, testRequest(), params).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0xabc", result.AttestationUID)
	assert.Equal(t, gateway+"Qm123", result.MetadataURL)
	assert.Equal(t, params.MetadataFile, pinner.lastPath)

	require.Len(t, minter.calls, 1)
	call := minter.calls[0]
	assert.Equal(t, params.Recipient, call.recipient)
	assert.Equal(t, uint64(1), call.tokenID)
	assert.Equal(t, uint64(1), call.quantity)
	assert.Equal(t, gateway+"Qm123", call.uri)

	data, err := os.ReadFile(params.RecordFile)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"AttestationUID\",\n  \"value\": \"0xabc\"\n}\n", string(data))
}

func TestRunMissingRecipientSkipsMint(t *testing.T) {
	attester := &stubAttester{uid: "0xabc"}
	pinner := &stubPinner{url: "ipfs://Qm123"}
	minter := &stubMinter{}
	params := testParams(t)
	params.Recipient = common.Address{}

	_, err := NewRunner(attester, pinner, minter, testRequest(), params).Run(context.Background())
	require.ErrorIs(t, err, ErrMissingRecipient)

	// The mint must never be attempted; earlier steps already ran.
	assert.Empty(t, minter.calls)
	assert.Equal(t, 1, attester.calls)
	assert.Equal(t, 1, pinner.calls)
}

func TestRunAttestationFailureAbortsEverything(t *testing.T) {
	cause := errors.New("rpc unreachable")
	attester := &stubAttester{err: failStep(ErrAttestationFailed, cause)}
	pinner := &stubPinner{url: "ipfs://Qm123"}
	minter := &stubMinter{}
	params := testParams(t)

	_, err := NewRunner(attester, pinner, minter, testRequest(), params).Run(context.Background())
	require.ErrorIs(t, err, ErrAttestationFailed)
	require.ErrorIs(t, err, cause)

	assert.Zero(t, pinner.calls)
	assert.Empty(t, minter.calls)
	_, statErr := os.Stat(params.RecordFile)
	assert.True(t, os.IsNotExist(statErr), "record file must not be written on attestation failure")
}

func TestRunUploadFailureSkipsMint(t *testing.T) {
	attester := &stubAttester{uid: "0xabc"}
	pinner := &stubPinner{err: failStep(ErrUploadFailed, errors.New("service unavailable"))}
	minter := &stubMinter{}
	params := testParams(t)

	_, err := NewRunner(attester, pinner, minter, testRequest(), params).Run(context.Background())
	require.ErrorIs(t, err, ErrUploadFailed)
	assert.Empty(t, minter.calls)

	// The attestation record survives the later failure; no compensation.
	rec, err := ReadAttestationRecord(params.RecordFile)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", rec.Value)
}

func TestRunMintFailureSurfaces(t *testing.T) {
	attester := &stubAttester{uid: "0xabc"}
	pinner := &stubPinner{url: "ipfs://Qm123"}
	minter := &stubMinter{err: failStep(ErrMintFailed, errors.New("execution reverted"))}
	params := testParams(t)

	_, err := NewRunner(attester, pinner, minter, testRequest(), params).Run(context.Background())
	require.ErrorIs(t, err, ErrMintFailed)
	require.Len(t, minter.calls, 1)
}

func TestRunOverwritesRecordEachRun(t *testing.T) {
	pinner := &stubPinner{url: "ipfs://Qm123"}
	params := testParams(t)

	for _, uid := range []string{"0xaaa", "0xbbb"} {
		runner := NewRunner(&stubAttester{uid: uid}, pinner, &stubMinter{}, testRequest(), params)
		_, err := runner.Run(context.Background())
		require.NoError(t, err)
	}

	rec, err := ReadAttestationRecord(params.RecordFile)
	require.NoError(t, err)
	assert.Equal(t, "0xbbb", rec.Value, "each run replaces the previous record")
}
