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
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCID is a well-formed v0 content identifier.
const testCID = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPinReturnsGatewayURL(t *testing.T) {
	const gateway = "https://gateway.pinata.cloud/ipfs/"
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "key", r.Header.Get("pinata_api_key"))
		assert.Equal(t, "secret", r.Header.Get("pinata_secret_api_key"))
		w.Write([]byte(`{"IpfsHash":"` + testCID + `"}`))
	}))
	defer srv.Close()

	pinner := NewPinataPinner(srv.Client(), srv.URL, gateway, "key", "secret")
	url, err := pinner.Pin(context.Background(), writeTempFile(t, "metadataNFTree.json", `{"name":"NFTree"}`))
	require.NoError(t, err)
	assert.Equal(t, gateway+testCID, url)
	assert.True(t, strings.HasPrefix(url, gateway))
	assert.Equal(t, 1, calls)
}

func TestPinSendsFileAsMultipart(t *testing.T) {
	const content = `{"name":"NFTree #1"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.JSONEq(t, `{"name":"metadataNFTree.json"}`, r.FormValue("pinataMetadata"))
		assert.JSONEq(t, `{"cidVersion":0}`, r.FormValue("pinataOptions"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "metadataNFTree.json", header.Filename)
		buf, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, content, string(buf))

		w.Write([]byte(`{"IpfsHash":"` + testCID + `"}`))
	}))
	defer srv.Close()

	pinner := NewPinataPinner(srv.Client(), srv.URL, "ipfs://", "key", "secret")
	_, err := pinner.Pin(context.Background(), writeTempFile(t, "metadataNFTree.json", content))
	require.NoError(t, err)
}

func TestPinMissingFileFailsBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	pinner := NewPinataPinner(srv.Client(), srv.URL, "ipfs://", "key", "secret")
	_, err := pinner.Pin(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrFileNotFound)
	assert.Zero(t, calls, "no network call may happen for a missing file")
}

func TestPinMissingCredentialsFailsBeforeNetwork(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	pinner := NewPinataPinner(srv.Client(), srv.URL, "ipfs://", "", "")
	_, err := pinner.Pin(context.Background(), writeTempFile(t, "meta.json", "{}"))
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, calls, "no network call may happen without credentials")
}

func TestPinDirectoryRejected(t *testing.T) {
	pinner := NewPinataPinner(nil, "http://invalid.invalid", "ipfs://", "key", "secret")
	_, err := pinner.Pin(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestPinServiceErrorWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	pinner := NewPinataPinner(srv.Client(), srv.URL, "ipfs://", "key", "secret")
	_, err := pinner.Pin(context.Background(), writeTempFile(t, "meta.json", "{}"))
	require.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "402")
}

func TestPinRejectsMalformedIdentifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"IpfsHash":"not-a-cid"}`))
	}))
	defer srv.Close()

	pinner := NewPinataPinner(srv.Client(), srv.URL, "ipfs://", "key", "secret")
	_, err := pinner.Pin(context.Background(), writeTempFile(t, "meta.json", "{}"))
	require.ErrorIs(t, err, ErrUploadFailed)
}
