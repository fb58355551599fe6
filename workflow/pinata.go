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
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ipfs/go-cid"
)

// DefaultPinataEndpoint is the pinning endpoint used when none is configured.
const DefaultPinataEndpoint = "https://api.pinata.cloud/pinning/pinFileToIPFS"

// PinataPinner uploads files to the Pinata pinning service.  Credentials and
// file existence are both checked before any network traffic; timeouts are
// whatever the supplied HTTP client enforces.
type PinataPinner struct {
	client      *http.Client
	endpoint    string
	gatewayBase string
	apiKey      string
	apiSecret   string
}

// NewPinataPinner creates a pinner.  An empty endpoint falls back to
// DefaultPinataEndpoint; a nil client uses http.DefaultClient.  The gateway
// base is prepended verbatim to the returned content identifier, so it must
// already end appropriately.
func NewPinataPinner(client *http.Client, endpoint, gatewayBase, apiKey, apiSecret string) *PinataPinner {
	if client == nil {
		client = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultPinataEndpoint
	}
	return &PinataPinner{
		client:      client,
		endpoint:    endpoint,
		gatewayBase: gatewayBase,
		apiKey:      apiKey,
		apiSecret:   apiSecret,
	}
}

// pinResponse is the subset of the service reply the pinner consumes.
type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// Pin streams the file's bytes to the pinning service and returns
// gatewayBase + contentIdentifier.  No retry and no size limit; large-file
// handling is left to the streaming transfer.
func (p *PinataPinner) Pin(ctx context.Context, filePath string) (string, error) {
	if p.apiKey == "" || p.apiSecret == "" {
		return "", ErrMissingCredentials
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return "", failStep(ErrFileNotFound, err)
	}
	if info.IsDir() {
		return "", failStep(ErrFileNotFound, fmt.Errorf("%s is a directory", filePath))
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", failStep(ErrFileNotFound, err)
	}
	defer file.Close()

	body, contentType := multipartStream(file, filepath.Base(filePath))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, body)
	if err != nil {
		return "", failStep(ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("pinata_api_key", p.apiKey)
	req.Header.Set("pinata_secret_api_key", p.apiSecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", failStep(ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", failStep(ErrUploadFailed, fmt.Errorf("pinning service returned status %d: %s", resp.StatusCode, respBody))
	}

	var pinned pinResponse
	if err := json.Unmarshal(respBody, &pinned); err != nil {
		return "", failStep(ErrUploadFailed, fmt.Errorf("decode pin response: %w", err))
	}
	if _, err := cid.Decode(pinned.IpfsHash); err != nil {
		return "", failStep(ErrUploadFailed, fmt.Errorf("pin response carries no valid content identifier: %w", err))
	}

	log.Info("File pinned", "file", filepath.Base(filePath), "size", info.Size(), "cid", pinned.IpfsHash)
	return p.gatewayBase + pinned.IpfsHash, nil
}

// multipartStream builds the pin request body without buffering the whole
// file: the multipart writer feeds a pipe the HTTP client reads from.
func multipartStream(file io.Reader, name string) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeMultipart(mw, file, name)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	return pr, mw.FormDataContentType()
}

func writeMultipart(mw *multipart.Writer, file io.Reader, name string) error {
	meta, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return err
	}
	if err := mw.WriteField("pinataMetadata", string(meta)); err != nil {
		return err
	}
	if err := mw.WriteField("pinataOptions", `{"cidVersion":0}`); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	return err
}
