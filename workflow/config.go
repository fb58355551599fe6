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
	"os"
	"strings"
)

// Environment variable names recognized by the workflow.
const (
	EnvRPCEndpoint  = "RPC_URL"
	EnvPrivateKey   = "SIGNER_PRIVATE_KEY"
	EnvEASAddress   = "EAS_CONTRACT_ADDRESS"
	EnvSchemaUID    = "SCHEMA_UID"
	EnvPinataKey    = "PINATA_API_KEY"
	EnvPinataSecret = "PINATA_API_SECRET"
	EnvGatewayBase  = "PINATA_GATEWAY_BASE"
	EnvNFTAddress   = "TREENFT_CONTRACT_ADDRESS"
	EnvRecipient    = "RECIPIENT_ADDRESS"
)

// Config holds every external connection setting the workflow may need.
// Each step validates only the options it uses, immediately before (or at
// construction of) that step — absence yields a ConfigError naming the
// option, never a silent default.
type Config struct {
	// RPCEndpoint is the Ethereum JSON-RPC endpoint.
	RPCEndpoint string

	// PrivateKey is the hex-encoded signing key shared by the attestation
	// and mint steps.  It is loaded once and must never be logged.
	PrivateKey string

	// EASAddress is the deployed attestation registry contract.
	EASAddress string

	// SchemaUID is the registered tree schema identifier.
	SchemaUID string

	// PinataKey and PinataSecret authenticate against the pinning service.
	PinataKey    string
	PinataSecret string

	// GatewayBase is prepended verbatim to the returned content identifier.
	// It is expected to already end appropriately (e.g. ".../ipfs/").
	GatewayBase string

	// NFTAddress is the deployed TreeNFT contract.
	NFTAddress string

	// Recipient is the token recipient address.
	Recipient string
}

// ConfigFromEnv reads every recognized option from the environment.
// Values are trimmed; emptiness is decided later by the per-step validators.
func ConfigFromEnv() *Config {
	get := func(name string) string {
		return strings.TrimSpace(os.Getenv(name))
	}
	return &Config{
		RPCEndpoint:  get(EnvRPCEndpoint),
		PrivateKey:   get(EnvPrivateKey),
		EASAddress:   get(EnvEASAddress),
		SchemaUID:    get(EnvSchemaUID),
		PinataKey:    get(EnvPinataKey),
		PinataSecret: get(EnvPinataSecret),
		GatewayBase:  get(EnvGatewayBase),
		NFTAddress:   get(EnvNFTAddress),
		Recipient:    get(EnvRecipient),
	}
}

// ValidateAttestation checks the options the attestation step needs.
func (c *Config) ValidateAttestation() error {
	return firstMissing(map[string]string{
		EnvRPCEndpoint: c.RPCEndpoint,
		EnvPrivateKey:  c.PrivateKey,
		EnvEASAddress:  c.EASAddress,
		EnvSchemaUID:   c.SchemaUID,
	}, EnvRPCEndpoint, EnvPrivateKey, EnvEASAddress, EnvSchemaUID)
}

// ValidatePinning checks the options the pinning step needs.
func (c *Config) ValidatePinning() error {
	return firstMissing(map[string]string{
		EnvPinataKey:    c.PinataKey,
		EnvPinataSecret: c.PinataSecret,
		EnvGatewayBase:  c.GatewayBase,
	}, EnvPinataKey, EnvPinataSecret, EnvGatewayBase)
}

// ValidateMint checks the connection parameters the mint step needs.
func (c *Config) ValidateMint() error {
	return firstMissing(map[string]string{
		EnvRPCEndpoint: c.RPCEndpoint,
		EnvPrivateKey:  c.PrivateKey,
		EnvNFTAddress:  c.NFTAddress,
	}, EnvRPCEndpoint, EnvPrivateKey, EnvNFTAddress)
}

// firstMissing reports the first empty option in the given order.
func firstMissing(values map[string]string, order ...string) error {
	for _, name := range order {
		if values[name] == "" {
			return &ConfigError{Option: name}
		}
	}
	return nil
}
