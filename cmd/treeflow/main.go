// Copyright 2024 The treeflow Authors
// This file is part of treeflow.
//
// treeflow is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// treeflow is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with treeflow. If not, see <http://www.gnu.org/licenses/>.

// treeflow runs the tree attestation and NFT minting workflow.
//
// One invocation performs the full four-step sequence: attest the tree on
// the attestation registry, persist the attestation UID to a local record
// file, pin the metadata file to IPFS, and mint the ERC-1155 token pointing
// at the pinned metadata.  The run is fail-fast — the first error aborts the
// remaining steps and nothing already completed is rolled back.
//
// Usage:
//
//	treeflow run [--dryrun] [--recipient <address>] [--tokenid <n>] ...
//	treeflow info [--token <n>]
//
// Connection settings come from flags or the environment (RPC_URL,
// EAS_CONTRACT_ADDRESS, TREENFT_CONTRACT_ADDRESS, SCHEMA_UID,
// PINATA_API_KEY, PINATA_API_SECRET, PINATA_GATEWAY_BASE,
// RECIPIENT_ADDRESS).  The signing key is read from SIGNER_PRIVATE_KEY
// only, never from a flag.
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/eas"
	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/contracts/treenft"
	"github.com/AtsKotzen/Tree-Attestation-and-NFT-Minting-Workflow/workflow"
)

// dryRunAuthority is the ledger owner used when no signing key is involved.
var dryRunAuthority = common.HexToAddress("0x0000000000000000000000000000000000000001")

var (
	app = cli.NewApp()

	// Connection flags
	rpcFlag = cli.StringFlag{
		Name:   "rpc",
		Usage:  "Ethereum JSON-RPC endpoint (e.g. https://sepolia.base.org)",
		EnvVar: workflow.EnvRPCEndpoint,
	}
	easFlag = cli.StringFlag{
		Name:   "eas",
		Usage:  "Deployed attestation registry contract address",
		EnvVar: workflow.EnvEASAddress,
	}
	contractFlag = cli.StringFlag{
		Name:   "contract",
		Usage:  "Deployed TreeNFT contract address",
		EnvVar: workflow.EnvNFTAddress,
	}
	schemaFlag = cli.StringFlag{
		Name:   "schema",
		Usage:  "Registered tree schema UID",
		EnvVar: workflow.EnvSchemaUID,
	}
	gatewayFlag = cli.StringFlag{
		Name:   "gateway",
		Usage:  "IPFS gateway base prepended to the pinned content identifier",
		EnvVar: workflow.EnvGatewayBase,
	}
	pinEndpointFlag = cli.StringFlag{
		Name:  "pin-endpoint",
		Usage: "Pinning service endpoint",
		Value: workflow.DefaultPinataEndpoint,
	}

	// Run parameter flags
	recipientFlag = cli.StringFlag{
		Name:   "recipient",
		Usage:  "Token recipient address",
		EnvVar: workflow.EnvRecipient,
	}
	tokenIDFlag = cli.Uint64Flag{
		Name:  "tokenid",
		Usage: "ERC-1155 token class to mint",
		Value: 1,
	}
	quantityFlag = cli.Uint64Flag{
		Name:  "quantity",
		Usage: "Number of units to mint",
		Value: 1,
	}
	metaFileFlag = cli.StringFlag{
		Name:  "metafile",
		Usage: "Local metadata file to pin",
		Value: "metadataNFTree.json",
	}
	recordFileFlag = cli.StringFlag{
		Name:  "recordfile",
		Usage: "Local file the attestation UID record is written to",
		Value: "attestationUID.json",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dryrun",
		Usage: "Run the full sequence against in-memory collaborators (no node, no uploads)",
	}

	// Attestation field flags
	treeIDFlag = cli.Uint64Flag{
		Name:  "treeid",
		Usage: "Tree identifier attested on-chain",
		Value: 1,
	}
	speciesFlag = cli.StringFlag{
		Name:  "species",
		Usage: "Tree species",
		Value: "Handroanthus albus",
	}
	regionFlag = cli.StringFlag{
		Name:  "region",
		Usage: "Planting region",
		Value: "unspecified",
	}
	plantedFlag = cli.StringFlag{
		Name:  "planted",
		Usage: "Planting date (ISO-8601); defaults to today",
	}
	geoTagsFlag = cli.StringFlag{
		Name:  "geotags",
		Usage: "Comma-separated geolocation tags",
	}
	latFlag = cli.Int64Flag{
		Name:  "lat",
		Usage: "Latitude in microdegrees",
	}
	lonFlag = cli.Int64Flag{
		Name:  "lon",
		Usage: "Longitude in microdegrees",
	}
	revocableFlag = cli.BoolFlag{
		Name:  "revocable",
		Usage: "Mark the attestation revocable",
	}
	expirationFlag = cli.Uint64Flag{
		Name:  "expiration",
		Usage: "Attestation expiration as a unix timestamp (0 = never)",
	}

	// Info flags
	tokenFlag = cli.Uint64Flag{
		Name:  "token",
		Usage: "Token class to inspect",
	}
)

func init() {
	app.Name = "treeflow"
	app.Usage = "Tree attestation and NFT minting workflow"
	app.Version = "0.2.0"
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Execute the attest → record → pin → mint sequence",
			Action: run,
			Flags: []cli.Flag{
				rpcFlag, easFlag, contractFlag, schemaFlag, gatewayFlag, pinEndpointFlag,
				recipientFlag, tokenIDFlag, quantityFlag, metaFileFlag, recordFileFlag, dryRunFlag,
				treeIDFlag, speciesFlag, regionFlag, plantedFlag, geoTagsFlag, latFlag, lonFlag,
				revocableFlag, expirationFlag,
			},
		},
		{
			Name:   "info",
			Usage:  "Print TreeNFT contract state",
			Action: info,
			Flags:  []cli.Flag{rpcFlag, contractFlag, tokenFlag},
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configFrom assembles the workflow configuration: flag values (which fall
// back to the environment) for everything except the signing key, which is
// read from the environment only.
func configFrom(ctx *cli.Context) *workflow.Config {
	cfg := workflow.ConfigFromEnv()
	cfg.RPCEndpoint = ctx.String(rpcFlag.Name)
	cfg.EASAddress = ctx.String(easFlag.Name)
	cfg.NFTAddress = ctx.String(contractFlag.Name)
	cfg.SchemaUID = ctx.String(schemaFlag.Name)
	cfg.GatewayBase = ctx.String(gatewayFlag.Name)
	cfg.Recipient = ctx.String(recipientFlag.Name)
	return cfg
}

func paramsFrom(ctx *cli.Context, cfg *workflow.Config) workflow.Params {
	params := workflow.Params{
		TokenID:      ctx.Uint64(tokenIDFlag.Name),
		Quantity:     ctx.Uint64(quantityFlag.Name),
		MetadataFile: ctx.String(metaFileFlag.Name),
		RecordFile:   ctx.String(recordFileFlag.Name),
	}
	if cfg.Recipient != "" {
		params.Recipient = common.HexToAddress(cfg.Recipient)
	}
	return params
}

func requestFrom(ctx *cli.Context, cfg *workflow.Config, planter common.Address) *workflow.AttestationRequest {
	planted := ctx.String(plantedFlag.Name)
	if planted == "" {
		planted = time.Now().UTC().Format("2006-01-02")
	}
	var tags []string
	if raw := ctx.String(geoTagsFlag.Name); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tags = append(tags, strings.TrimSpace(tag))
		}
	}
	return &workflow.AttestationRequest{
		SchemaUID: common.HexToHash(cfg.SchemaUID),
		Recipient: planter,
		Tree: workflow.TreeAttestation{
			TreeID:      new(big.Int).SetUint64(ctx.Uint64(treeIDFlag.Name)),
			Planter:     planter,
			Species:     ctx.String(speciesFlag.Name),
			GeoTags:     tags,
			Region:      ctx.String(regionFlag.Name),
			PlantedAt:   planted,
			LatitudeE6:  big.NewInt(ctx.Int64(latFlag.Name)),
			LongitudeE6: big.NewInt(ctx.Int64(lonFlag.Name)),
		},
		Revocable:  ctx.Bool(revocableFlag.Name),
		Expiration: ctx.Uint64(expirationFlag.Name),
	}
}

func run(ctx *cli.Context) error {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StreamHandler(os.Stderr, log.TerminalFormat(true))))

	cfg := configFrom(ctx)
	params := paramsFrom(ctx, cfg)

	var (
		attester workflow.Attester
		pinner   workflow.Pinner
		minter   workflow.Minter
		planter  common.Address
	)

	if ctx.Bool(dryRunFlag.Name) {
		gateway := cfg.GatewayBase
		if gateway == "" {
			gateway = "ipfs://"
		}
		planter = dryRunAuthority
		attester = workflow.DryRunAttester{}
		pinner = workflow.DryRunPinner{GatewayBase: gateway}
		minter = workflow.NewLedgerMinter(
			treenft.NewMetadataLedger(treenft.SingleOwner{Owner: dryRunAuthority}, gateway),
			dryRunAuthority,
		)
		log.Info("Dry run: using in-memory collaborators")
	} else {
		if err := cfg.ValidateAttestation(); err != nil {
			return err
		}
		if err := cfg.ValidatePinning(); err != nil {
			return err
		}
		if err := cfg.ValidateMint(); err != nil {
			return err
		}

		cctx := context.Background()
		client, err := ethclient.DialContext(cctx, cfg.RPCEndpoint)
		if err != nil {
			return fmt.Errorf("dial %s: %w", cfg.RPCEndpoint, err)
		}
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return fmt.Errorf("parse signing key: %w", err)
		}
		chainID, err := client.ChainID(cctx)
		if err != nil {
			return fmt.Errorf("read chain id: %w", err)
		}
		opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return fmt.Errorf("build transactor: %w", err)
		}
		planter = opts.From

		registry, err := eas.NewRegistry(opts, common.HexToAddress(cfg.EASAddress), client)
		if err != nil {
			return err
		}
		nft, err := treenft.NewTreeNFT(opts, common.HexToAddress(cfg.NFTAddress), client)
		if err != nil {
			return err
		}
		attester = workflow.NewEASAttester(registry)
		pinner = workflow.NewPinataPinner(nil, ctx.String(pinEndpointFlag.Name), cfg.GatewayBase, cfg.PinataKey, cfg.PinataSecret)
		minter = workflow.NewContractMinter(nft, client)

		log.Info("Workflow starting",
			"rpc", cfg.RPCEndpoint,
			"eas", cfg.EASAddress,
			"contract", cfg.NFTAddress,
			"signer", planter.Hex(),
		)
	}

	runner := workflow.NewRunner(attester, pinner, minter, requestFrom(ctx, cfg, planter), params)
	result, err := runner.Run(context.Background())
	if err != nil {
		log.Error("Workflow failed", "err", err)
		return err
	}

	log.Info("Workflow complete",
		"uid", result.AttestationUID,
		"metadata", result.MetadataURL,
		"tx", result.Mint.TxHash.Hex(),
	)
	return nil
}

func info(ctx *cli.Context) error {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StreamHandler(os.Stderr, log.TerminalFormat(true))))

	cfg := configFrom(ctx)
	if cfg.NFTAddress == "" {
		return &workflow.ConfigError{Option: workflow.EnvNFTAddress}
	}
	if cfg.RPCEndpoint == "" {
		return &workflow.ConfigError{Option: workflow.EnvRPCEndpoint}
	}

	cctx := context.Background()
	client, err := ethclient.DialContext(cctx, cfg.RPCEndpoint)
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.RPCEndpoint, err)
	}
	nft, err := treenft.NewTreeNFT(nil, common.HexToAddress(cfg.NFTAddress), client)
	if err != nil {
		return err
	}

	owner, err := nft.Owner()
	if err != nil {
		return fmt.Errorf("read owner: %w", err)
	}
	base, err := nft.URI(new(big.Int))
	if err != nil {
		return fmt.Errorf("read base uri: %w", err)
	}
	log.Info("TreeNFT contract", "address", cfg.NFTAddress, "owner", owner.Hex(), "baseURI", base)

	if ctx.IsSet(tokenFlag.Name) {
		id := new(big.Int).SetUint64(ctx.Uint64(tokenFlag.Name))
		uri, err := nft.GetTokenMetadata(id)
		if err != nil {
			return fmt.Errorf("read token metadata: %w", err)
		}
		history, err := nft.GetMetadataHistory(id)
		if err != nil {
			return fmt.Errorf("read metadata history: %w", err)
		}
		log.Info("Token metadata", "token", id, "current", uri, "revisions", len(history))
		for i, u := range history {
			log.Info("Metadata revision", "index", i, "uri", u)
		}
	}
	return nil
}
