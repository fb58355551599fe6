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

package treenft

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// Errors returned by metadata ledger operations.
var (
	ErrTokenNotFound = errors.New("treenft: token class has never been minted")
	ErrNotAuthorized = errors.New("treenft: caller is not the owning authority")
	ErrEmptyURI      = errors.New("treenft: metadata URI must not be empty")
)

// AuthPolicy decides whether a caller may mutate the ledger.  Abstracting
// the check lets alternate authorization schemes replace the single-owner
// model without touching the metadata bookkeeping.
type AuthPolicy interface {
	Authorize(caller common.Address) error
}

// SingleOwner authorizes exactly one address, mirroring the deployed
// contract's inherited owner check.
type SingleOwner struct {
	Owner common.Address
}

func (p SingleOwner) Authorize(caller common.Address) error {
	if caller != p.Owner {
		return ErrNotAuthorized
	}
	return nil
}

// MetadataLedger mirrors the TreeNFT contract's metadata bookkeeping in
// memory: per-token current URI plus an append-only history, and the global
// base URI alongside them.  It backs dry runs and serves as the reference
// model the contract extension is tested against.
//
// Invariants: a token's history always ends with its current URI, history
// length only grows, and the current URI is never empty once minted.
type MetadataLedger struct {
	mu      sync.RWMutex
	policy  AuthPolicy
	baseURI string
	current map[uint64]string
	history map[uint64][]string
}

// NewMetadataLedger creates an empty ledger guarded by the given policy.
func NewMetadataLedger(policy AuthPolicy, baseURI string) *MetadataLedger {
	return &MetadataLedger{
		policy:  policy,
		baseURI: baseURI,
		current: make(map[uint64]string),
		history: make(map[uint64][]string),
	}
}

// ──────────────────────────────────────────────
//  Mutations (policy-gated)
// ──────────────────────────────────────────────

// Mint records a mint of a token class.  The first mint moves the class
// from unminted to minted; every mint appends the URI to the history.
// Quantity bookkeeping is the ERC-1155 base contract's concern and is not
// tracked here.
func (l *MetadataLedger) Mint(caller common.Address, tokenID, quantity uint64, metadataURI string) error {
	if err := l.policy.Authorize(caller); err != nil {
		return err
	}
	if metadataURI == "" {
		return ErrEmptyURI
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current[tokenID] = metadataURI
	l.history[tokenID] = append(l.history[tokenID], metadataURI)
	return nil
}

// UpdateTokenMetadata advances a minted class to a new URI.  The class must
// already exist; the update appends, never rewrites.
func (l *MetadataLedger) UpdateTokenMetadata(caller common.Address, tokenID uint64, metadataURI string) error {
	if err := l.policy.Authorize(caller); err != nil {
		return err
	}
	if metadataURI == "" {
		return ErrEmptyURI
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.history[tokenID]) == 0 {
		return ErrTokenNotFound
	}
	l.current[tokenID] = metadataURI
	l.history[tokenID] = append(l.history[tokenID], metadataURI)
	return nil
}

// UpdateBaseURI replaces the global base URI.
func (l *MetadataLedger) UpdateBaseURI(caller common.Address, newBaseURI string) error {
	if err := l.policy.Authorize(caller); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseURI = newBaseURI
	return nil
}

// ──────────────────────────────────────────────
//  Reads
// ──────────────────────────────────────────────

// TokenMetadata returns the current URI of a minted class.
func (l *MetadataLedger) TokenMetadata(tokenID uint64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	uri, ok := l.current[tokenID]
	if !ok {
		return "", ErrTokenNotFound
	}
	return uri, nil
}

// MetadataHistory returns a copy of every URI a class has pointed at,
// oldest first.
func (l *MetadataLedger) MetadataHistory(tokenID uint64) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	hist, ok := l.history[tokenID]
	if !ok {
		return nil, ErrTokenNotFound
	}
	out := make([]string, len(hist))
	copy(out, hist)
	return out, nil
}

// URI keeps ERC-1155 semantics: the global base URI, regardless of the
// token argument.
func (l *MetadataLedger) URI(tokenID uint64) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baseURI
}

// ResolveURI is the two-tier resolution rule: a minted class resolves to
// its own current URI; an unminted class falls back to the global base.
func (l *MetadataLedger) ResolveURI(tokenID uint64) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if uri, ok := l.current[tokenID]; ok {
		return uri
	}
	return l.baseURI
}
