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
	"encoding/json"
	"fmt"
	"os"
)

// recordName is the fixed name field of the persisted attestation record.
const recordName = "AttestationUID"

// AttestationRecord is the single-record local artifact linking a run to its
// attestation.  No history is kept; each run replaces the previous record.
type AttestationRecord struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WriteAttestationRecord overwrites path with a pretty-printed JSON record
// holding the attestation UID.  The UID is written exactly as received.
func WriteAttestationRecord(path, uid string) error {
	data, err := json.MarshalIndent(AttestationRecord{Name: recordName, Value: uid}, "", "  ")
	if err != nil {
		return fmt.Errorf("workflow: encode attestation record: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("workflow: write attestation record: %w", err)
	}
	return nil
}

// ReadAttestationRecord reads back a previously persisted record.
func ReadAttestationRecord(path string) (*AttestationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workflow: read attestation record: %w", err)
	}
	var rec AttestationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("workflow: decode attestation record: %w", err)
	}
	return &rec, nil
}
