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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAttestationRecordFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attestationUID.json")
	require.NoError(t, WriteAttestationRecord(path, "0xabc"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"AttestationUID\",\n  \"value\": \"0xabc\"\n}\n", string(data))
}

func TestWriteAttestationRecordOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attestationUID.json")
	require.NoError(t, WriteAttestationRecord(path, "0xfirst"))
	require.NoError(t, WriteAttestationRecord(path, "0xsecond"))

	rec, err := ReadAttestationRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "AttestationUID", rec.Name)
	assert.Equal(t, "0xsecond", rec.Value)

	// Overwrite, never append or merge.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "0xfirst")
}

func TestReadAttestationRecordMissing(t *testing.T) {
	_, err := ReadAttestationRecord(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
