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

import "errors"

// Errors returned by workflow operations.  External-step failures carry one
// of the step sentinels plus the underlying cause; the orchestrator never
// branches on the kind — any failure is terminal for the run.
var (
	ErrMissingConfig      = errors.New("workflow: missing required configuration")
	ErrMissingCredentials = errors.New("workflow: pinning credentials not configured")
	ErrMissingRecipient   = errors.New("workflow: recipient address not configured")
	ErrFileNotFound       = errors.New("workflow: metadata file not found")
	ErrAttestationFailed  = errors.New("workflow: attestation failed")
	ErrUploadFailed       = errors.New("workflow: upload failed")
	ErrMintFailed         = errors.New("workflow: mint failed")
)

// ConfigError names a required configuration option that is absent.  It
// matches ErrMissingConfig under errors.Is.
type ConfigError struct {
	Option string
}

func (e *ConfigError) Error() string {
	return "workflow: missing required configuration: " + e.Option
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// stepError attaches a step sentinel to an underlying cause so callers can
// match the step with errors.Is while diagnostics keep the original error.
type stepError struct {
	kind  error
	cause error
}

// failStep wraps cause with the given step sentinel.  A nil cause returns
// the sentinel itself.
func failStep(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return &stepError{kind: kind, cause: cause}
}

func (e *stepError) Error() string {
	return e.kind.Error() + ": " + e.cause.Error()
}

func (e *stepError) Is(target error) bool {
	return target == e.kind
}

func (e *stepError) Unwrap() error {
	return e.cause
}
