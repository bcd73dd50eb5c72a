package tenant

import (
	"fmt"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var (
	// ErrNameRequired is returned when a workspace operation names no
	// workspace.
	ErrNameRequired = &workspace.Error{
		Code: workspace.EInvalid,
		Msg:  "workspace name is required",
	}

	// ErrNameNotPrefixed is returned for workspace names missing the
	// configured prefix.
	ErrNameNotPrefixed = &workspace.Error{
		Code: workspace.EUnprocessableEntity,
		Msg:  "workspace name does not carry the expected prefix",
	}
)

// ErrRecordNotFound signals that no storage record exists for a workspace.
func ErrRecordNotFound(name string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.ENotFound,
		Msg:  fmt.Sprintf("storage record for workspace %q not found", name),
	}
}

// RecordAlreadyExistsError signals a create against an existing workspace.
func RecordAlreadyExistsError(name string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EConflict,
		Msg:  fmt.Sprintf("workspace %q already exists", name),
	}
}

// ErrCorruptRecord wraps a record that cannot be decoded from storage.
func ErrCorruptRecord(err error) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInternal,
		Msg:  "stored workspace record is corrupt",
		Err:  err,
	}
}

// ErrUnprocessableRecord wraps a record that cannot be encoded for storage.
func ErrUnprocessableRecord(err error) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EUnprocessableEntity,
		Msg:  "workspace record could not be encoded",
		Err:  err,
	}
}

// ErrInternalServiceError wraps unexpected storage failures.
func ErrInternalServiceError(err error) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInternal,
		Err:  err,
	}
}
