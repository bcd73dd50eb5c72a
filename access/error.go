package access

import (
	"fmt"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

// ErrWorkspaceNotFound is returned when the target workspace has no
// storage record.
func ErrWorkspaceNotFound(name string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.ENotFound,
		Msg:  fmt.Sprintf("workspace %s not found", name),
	}
}

// ErrInvalidGrantee is returned when a grant names a grantee workspace
// without a storage record.
func ErrInvalidGrantee(name string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInvalid,
		Msg:  fmt.Sprintf("invalid workspace %s", name),
	}
}

// ErrMissingPrincipal is returned when the grantee's record exists but
// carries no principal to grant to.
func ErrMissingPrincipal(name string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInvalid,
		Msg:  fmt.Sprintf("workspace %s has no principal", name),
	}
}

// ErrInvalidBucketName is returned for bucket names that fail S3 naming
// rules.
func ErrInvalidBucketName(name string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInvalid,
		Msg:  fmt.Sprintf("invalid bucket name %q", name),
	}
}

// ErrInvalidPermission is returned for permissions outside the closed set.
func ErrInvalidPermission(p string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInvalid,
		Msg:  fmt.Sprintf("invalid permission %q", p),
	}
}

// ErrGrantWithoutTimestamp is returned for a grant update carrying neither
// a grant nor a denied timestamp.
func ErrGrantWithoutTimestamp(bucket string) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInvalid,
		Msg:  fmt.Sprintf("grant update for bucket %s carries no timestamp", bucket),
	}
}

// ErrInternalServiceError is used when the error comes from an internal
// system.
func ErrInternalServiceError(err error) *workspace.Error {
	return &workspace.Error{
		Code: workspace.EInternal,
		Err:  err,
	}
}
