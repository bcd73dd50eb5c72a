package workspace

import "strings"

// BucketPermission is the level of access granted on a bucket.
type BucketPermission string

const (
	// PermissionNone represents a denied request. It is stored rather than
	// removing the grant so that denial remains visible to the requester.
	PermissionNone BucketPermission = "None"

	PermissionReadOnly  BucketPermission = "ReadOnly"
	PermissionWriteOnly BucketPermission = "WriteOnly"
	PermissionReadWrite BucketPermission = "ReadWrite"
)

// Valid reports whether p is one of the closed set of permissions.
func (p BucketPermission) Valid() bool {
	switch p {
	case PermissionNone, PermissionReadOnly, PermissionWriteOnly, PermissionReadWrite:
		return true
	}
	return false
}

// Granted reports whether p represents any level of granted access.
func (p BucketPermission) Granted() bool {
	return p.Valid() && p != PermissionNone
}

// ParseBucketPermission normalizes a stored permission string. The second
// return value reports whether the input was recognized; unrecognized
// values degrade to PermissionNone so that one bad entry never aborts a
// derivation. Callers should log when ok is false.
func ParseBucketPermission(s string) (BucketPermission, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return PermissionNone, s != ""
	case "readonly", "read-only":
		return PermissionReadOnly, true
	case "writeonly", "write-only":
		return PermissionWriteOnly, true
	case "readwrite", "read-write":
		return PermissionReadWrite, true
	}
	return PermissionNone, false
}

// InferBucketPermission derives the requested permission from the free-text
// reason attached to an access request. Precedence is ReadOnly over
// WriteOnly over the ReadWrite fallback.
//
// This heuristic exists because requests carry no structured permission
// field; keep it behind this one function so a structured field can replace
// it without touching the extraction path.
func InferBucketPermission(reason string) BucketPermission {
	r := strings.ToLower(reason)
	switch {
	case strings.Contains(r, "readonly"), strings.Contains(r, "read-only"):
		return PermissionReadOnly
	case strings.Contains(r, "writeonly"), strings.Contains(r, "write-only"):
		return PermissionWriteOnly
	}
	return PermissionReadWrite
}
