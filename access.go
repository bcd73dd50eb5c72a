package workspace

import (
	"context"
	"time"
)

// BucketAccessRequest is the derived, per-derivation view of one
// workspace's claim on one bucket. At most one of GrantTimestamp and
// DeniedTimestamp is set; both unset means the request is pending.
type BucketAccessRequest struct {
	Workspace        string           `json:"workspace"`
	Bucket           string           `json:"bucket"`
	Permission       BucketPermission `json:"permission"`
	RequestTimestamp *time.Time       `json:"request_timestamp"`
	GrantTimestamp   *time.Time       `json:"grant_timestamp"`
	DeniedTimestamp  *time.Time       `json:"denied_timestamp"`
}

// Pending reports whether the request has neither been granted nor denied.
func (r BucketAccessRequest) Pending() bool {
	return r.GrantTimestamp == nil && r.DeniedTimestamp == nil
}

// AccessRequestUpdate claims access to a bucket for the workspace being
// patched. Claims are idempotent: the first applied timestamp wins and
// repeated claims are no-ops.
type AccessRequestUpdate struct {
	Bucket           string     `json:"bucket"`
	RequestTimestamp *time.Time `json:"request_timestamp,omitempty"`
}

// AccessGrantUpdate records a grant or denial decision for a bucket owned
// by the workspace being patched. Workspace names the grantee, whose
// principal is resolved from its own record. Unlike request claims, grant
// updates overwrite: the latest decision for a (bucket, grantee) pair
// wins. A denied timestamp takes precedence over a grant timestamp when
// both are supplied.
type AccessGrantUpdate struct {
	Workspace        string           `json:"workspace"`
	Bucket           string           `json:"bucket"`
	Permission       BucketPermission `json:"permission,omitempty"`
	RequestTimestamp *time.Time       `json:"request_timestamp,omitempty"`
	GrantTimestamp   *time.Time       `json:"grant_timestamp,omitempty"`
	DeniedTimestamp  *time.Time       `json:"denied_timestamp,omitempty"`
}

// AccessPatch is a batch of additive updates to one workspace's record.
type AccessPatch struct {
	Buckets  []string              `json:"buckets,omitempty"`
	Requests []AccessRequestUpdate `json:"requests,omitempty"`
	Grants   []AccessGrantUpdate   `json:"grants,omitempty"`
}

// BucketAccessService derives consolidated access views and applies access
// patches against the decentralized record store.
type BucketAccessService interface {
	// ListBucketAccessRequests recomputes the deduplicated view of all
	// requests relevant to one workspace: its own outbound requests, other
	// tenants' requests against its discoverable buckets, and implicit
	// requests synthesized for discoverable buckets nobody has asked for.
	// Ordering is insertion order; callers needing determinism must sort.
	ListBucketAccessRequests(ctx context.Context, name string) ([]BucketAccessRequest, error)

	// UpdateBucketAccess applies an access patch to the named workspace's
	// record. The batch is validated up front and rejected whole on the
	// first invalid operation; a committed patch is never half-applied.
	UpdateBucketAccess(ctx context.Context, name string, patch AccessPatch) error
}
