package workspace

import (
	"context"
	"strings"
	"time"
)

// Bucket is a bucket owned by a workspace. Discoverable buckets are
// eligible to generate implicit access requests for other tenants.
type Bucket struct {
	Name         string `json:"name"`
	Discoverable bool   `json:"discoverable,omitempty"`
}

// AccessRequest is an outbound request stored on the requesting tenant's
// own record. The requester identity is implicit: the record's principal.
// Entries without a RequestedAt timestamp never surface in derived views.
type AccessRequest struct {
	BucketName  string     `json:"bucketName"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt *time.Time `json:"requestedAt,omitempty"`
}

// AccessGrant is a grant (or denial) decision stored on the granting
// tenant's own record, naming the grantee principal. A denial is a grant
// with permission None. Entries without a GrantedAt timestamp never
// surface in derived views.
type AccessGrant struct {
	BucketName  string           `json:"bucketName"`
	Grantee     string           `json:"grantee"`
	Permission  BucketPermission `json:"permission"`
	GrantedAt   *time.Time       `json:"grantedAt,omitempty"`
	RequestedAt *time.Time       `json:"requestedAt,omitempty"`
}

// RecordSpec is the mutable portion of a storage record. Each tenant's
// record holds only requests it issued and grants it issued for its own
// buckets; cross-tenant views are derived, never stored.
type RecordSpec struct {
	Principal      string          `json:"principal,omitempty"`
	Buckets        []Bucket        `json:"buckets,omitempty"`
	AccessRequests []AccessRequest `json:"accessRequests,omitempty"`
	AccessGrants   []AccessGrant   `json:"accessGrants,omitempty"`
}

// StorageRecord is the per-workspace document backing all derivations.
// One record exists per workspace and is mutated only via patches to that
// workspace's record.
type StorageRecord struct {
	Name              string     `json:"name"`
	CreationTimestamp *time.Time `json:"creationTimestamp,omitempty"`
	Spec              RecordSpec `json:"spec"`
}

// DiscoverableBuckets returns the names of the record's discoverable
// buckets.
func (r *StorageRecord) DiscoverableBuckets() []string {
	var names []string
	for _, b := range r.Spec.Buckets {
		if b.Discoverable {
			names = append(names, b.Name)
		}
	}
	return names
}

// RecordPatch is a merge-patch against a record spec: nil fields are left
// untouched, non-nil fields replace. List fields are replaced wholesale,
// so producers must always submit the full resulting list, not a delta.
type RecordPatch struct {
	Principal      *string          `json:"principal,omitempty"`
	Buckets        *[]Bucket        `json:"buckets,omitempty"`
	AccessRequests *[]AccessRequest `json:"accessRequests,omitempty"`
	AccessGrants   *[]AccessGrant   `json:"accessGrants,omitempty"`
}

// StorageRecordService is the record store capability consumed by the
// reconciliation engine. Implementations provide per-record consistency
// only; there is no cross-record atomicity.
type StorageRecordService interface {
	// ListRecords returns a snapshot of every record.
	ListRecords(ctx context.Context) ([]StorageRecord, error)

	// FindRecord returns the record for one workspace.
	FindRecord(ctx context.Context, name string) (*StorageRecord, error)

	// CreateRecord stores a new record, failing on conflict.
	CreateRecord(ctx context.Context, r *StorageRecord) error

	// PatchRecord applies a merge-patch to one workspace's record.
	PatchRecord(ctx context.Context, name string, patch RecordPatch) error

	// DeleteRecord removes a record.
	DeleteRecord(ctx context.Context, name string) error
}

// IsValidBucketName reports whether name is a usable S3 bucket name:
// 3-63 characters of lowercase letters, digits, dots and hyphens, not
// starting or ending with a dot or hyphen, and without "..", ".-" or "-."
// sequences.
func IsValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}
	for _, c := range name {
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '.') {
			return false
		}
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") ||
		strings.HasSuffix(name, ".") || strings.HasSuffix(name, "-") {
		return false
	}
	return !strings.Contains(name, "..") &&
		!strings.Contains(name, ".-") &&
		!strings.Contains(name, "-.")
}
