// Package access implements the bucket access reconciliation engine: it
// derives, on every read, a consistent deduplicated view of bucket access
// requests and grants from the flat set of per-workspace storage records,
// and applies additive patches to that decentralized state on writes.
package access

import (
	"context"
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"go.uber.org/zap"
)

// Service derives access views and builds record patches. It owns no
// state: every read recomputes the view from a fresh snapshot of the
// record store, so partially committed writes heal on the next
// derivation.
type Service struct {
	store    workspace.StorageRecordService
	resolver NameResolver
	logger   *zap.Logger

	now func() time.Time
}

var _ workspace.BucketAccessService = (*Service)(nil)

// NewService constructs an access service on top of a record store.
func NewService(logger *zap.Logger, store workspace.StorageRecordService, resolver NameResolver) *Service {
	return &Service{
		store:    store,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// ListBucketAccessRequests recomputes the consolidated request view for
// one workspace. Individual malformed entries are skipped, never fatal:
// a partial view beats no view.
func (s *Service) ListBucketAccessRequests(ctx context.Context, name string) ([]workspace.BucketAccessRequest, error) {
	rec, err := s.store.FindRecord(ctx, name)
	if err != nil {
		if workspace.ErrorCode(err) == workspace.ENotFound {
			return nil, ErrWorkspaceNotFound(name)
		}
		return nil, err
	}

	principal := rec.Spec.Principal
	if principal == "" {
		// The target can still be derived for by name convention.
		principal = s.resolver.Principal(name)
	}

	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	tagged := extractRequests(records, principal, name, rec.DiscoverableBuckets(), s.resolver, s.logger)
	applyGrants(tagged, records, s.logger)

	out := make([]workspace.BucketAccessRequest, 0, len(tagged))
	for _, t := range tagged {
		out = append(out, t.request)
	}
	return out, nil
}

// UpdateBucketAccess validates and applies an access patch against the
// named workspace's record. The whole batch is rejected on the first
// invalid operation; nothing is written until every operation has been
// folded into the new spec, which is then submitted as one merge-patch
// carrying the full resulting lists.
//
// Grants are a two-step saga: the grantee's record is read first to
// resolve its principal, then the grantor's record is patched. A crash in
// between leaves no partial state on either record.
func (s *Service) UpdateBucketAccess(ctx context.Context, name string, patch workspace.AccessPatch) error {
	rec, err := s.store.FindRecord(ctx, name)
	if err != nil {
		if workspace.ErrorCode(err) == workspace.ENotFound {
			return ErrWorkspaceNotFound(name)
		}
		return err
	}

	buckets := append([]workspace.Bucket(nil), rec.Spec.Buckets...)
	requests := append([]workspace.AccessRequest(nil), rec.Spec.AccessRequests...)
	grants := append([]workspace.AccessGrant(nil), rec.Spec.AccessGrants...)

	for _, b := range patch.Buckets {
		if !workspace.IsValidBucketName(b) {
			return ErrInvalidBucketName(b)
		}
		buckets = addBucket(buckets, b)
	}

	for _, r := range patch.Requests {
		if !workspace.IsValidBucketName(r.Bucket) {
			return ErrInvalidBucketName(r.Bucket)
		}
		requestedAt := r.RequestTimestamp
		if requestedAt == nil {
			t := s.now().UTC()
			requestedAt = &t
		}
		requests = upsertRequest(requests, r.Bucket, requestedAt)
	}

	for _, g := range patch.Grants {
		if !workspace.IsValidBucketName(g.Bucket) {
			return ErrInvalidBucketName(g.Bucket)
		}

		grantee, err := s.resolveGrantee(ctx, g.Workspace)
		if err != nil {
			return err
		}

		grant, err := buildGrant(g, grantee)
		if err != nil {
			return err
		}
		grants = upsertGrant(grants, grant)
	}

	return s.store.PatchRecord(ctx, name, workspace.RecordPatch{
		Buckets:        &buckets,
		AccessRequests: &requests,
		AccessGrants:   &grants,
	})
}

// resolveGrantee reads the grantee workspace's own record to obtain its
// principal. Grants are keyed by principal so that later renames of the
// grantee workspace do not orphan them.
func (s *Service) resolveGrantee(ctx context.Context, name string) (string, error) {
	rec, err := s.store.FindRecord(ctx, name)
	if err != nil {
		if workspace.ErrorCode(err) == workspace.ENotFound {
			return "", ErrInvalidGrantee(name)
		}
		return "", err
	}
	if rec.Spec.Principal == "" {
		return "", ErrMissingPrincipal(name)
	}
	return rec.Spec.Principal, nil
}
