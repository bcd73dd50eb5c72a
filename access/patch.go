package access

import (
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

// The write path has two deliberately separate code paths: request claims
// are monotonic (first write wins, repeats are no-ops) while grant
// decisions are plain overwrites (last write wins). Collapsing them into
// one parameterized merge would blur the differing guarantees.

// addBucket returns buckets with a discoverable bucket named name
// appended, unless an entry with that name already exists.
func addBucket(buckets []workspace.Bucket, name string) []workspace.Bucket {
	for _, b := range buckets {
		if b.Name == name {
			return buckets
		}
	}
	return append(buckets, workspace.Bucket{Name: name, Discoverable: true})
}

// upsertRequest claims access to a bucket. If a request for the bucket
// already exists its timestamp is left untouched, making repeated claims
// safe to retry.
func upsertRequest(requests []workspace.AccessRequest, bucket string, requestedAt *time.Time) []workspace.AccessRequest {
	for _, r := range requests {
		if r.BucketName == bucket {
			return requests
		}
	}
	return append(requests, workspace.AccessRequest{
		BucketName:  bucket,
		Reason:      "requesting access",
		RequestedAt: requestedAt,
	})
}

// upsertGrant records a grant decision, overwriting any previous decision
// for the same (bucket, grantee) pair.
func upsertGrant(grants []workspace.AccessGrant, g workspace.AccessGrant) []workspace.AccessGrant {
	for i := range grants {
		if grants[i].BucketName == g.BucketName && grants[i].Grantee == g.Grantee {
			grants[i] = g
			return grants
		}
	}
	return append(grants, g)
}

// buildGrant converts a grant update into the stored grant entry for the
// resolved grantee principal. A denied timestamp wins over a grant
// timestamp: the stored permission becomes None and the stored time is
// the denial time.
func buildGrant(upd workspace.AccessGrantUpdate, grantee string) (workspace.AccessGrant, error) {
	g := workspace.AccessGrant{
		BucketName:  upd.Bucket,
		Grantee:     grantee,
		RequestedAt: upd.RequestTimestamp,
	}

	switch {
	case upd.DeniedTimestamp != nil:
		g.Permission = workspace.PermissionNone
		g.GrantedAt = upd.DeniedTimestamp
	case upd.GrantTimestamp != nil:
		g.Permission = upd.Permission
		if g.Permission == "" {
			g.Permission = workspace.PermissionReadWrite
		}
		if !g.Permission.Valid() {
			return workspace.AccessGrant{}, ErrInvalidPermission(string(upd.Permission))
		}
		g.GrantedAt = upd.GrantTimestamp
	default:
		return workspace.AccessGrant{}, ErrGrantWithoutTimestamp(upd.Bucket)
	}

	return g, nil
}
