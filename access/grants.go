package access

import (
	workspace "github.com/EOEPCA/rm-workspace-api"
	"go.uber.org/zap"
)

// applyGrants folds every recorded grant decision into the extracted
// requests, matching by (bucket, grantee principal). Grants without a
// matching request are dropped: a grant attaches to a known request or
// implicit-eligibility entry, it never invents one.
//
// A grant with any permission other than None sets the grant timestamp; a
// None permission is a denial and sets the denied timestamp instead. The
// two are mutually exclusive for a single update. Unrecognized permission
// strings degrade to None with a warning.
func applyGrants(requests []taggedRequest, records []workspace.StorageRecord, logger *zap.Logger) {
	for i := range records {
		r := &records[i]
		for _, g := range r.Spec.AccessGrants {
			if g.GrantedAt == nil {
				logger.Debug("discarding access grant without timestamp",
					zap.String("record", r.Name),
					zap.String("bucket", g.BucketName))
				continue
			}
			if g.Grantee == "" || g.BucketName == "" {
				continue
			}

			perm, ok := workspace.ParseBucketPermission(string(g.Permission))
			if !ok {
				logger.Warn("unrecognized permission on access grant, treating as denied",
					zap.String("record", r.Name),
					zap.String("bucket", g.BucketName),
					zap.String("permission", string(g.Permission)))
			}

			for j := range requests {
				req := &requests[j]
				if req.request.Bucket != g.BucketName || req.principal != g.Grantee {
					continue
				}

				if req.request.RequestTimestamp == nil {
					if g.RequestedAt != nil {
						req.request.RequestTimestamp = g.RequestedAt
					} else {
						req.request.RequestTimestamp = g.GrantedAt
					}
				}

				req.request.Permission = perm
				if perm.Granted() {
					req.request.GrantTimestamp = g.GrantedAt
					req.request.DeniedTimestamp = nil
				} else {
					req.request.DeniedTimestamp = g.GrantedAt
					req.request.GrantTimestamp = nil
				}
				break
			}
		}
	}
}
