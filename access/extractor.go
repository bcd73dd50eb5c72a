package access

import (
	workspace "github.com/EOEPCA/rm-workspace-api"
	"go.uber.org/zap"
)

// taggedRequest pairs a derived request with the principal that owns it.
// The tag, not the workspace name, is what grants are matched against:
// names can change, principals cannot.
type taggedRequest struct {
	principal string
	request   workspace.BucketAccessRequest
}

type pairKey struct {
	principal string
	bucket    string
}

// extractRequests derives the full set of requests relevant to one target
// workspace from a snapshot of all records:
//
//  1. explicit requests: every timestamped request issued by the target
//     itself, plus every timestamped request from any tenant against one
//     of the target's discoverable buckets. The permission is inferred
//     from the request's free-text reason.
//  2. implicit requests: one synthesized ReadWrite entry per discoverable
//     bucket that no explicit request covers.
//
// The result is deduplicated per (principal, bucket) and keeps insertion
// order. Records without a principal cannot participate in identity
// matching and are skipped.
func extractRequests(records []workspace.StorageRecord, targetPrincipal, targetName string, discoverable []string, resolver NameResolver, logger *zap.Logger) []taggedRequest {
	discoverableSet := make(map[string]struct{}, len(discoverable))
	for _, b := range discoverable {
		discoverableSet[b] = struct{}{}
	}

	var out []taggedRequest
	seen := map[pairKey]struct{}{}
	coveredBuckets := map[string]struct{}{}

	for i := range records {
		r := &records[i]
		if r.Spec.Principal == "" {
			logger.Warn("skipping storage record without principal",
				zap.String("record", r.Name))
			continue
		}

		for _, req := range r.Spec.AccessRequests {
			if req.RequestedAt == nil {
				logger.Debug("discarding access request without timestamp",
					zap.String("record", r.Name),
					zap.String("bucket", req.BucketName))
				continue
			}

			_, targetsDiscoverable := discoverableSet[req.BucketName]
			if r.Spec.Principal != targetPrincipal && !targetsDiscoverable {
				continue
			}

			key := pairKey{principal: r.Spec.Principal, bucket: req.BucketName}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			coveredBuckets[req.BucketName] = struct{}{}

			out = append(out, taggedRequest{
				principal: r.Spec.Principal,
				request: workspace.BucketAccessRequest{
					Workspace:        resolver.WorkspaceName(r.Spec.Principal),
					Bucket:           req.BucketName,
					Permission:       workspace.InferBucketPermission(req.Reason),
					RequestTimestamp: req.RequestedAt,
				},
			})
		}
	}

	// Discoverable buckets nobody asked for yet still surface, so the
	// owner sees what would be shared if someone did.
	for _, b := range discoverable {
		if _, ok := coveredBuckets[b]; ok {
			continue
		}
		coveredBuckets[b] = struct{}{}

		out = append(out, taggedRequest{
			principal: targetPrincipal,
			request: workspace.BucketAccessRequest{
				Workspace:  targetName,
				Bucket:     b,
				Permission: workspace.PermissionReadWrite,
			},
		})
	}

	return out
}
