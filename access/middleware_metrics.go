package access

import (
	"context"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/kit/metric"
	"github.com/prometheus/client_golang/prometheus"
)

var _ workspace.BucketAccessService = (*AccessMetrics)(nil)

type AccessMetrics struct {
	// RED metrics
	rec *metric.REDClient

	accessService workspace.BucketAccessService
}

// NewAccessMetrics returns a metrics service middleware for the Bucket
// Access Service.
func NewAccessMetrics(reg prometheus.Registerer, s workspace.BucketAccessService) *AccessMetrics {
	return &AccessMetrics{
		rec:           metric.New(reg, "access"),
		accessService: s,
	}
}

func (m *AccessMetrics) ListBucketAccessRequests(ctx context.Context, name string) ([]workspace.BucketAccessRequest, error) {
	rec := m.rec.Record("list_bucket_access_requests")
	reqs, err := m.accessService.ListBucketAccessRequests(ctx, name)
	return reqs, rec(err)
}

func (m *AccessMetrics) UpdateBucketAccess(ctx context.Context, name string, patch workspace.AccessPatch) error {
	rec := m.rec.Record("update_bucket_access")
	err := m.accessService.UpdateBucketAccess(ctx, name, patch)
	return rec(err)
}
