package mock

import (
	"context"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var _ workspace.BucketAccessService = (*BucketAccessService)(nil)

// BucketAccessService is a mock implementation of a
// workspace.BucketAccessService.
type BucketAccessService struct {
	ListBucketAccessRequestsFn func(ctx context.Context, name string) ([]workspace.BucketAccessRequest, error)
	UpdateBucketAccessFn       func(ctx context.Context, name string, patch workspace.AccessPatch) error
}

// NewBucketAccessService returns a mock BucketAccessService where its
// methods will return zero values.
func NewBucketAccessService() *BucketAccessService {
	return &BucketAccessService{
		ListBucketAccessRequestsFn: func(ctx context.Context, name string) ([]workspace.BucketAccessRequest, error) {
			return nil, nil
		},
		UpdateBucketAccessFn: func(ctx context.Context, name string, patch workspace.AccessPatch) error {
			return nil
		},
	}
}

func (s *BucketAccessService) ListBucketAccessRequests(ctx context.Context, name string) ([]workspace.BucketAccessRequest, error) {
	return s.ListBucketAccessRequestsFn(ctx, name)
}

func (s *BucketAccessService) UpdateBucketAccess(ctx context.Context, name string, patch workspace.AccessPatch) error {
	return s.UpdateBucketAccessFn(ctx, name, patch)
}
