package access

import (
	"context"
	"fmt"
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"go.uber.org/zap"
)

type AccessLogger struct {
	logger        *zap.Logger
	accessService workspace.BucketAccessService
}

// NewAccessLogger returns a logging service middleware for the Bucket
// Access Service.
func NewAccessLogger(log *zap.Logger, s workspace.BucketAccessService) *AccessLogger {
	return &AccessLogger{
		logger:        log,
		accessService: s,
	}
}

var _ workspace.BucketAccessService = (*AccessLogger)(nil)

func (l *AccessLogger) ListBucketAccessRequests(ctx context.Context, name string) (reqs []workspace.BucketAccessRequest, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to derive access requests for %v", name)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("access requests derived", zap.Int("count", len(reqs)), dur)
	}(time.Now())
	return l.accessService.ListBucketAccessRequests(ctx, name)
}

func (l *AccessLogger) UpdateBucketAccess(ctx context.Context, name string, patch workspace.AccessPatch) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to patch bucket access for %v", name)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("bucket access patch", dur)
	}(time.Now())
	return l.accessService.UpdateBucketAccess(ctx, name, patch)
}
