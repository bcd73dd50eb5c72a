package tenant

import (
	"context"
	"fmt"
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"go.uber.org/zap"
)

type WorkspaceLogger struct {
	logger           *zap.Logger
	workspaceService workspace.WorkspaceService
}

// NewWorkspaceLogger returns a logging service middleware for the
// Workspace Service.
func NewWorkspaceLogger(log *zap.Logger, s workspace.WorkspaceService) *WorkspaceLogger {
	return &WorkspaceLogger{
		logger:           log,
		workspaceService: s,
	}
}

var _ workspace.WorkspaceService = (*WorkspaceLogger)(nil)

func (l *WorkspaceLogger) CreateWorkspace(ctx context.Context, create workspace.WorkspaceCreate) (ws *workspace.Workspace, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			l.logger.Debug("failed to create workspace", zap.Error(err), dur)
			return
		}
		l.logger.Debug("workspace created", zap.String("name", ws.Name), dur)
	}(time.Now())
	return l.workspaceService.CreateWorkspace(ctx, create)
}

func (l *WorkspaceLogger) FindWorkspace(ctx context.Context, name string) (ws *workspace.Workspace, err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to find workspace %v", name)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("workspace found", zap.String("status", string(ws.Status)), dur)
	}(time.Now())
	return l.workspaceService.FindWorkspace(ctx, name)
}

func (l *WorkspaceLogger) UpdateWorkspace(ctx context.Context, name string, upd workspace.WorkspaceUpdate) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to update workspace %v", name)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("workspace updated", dur)
	}(time.Now())
	return l.workspaceService.UpdateWorkspace(ctx, name, upd)
}

func (l *WorkspaceLogger) DeleteWorkspace(ctx context.Context, name string) (err error) {
	defer func(start time.Time) {
		dur := zap.Duration("took", time.Since(start))
		if err != nil {
			msg := fmt.Sprintf("failed to delete workspace %v", name)
			l.logger.Debug(msg, zap.Error(err), dur)
			return
		}
		l.logger.Debug("workspace deleted", dur)
	}(time.Now())
	return l.workspaceService.DeleteWorkspace(ctx, name)
}
