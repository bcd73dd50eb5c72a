package mock

import (
	"context"
	"fmt"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var _ workspace.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService is a mock implementation of a workspace.WorkspaceService.
type WorkspaceService struct {
	CreateWorkspaceFn func(ctx context.Context, create workspace.WorkspaceCreate) (*workspace.Workspace, error)
	FindWorkspaceFn   func(ctx context.Context, name string) (*workspace.Workspace, error)
	UpdateWorkspaceFn func(ctx context.Context, name string, upd workspace.WorkspaceUpdate) error
	DeleteWorkspaceFn func(ctx context.Context, name string) error
}

// NewWorkspaceService returns a mock WorkspaceService where its methods
// will return zero values.
func NewWorkspaceService() *WorkspaceService {
	return &WorkspaceService{
		CreateWorkspaceFn: func(ctx context.Context, create workspace.WorkspaceCreate) (*workspace.Workspace, error) {
			return nil, fmt.Errorf("not implemented")
		},
		FindWorkspaceFn: func(ctx context.Context, name string) (*workspace.Workspace, error) {
			return nil, fmt.Errorf("not implemented")
		},
		UpdateWorkspaceFn: func(ctx context.Context, name string, upd workspace.WorkspaceUpdate) error {
			return nil
		},
		DeleteWorkspaceFn: func(ctx context.Context, name string) error {
			return nil
		},
	}
}

func (s *WorkspaceService) CreateWorkspace(ctx context.Context, create workspace.WorkspaceCreate) (*workspace.Workspace, error) {
	return s.CreateWorkspaceFn(ctx, create)
}

func (s *WorkspaceService) FindWorkspace(ctx context.Context, name string) (*workspace.Workspace, error) {
	return s.FindWorkspaceFn(ctx, name)
}

func (s *WorkspaceService) UpdateWorkspace(ctx context.Context, name string, upd workspace.WorkspaceUpdate) error {
	return s.UpdateWorkspaceFn(ctx, name, upd)
}

func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, name string) error {
	return s.DeleteWorkspaceFn(ctx, name)
}
