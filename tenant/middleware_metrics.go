package tenant

import (
	"context"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/kit/metric"
	"github.com/prometheus/client_golang/prometheus"
)

var _ workspace.WorkspaceService = (*WorkspaceMetrics)(nil)

type WorkspaceMetrics struct {
	// RED metrics
	rec *metric.REDClient

	workspaceService workspace.WorkspaceService
}

// NewWorkspaceMetrics returns a metrics service middleware for the
// Workspace Service.
func NewWorkspaceMetrics(reg prometheus.Registerer, s workspace.WorkspaceService) *WorkspaceMetrics {
	return &WorkspaceMetrics{
		rec:              metric.New(reg, "workspace"),
		workspaceService: s,
	}
}

func (m *WorkspaceMetrics) CreateWorkspace(ctx context.Context, create workspace.WorkspaceCreate) (*workspace.Workspace, error) {
	rec := m.rec.Record("create_workspace")
	ws, err := m.workspaceService.CreateWorkspace(ctx, create)
	return ws, rec(err)
}

func (m *WorkspaceMetrics) FindWorkspace(ctx context.Context, name string) (*workspace.Workspace, error) {
	rec := m.rec.Record("find_workspace")
	ws, err := m.workspaceService.FindWorkspace(ctx, name)
	return ws, rec(err)
}

func (m *WorkspaceMetrics) UpdateWorkspace(ctx context.Context, name string, upd workspace.WorkspaceUpdate) error {
	rec := m.rec.Record("update_workspace")
	return rec(m.workspaceService.UpdateWorkspace(ctx, name, upd))
}

func (m *WorkspaceMetrics) DeleteWorkspace(ctx context.Context, name string) error {
	rec := m.rec.Record("delete_workspace")
	return rec(m.workspaceService.DeleteWorkspace(ctx, name))
}
