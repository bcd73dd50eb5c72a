package tenant

import (
	"net/http"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/access"
	wscontext "github.com/EOEPCA/rm-workspace-api/context"
	kithttp "github.com/EOEPCA/rm-workspace-api/kit/transport/http"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// WorkspaceHandler represents an HTTP API handler for workspace lifecycle,
// mounted under the workspaces prefix.
type WorkspaceHandler struct {
	chi.Router
	api      *kithttp.API
	log      *zap.Logger
	svc      workspace.WorkspaceService
	resolver access.NameResolver
}

const prefixWorkspaces = "/api/workspaces"

// NewHTTPWorkspaceHandler constructs a new http server for workspaces. The
// access handler, when given, is registered under each workspace's route
// so that bucket access endpoints share the {name} parameter.
func NewHTTPWorkspaceHandler(log *zap.Logger, svc workspace.WorkspaceService, resolver access.NameResolver, accessHandler *access.AccessHandler) *WorkspaceHandler {
	h := &WorkspaceHandler{
		api:      kithttp.NewAPI(log),
		log:      log,
		svc:      svc,
		resolver: resolver,
	}

	r := chi.NewRouter()
	r.Post("/", h.handlePostWorkspace)
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/", h.handleGetWorkspace)
		r.Patch("/", h.handlePatchWorkspace)
		r.Delete("/", h.handleDeleteWorkspace)
		if accessHandler != nil {
			r.Get("/access-requests", accessHandler.ListAccessRequests)
			r.Patch("/access", accessHandler.PatchAccess)
		}
	})

	h.Router = r
	return h
}

// Prefix returns the mount point of the handler.
func (h *WorkspaceHandler) Prefix() string {
	return prefixWorkspaces
}

// workspaceName validates the route's workspace name against the
// configured prefix. Prefix validation lives at the transport edge so the
// service only ever sees canonical names.
func (h *WorkspaceHandler) workspaceName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if name == "" {
		return "", ErrNameRequired
	}
	if !h.resolver.ValidName(name) {
		return "", ErrNameNotPrefixed
	}
	return name, nil
}

type postWorkspaceResponse struct {
	Name string `json:"name"`
}

func (h *WorkspaceHandler) handlePostWorkspace(w http.ResponseWriter, r *http.Request) {
	var create workspace.WorkspaceCreate
	if err := h.api.DecodeJSON(r, &create); err != nil {
		h.api.Err(w, r, &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  "invalid workspace creation body",
			Err:  err,
		})
		return
	}

	if create.DefaultOwner == "" {
		// The authenticated caller owns the workspace unless the body
		// says otherwise.
		if principal, err := wscontext.GetPrincipal(r.Context()); err == nil {
			create.DefaultOwner = principal
		}
	}

	ws, err := h.svc.CreateWorkspace(r.Context(), create)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusCreated, postWorkspaceResponse{Name: ws.Name})
}

func (h *WorkspaceHandler) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	name, err := h.workspaceName(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	ws, err := h.svc.FindWorkspace(r.Context(), name)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusOK, ws)
}

func (h *WorkspaceHandler) handlePatchWorkspace(w http.ResponseWriter, r *http.Request) {
	name, err := h.workspaceName(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	var upd workspace.WorkspaceUpdate
	if err := h.api.DecodeJSON(r, &upd); err != nil {
		h.api.Err(w, r, &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  "invalid workspace update body",
			Err:  err,
		})
		return
	}

	if err := h.svc.UpdateWorkspace(r.Context(), name, upd); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}

func (h *WorkspaceHandler) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	name, err := h.workspaceName(r)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	if err := h.svc.DeleteWorkspace(r.Context(), name); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
