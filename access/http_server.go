package access

import (
	"net/http"
	"sort"

	workspace "github.com/EOEPCA/rm-workspace-api"
	kithttp "github.com/EOEPCA/rm-workspace-api/kit/transport/http"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// AccessHandler represents an HTTP API handler for bucket access views
// and patches. It is mounted per workspace, under the {name} route of the
// workspaces handler, and reads the workspace name from the route context.
type AccessHandler struct {
	chi.Router
	api *kithttp.API
	log *zap.Logger
	svc workspace.BucketAccessService
}

// NewHTTPAccessHandler constructs a new http server for bucket access.
func NewHTTPAccessHandler(log *zap.Logger, svc workspace.BucketAccessService) *AccessHandler {
	h := &AccessHandler{
		api: kithttp.NewAPI(log),
		log: log,
		svc: svc,
	}

	r := chi.NewRouter()
	r.Get("/access-requests", h.ListAccessRequests)
	r.Patch("/access", h.PatchAccess)

	h.Router = r
	return h
}

// ListAccessRequests derives and serves the consolidated request view for
// the workspace named in the route.
func (h *AccessHandler) ListAccessRequests(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	reqs, err := h.svc.ListBucketAccessRequests(r.Context(), name)
	if err != nil {
		h.api.Err(w, r, err)
		return
	}

	// Extraction order is insertion order; sort here for a stable wire
	// representation.
	sort.SliceStable(reqs, func(i, j int) bool {
		if reqs[i].Workspace != reqs[j].Workspace {
			return reqs[i].Workspace < reqs[j].Workspace
		}
		return reqs[i].Bucket < reqs[j].Bucket
	})

	h.api.Respond(w, r, http.StatusOK, reqs)
}

// PatchAccess applies an access patch to the workspace named in the
// route.
func (h *AccessHandler) PatchAccess(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var patch workspace.AccessPatch
	if err := h.api.DecodeJSON(r, &patch); err != nil {
		h.api.Err(w, r, &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  "invalid access patch body",
			Err:  err,
		})
		return
	}

	if err := h.svc.UpdateBucketAccess(r.Context(), name, patch); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusNoContent, nil)
}
