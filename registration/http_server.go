package registration

import (
	"net/http"

	workspace "github.com/EOEPCA/rm-workspace-api"
	kithttp "github.com/EOEPCA/rm-workspace-api/kit/transport/http"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
)

// RegistrationHandler represents an HTTP API handler for product
// registrations.
type RegistrationHandler struct {
	chi.Router
	api *kithttp.API
	log *zap.Logger
	svc workspace.RegistrationService
}

const prefixRegistrations = "/api/registrations"

// NewHTTPRegistrationHandler constructs a new http server for
// registrations.
func NewHTTPRegistrationHandler(log *zap.Logger, svc workspace.RegistrationService) *RegistrationHandler {
	h := &RegistrationHandler{
		api: kithttp.NewAPI(log),
		log: log,
		svc: svc,
	}

	r := chi.NewRouter()
	r.Post("/", h.handlePostRegistration)

	h.Router = r
	return h
}

// Prefix returns the mount point of the handler.
func (h *RegistrationHandler) Prefix() string {
	return prefixRegistrations
}

func (h *RegistrationHandler) handlePostRegistration(w http.ResponseWriter, r *http.Request) {
	var reg workspace.Registration
	if err := h.api.DecodeJSON(r, &reg); err != nil {
		h.api.Err(w, r, &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  "invalid registration body",
			Err:  err,
		})
		return
	}

	if reg.Type == "" || reg.URL == "" {
		h.api.Err(w, r, &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  "registration type and url are required",
		})
		return
	}

	if err := h.svc.Register(r.Context(), reg); err != nil {
		h.api.Err(w, r, err)
		return
	}

	h.api.Respond(w, r, http.StatusAccepted, nil)
}
