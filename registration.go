package workspace

import "context"

// Registration is a product registration handed off to the external
// registration pipeline.
type Registration struct {
	Type      string `json:"type"`
	URL       string `json:"url"`
	Workspace string `json:"workspace,omitempty"`
}

// RegistrationService enqueues product registrations for asynchronous
// processing.
type RegistrationService interface {
	Register(ctx context.Context, r Registration) error
}
