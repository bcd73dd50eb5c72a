package mock

import (
	"context"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var _ workspace.RegistrationService = (*RegistrationService)(nil)

// RegistrationService is a mock implementation of a
// workspace.RegistrationService.
type RegistrationService struct {
	RegisterFn func(ctx context.Context, r workspace.Registration) error
}

// NewRegistrationService returns a mock RegistrationService where its
// methods will return zero values.
func NewRegistrationService() *RegistrationService {
	return &RegistrationService{
		RegisterFn: func(ctx context.Context, r workspace.Registration) error {
			return nil
		},
	}
}

func (s *RegistrationService) Register(ctx context.Context, r workspace.Registration) error {
	return s.RegisterFn(ctx, r)
}
