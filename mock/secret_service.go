package mock

import (
	"context"
	"fmt"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var _ workspace.SecretService = (*SecretService)(nil)

// SecretService is a mock implementation of a workspace.SecretService.
type SecretService struct {
	LoadSecretFn func(ctx context.Context, name, secret string) (map[string]string, error)
}

// NewSecretService returns a mock SecretService where its methods will
// return zero values.
func NewSecretService() *SecretService {
	return &SecretService{
		LoadSecretFn: func(ctx context.Context, name, secret string) (map[string]string, error) {
			return nil, fmt.Errorf("not implemented")
		},
	}
}

func (s *SecretService) LoadSecret(ctx context.Context, name, secret string) (map[string]string, error) {
	return s.LoadSecretFn(ctx, name, secret)
}
