// Package secret provides SecretService implementations backed by static
// configuration. Secret material is provisioned out of band; this package
// only reads it.
package secret

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

// Static is a SecretService reading from an in-memory map keyed by
// workspace name, then secret name.
type Static struct {
	secrets map[string]map[string]map[string]string
}

var _ workspace.SecretService = (*Static)(nil)

// NewStatic constructs a static secret service from a nested map of
// workspace -> secret name -> data.
func NewStatic(secrets map[string]map[string]map[string]string) *Static {
	if secrets == nil {
		secrets = map[string]map[string]map[string]string{}
	}
	return &Static{secrets: secrets}
}

// NewStaticFromFile loads the nested secret map from a JSON file.
func NewStaticFromFile(path string) (*Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &workspace.Error{
			Code: workspace.EInternal,
			Msg:  fmt.Sprintf("unable to read secret file %q", path),
			Err:  err,
		}
	}

	var secrets map[string]map[string]map[string]string
	if err := json.Unmarshal(raw, &secrets); err != nil {
		return nil, &workspace.Error{
			Code: workspace.EInvalid,
			Msg:  fmt.Sprintf("unable to decode secret file %q", path),
			Err:  err,
		}
	}

	return NewStatic(secrets), nil
}

// LoadSecret returns the named secret's data for a workspace.
func (s *Static) LoadSecret(_ context.Context, name, secret string) (map[string]string, error) {
	data, ok := s.secrets[name][secret]
	if !ok {
		return nil, &workspace.Error{
			Code: workspace.ENotFound,
			Msg:  fmt.Sprintf("secret %q for workspace %q not found", secret, name),
		}
	}

	// Copy so callers cannot mutate the backing map.
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out, nil
}
