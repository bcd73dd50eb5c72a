package workspace

import "context"

// Well-known secret names read by the workspace service.
const (
	StorageSecretName  = "workspace"
	RegistrySecretName = "container-registry"
)

// SecretService provides decoded secret material for a workspace. It is an
// external capability: the engine never writes secrets.
type SecretService interface {
	// LoadSecret returns the named secret's key/value data for a
	// workspace, or an ENotFound error if it does not exist.
	LoadSecret(ctx context.Context, name, secret string) (map[string]string, error)
}
