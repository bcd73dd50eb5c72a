package workspace

import (
	"context"
	"time"
)

// WorkspaceStatus is the lifecycle status of a workspace.
type WorkspaceStatus string

const (
	StatusProvisioning WorkspaceStatus = "provisioning"
	StatusReady        WorkspaceStatus = "ready"
	StatusUnknown      WorkspaceStatus = "unknown"
)

// StorageCredentials is the credential set for a workspace's S3-compatible
// storage.
type StorageCredentials struct {
	BucketName string `json:"bucketname"`
	Access     string `json:"access"`
	Secret     string `json:"secret"`
	Endpoint   string `json:"endpoint"`
	Region     string `json:"region"`
}

// Storage is the primary object storage attached to a workspace.
type Storage struct {
	Credentials StorageCredentials `json:"credentials"`
	Buckets     []string           `json:"buckets"`
}

// RegistryCredentials are the workspace's container registry credentials.
type RegistryCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Workspace is the assembled view of one tenant workspace.
type Workspace struct {
	Name              string               `json:"name"`
	CreationTimestamp *time.Time           `json:"creation_timestamp,omitempty"`
	Status            WorkspaceStatus      `json:"status"`
	Storage           *Storage             `json:"storage,omitempty"`
	ContainerRegistry *RegistryCredentials `json:"container_registry,omitempty"`
	Members           []Membership         `json:"members,omitempty"`
	Buckets           []Bucket             `json:"buckets,omitempty"`
}

// WorkspaceCreate is the payload for creating a workspace. The preferred
// name is slugified and prefixed; an empty name falls back to a random
// identifier.
type WorkspaceCreate struct {
	PreferredName string `json:"preferred_name"`
	DefaultOwner  string `json:"default_owner"`
}

// WorkspaceUpdate is the payload for updating a workspace. Members is the
// definitive member list; ExtraBuckets are added to the record's bucket
// set (existing buckets are never removed here).
type WorkspaceUpdate struct {
	Members      []string `json:"members,omitempty"`
	ExtraBuckets []string `json:"extra_buckets,omitempty"`
}

// WorkspaceService manages workspace lifecycle and assembles workspace
// views from the record store and its external collaborators.
type WorkspaceService interface {
	// CreateWorkspace provisions a new workspace record and returns the
	// generated name.
	CreateWorkspace(ctx context.Context, create WorkspaceCreate) (*Workspace, error)

	// FindWorkspace assembles the full view for one workspace. A missing
	// record yields status unknown rather than an error so that callers
	// can poll during provisioning.
	FindWorkspace(ctx context.Context, name string) (*Workspace, error)

	// UpdateWorkspace applies a workspace update.
	UpdateWorkspace(ctx context.Context, name string, upd WorkspaceUpdate) error

	// DeleteWorkspace tears down a workspace record.
	DeleteWorkspace(ctx context.Context, name string) error
}
