package tenant

import (
	"context"
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/access"
	"go.uber.org/zap"
)

// Service is the workspace lifecycle service. It owns the storage record
// for each workspace and assembles the outward workspace view from the
// record plus the secret and membership collaborators. Collaborator
// failures degrade the view instead of failing the lookup.
type Service struct {
	log      *zap.Logger
	store    workspace.StorageRecordService
	access   workspace.BucketAccessService
	secrets  workspace.SecretService
	members  workspace.MembershipService
	resolver access.NameResolver

	now func() time.Time
}

var _ workspace.WorkspaceService = (*Service)(nil)

// NewService constructs a workspace service.
func NewService(
	log *zap.Logger,
	store workspace.StorageRecordService,
	accessSvc workspace.BucketAccessService,
	secrets workspace.SecretService,
	members workspace.MembershipService,
	resolver access.NameResolver,
) *Service {
	return &Service{
		log:      log,
		store:    store,
		access:   accessSvc,
		secrets:  secrets,
		members:  members,
		resolver: resolver,
		now:      time.Now,
	}
}

// CreateWorkspace generates a workspace name from the preferred name,
// seeds the storage record with the tenant's principal and a default
// bucket named after the workspace, and registers the default owner.
func (s *Service) CreateWorkspace(ctx context.Context, create workspace.WorkspaceCreate) (*workspace.Workspace, error) {
	name := s.resolver.NameFromPreferred(create.PreferredName)

	created := s.now().UTC()
	record := &workspace.StorageRecord{
		Name:              name,
		CreationTimestamp: &created,
		Spec: workspace.RecordSpec{
			Principal: s.resolver.Principal(name),
			Buckets:   []workspace.Bucket{{Name: name}},
		},
	}

	if err := s.store.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	if create.DefaultOwner != "" {
		if err := s.members.ReplaceMembers(ctx, name, []string{create.DefaultOwner}); err != nil {
			s.log.Warn("failed to register default owner",
				zap.String("workspace", name),
				zap.String("owner", create.DefaultOwner),
				zap.Error(err))
		}
	}

	return &workspace.Workspace{
		Name:              name,
		CreationTimestamp: &created,
		Status:            workspace.StatusProvisioning,
	}, nil
}

// FindWorkspace assembles the view for one workspace. A missing record
// yields status unknown so callers can poll while provisioning; missing
// storage credentials yield status provisioning.
func (s *Service) FindWorkspace(ctx context.Context, name string) (*workspace.Workspace, error) {
	record, err := s.store.FindRecord(ctx, name)
	if workspace.ErrorCode(err) == workspace.ENotFound {
		return &workspace.Workspace{Name: name, Status: workspace.StatusUnknown}, nil
	}
	if err != nil {
		return nil, err
	}

	ws := &workspace.Workspace{
		Name:              record.Name,
		CreationTimestamp: record.CreationTimestamp,
		Status:            workspace.StatusProvisioning,
		Buckets:           record.Spec.Buckets,
	}

	if storage := s.loadStorage(ctx, record); storage != nil {
		ws.Storage = storage
		ws.Status = workspace.StatusReady
	}
	ws.ContainerRegistry = s.loadRegistry(ctx, name)

	members, err := s.members.ListMembers(ctx, name)
	if err != nil {
		s.log.Warn("failed to list workspace members",
			zap.String("workspace", name), zap.Error(err))
	} else {
		ws.Members = members
	}

	return ws, nil
}

func (s *Service) loadStorage(ctx context.Context, record *workspace.StorageRecord) *workspace.Storage {
	data, err := s.secrets.LoadSecret(ctx, record.Name, workspace.StorageSecretName)
	if workspace.ErrorCode(err) == workspace.ENotFound {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to load storage secret",
			zap.String("workspace", record.Name), zap.Error(err))
		return nil
	}

	buckets := make([]string, 0, len(record.Spec.Buckets))
	for _, b := range record.Spec.Buckets {
		buckets = append(buckets, b.Name)
	}

	return &workspace.Storage{
		Credentials: workspace.StorageCredentials{
			BucketName: data["bucketname"],
			Access:     data["access"],
			Secret:     data["secret"],
			Endpoint:   data["endpoint"],
			Region:     data["region"],
		},
		Buckets: buckets,
	}
}

func (s *Service) loadRegistry(ctx context.Context, name string) *workspace.RegistryCredentials {
	data, err := s.secrets.LoadSecret(ctx, name, workspace.RegistrySecretName)
	if workspace.ErrorCode(err) == workspace.ENotFound {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to load registry secret",
			zap.String("workspace", name), zap.Error(err))
		return nil
	}

	return &workspace.RegistryCredentials{
		Username: data["username"],
		Password: data["password"],
	}
}

// UpdateWorkspace replaces the member list and adds extra buckets. Bucket
// additions route through the access service so the bucket set keeps the
// same union semantics as access patches.
func (s *Service) UpdateWorkspace(ctx context.Context, name string, upd workspace.WorkspaceUpdate) error {
	if _, err := s.store.FindRecord(ctx, name); err != nil {
		return err
	}

	if upd.Members != nil {
		if err := s.members.ReplaceMembers(ctx, name, upd.Members); err != nil {
			return err
		}
	}

	if len(upd.ExtraBuckets) > 0 {
		if err := s.access.UpdateBucketAccess(ctx, name, workspace.AccessPatch{
			Buckets: upd.ExtraBuckets,
		}); err != nil {
			return err
		}
	}

	return nil
}

// DeleteWorkspace removes the workspace's storage record.
func (s *Service) DeleteWorkspace(ctx context.Context, name string) error {
	return s.store.DeleteRecord(ctx, name)
}
