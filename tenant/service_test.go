package tenant_test

import (
	"context"
	"fmt"
	"testing"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/access"
	"github.com/EOEPCA/rm-workspace-api/inmem"
	"github.com/EOEPCA/rm-workspace-api/mock"
	"github.com/EOEPCA/rm-workspace-api/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type serviceFixture struct {
	svc     *tenant.Service
	store   *tenant.Store
	access  *mock.BucketAccessService
	secrets *mock.SecretService
	members *mock.MembershipService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		store:   tenant.NewStore(inmem.NewKVStore()),
		access:  mock.NewBucketAccessService(),
		secrets: mock.NewSecretService(),
		members: mock.NewMembershipService(),
	}
	f.secrets.LoadSecretFn = func(_ context.Context, name, secret string) (map[string]string, error) {
		return nil, &workspace.Error{Code: workspace.ENotFound}
	}

	f.svc = tenant.NewService(
		zaptest.NewLogger(t),
		f.store,
		f.access,
		f.secrets,
		f.members,
		access.NameResolver{Prefix: "ws"},
	)
	return f
}

func TestCreateWorkspace(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	var replacedWith []string
	f.members.ReplaceMembersFn = func(_ context.Context, name string, members []string) error {
		assert.Equal(t, "ws-alice", name)
		replacedWith = members
		return nil
	}

	ws, err := f.svc.CreateWorkspace(ctx, workspace.WorkspaceCreate{
		PreferredName: "Alice",
		DefaultOwner:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws-alice", ws.Name)
	assert.Equal(t, workspace.StatusProvisioning, ws.Status)
	require.NotNil(t, ws.CreationTimestamp)
	assert.Equal(t, []string{"alice"}, replacedWith)

	// The seeded record carries the principal and a default bucket named
	// after the workspace.
	rec, err := f.store.FindRecord(ctx, "ws-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Spec.Principal)
	assert.Equal(t, []workspace.Bucket{{Name: "ws-alice"}}, rec.Spec.Buckets)

	// A second creation with the same name conflicts.
	_, err = f.svc.CreateWorkspace(ctx, workspace.WorkspaceCreate{PreferredName: "Alice"})
	assert.Equal(t, workspace.EConflict, workspace.ErrorCode(err))
}

func TestCreateWorkspaceOwnerRegistrationFailureIsNotFatal(t *testing.T) {
	f := newServiceFixture(t)

	f.members.ReplaceMembersFn = func(_ context.Context, name string, members []string) error {
		return fmt.Errorf("membership backend down")
	}

	ws, err := f.svc.CreateWorkspace(context.Background(), workspace.WorkspaceCreate{
		PreferredName: "alice",
		DefaultOwner:  "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws-alice", ws.Name)
}

func TestFindWorkspaceUnknown(t *testing.T) {
	f := newServiceFixture(t)

	ws, err := f.svc.FindWorkspace(context.Background(), "ws-ghost")
	require.NoError(t, err)
	assert.Equal(t, workspace.StatusUnknown, ws.Status)
	assert.Equal(t, "ws-ghost", ws.Name)
	assert.Nil(t, ws.Storage)
}

func TestFindWorkspaceProvisioning(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateRecord(ctx, &workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{Principal: "alice"},
	}))

	// No storage secret yet: the workspace is still provisioning.
	ws, err := f.svc.FindWorkspace(ctx, "ws-alice")
	require.NoError(t, err)
	assert.Equal(t, workspace.StatusProvisioning, ws.Status)
	assert.Nil(t, ws.Storage)
}

func TestFindWorkspaceReady(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateRecord(ctx, &workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{
			Principal: "alice",
			Buckets:   []workspace.Bucket{{Name: "ws-alice"}, {Name: "extra"}},
		},
	}))

	f.secrets.LoadSecretFn = func(_ context.Context, name, secret string) (map[string]string, error) {
		require.Equal(t, "ws-alice", name)
		switch secret {
		case workspace.StorageSecretName:
			return map[string]string{
				"bucketname": "ws-alice",
				"access":     "AKIA",
				"secret":     "s3cr3t",
				"endpoint":   "https://minio.local",
				"region":     "us-east-1",
			}, nil
		case workspace.RegistrySecretName:
			return map[string]string{"username": "alice", "password": "hunter2"}, nil
		}
		return nil, &workspace.Error{Code: workspace.ENotFound}
	}
	f.members.ListMembersFn = func(_ context.Context, name string) ([]workspace.Membership, error) {
		return []workspace.Membership{{Member: "alice", Role: workspace.RoleOwner}}, nil
	}

	ws, err := f.svc.FindWorkspace(ctx, "ws-alice")
	require.NoError(t, err)

	assert.Equal(t, workspace.StatusReady, ws.Status)
	require.NotNil(t, ws.Storage)
	assert.Equal(t, "AKIA", ws.Storage.Credentials.Access)
	assert.Equal(t, []string{"ws-alice", "extra"}, ws.Storage.Buckets)
	require.NotNil(t, ws.ContainerRegistry)
	assert.Equal(t, "alice", ws.ContainerRegistry.Username)
	require.Len(t, ws.Members, 1)
}

func TestFindWorkspaceDegradesOnMemberFailure(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateRecord(ctx, &workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{Principal: "alice"},
	}))
	f.members.ListMembersFn = func(_ context.Context, name string) ([]workspace.Membership, error) {
		return nil, fmt.Errorf("membership backend down")
	}

	ws, err := f.svc.FindWorkspace(ctx, "ws-alice")
	require.NoError(t, err)
	assert.Empty(t, ws.Members)
}

func TestUpdateWorkspace(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateRecord(ctx, &workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{Principal: "alice"},
	}))

	var replacedWith []string
	f.members.ReplaceMembersFn = func(_ context.Context, name string, members []string) error {
		replacedWith = members
		return nil
	}

	var bucketPatch workspace.AccessPatch
	f.access.UpdateBucketAccessFn = func(_ context.Context, name string, patch workspace.AccessPatch) error {
		assert.Equal(t, "ws-alice", name)
		bucketPatch = patch
		return nil
	}

	require.NoError(t, f.svc.UpdateWorkspace(ctx, "ws-alice", workspace.WorkspaceUpdate{
		Members:      []string{"alice", "bob"},
		ExtraBuckets: []string{"extra-data"},
	}))

	assert.Equal(t, []string{"alice", "bob"}, replacedWith)
	assert.Equal(t, []string{"extra-data"}, bucketPatch.Buckets)

	err := f.svc.UpdateWorkspace(ctx, "ws-ghost", workspace.WorkspaceUpdate{})
	assert.Equal(t, workspace.ENotFound, workspace.ErrorCode(err))
}

func TestDeleteWorkspace(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateRecord(ctx, &workspace.StorageRecord{Name: "ws-alice"}))
	require.NoError(t, f.svc.DeleteWorkspace(ctx, "ws-alice"))

	_, err := f.store.FindRecord(ctx, "ws-alice")
	assert.Equal(t, workspace.ENotFound, workspace.ErrorCode(err))
}
