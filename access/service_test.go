package access_test

import (
	"context"
	"sort"
	"testing"
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/access"
	"github.com/EOEPCA/rm-workspace-api/inmem"
	"github.com/EOEPCA/rm-workspace-api/kv"
	"github.com/EOEPCA/rm-workspace-api/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestService(t *testing.T) (*access.Service, workspace.StorageRecordService) {
	t.Helper()
	store := tenant.NewStore(inmem.NewKVStore())
	svc := access.NewService(zaptest.NewLogger(t), store, access.NameResolver{Prefix: "ws"})
	return svc, store
}

func seedRecord(t *testing.T, store workspace.StorageRecordService, r workspace.StorageRecord) {
	t.Helper()
	require.NoError(t, store.CreateRecord(context.Background(), &r))
}

func mustTime(t *testing.T, s string) *time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return &parsed
}

func byBucket(reqs []workspace.BucketAccessRequest) map[string]workspace.BucketAccessRequest {
	m := make(map[string]workspace.BucketAccessRequest, len(reqs))
	for _, r := range reqs {
		m[r.Workspace+"/"+r.Bucket] = r
	}
	return m
}

func TestListBucketAccessRequests_WorkspaceNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListBucketAccessRequests(context.Background(), "ws-ghost")
	assert.Equal(t, workspace.ENotFound, workspace.ErrorCode(err))
}

func TestBucketAccessLifecycle(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{
			Principal: "alice",
			Buckets: []workspace.Bucket{
				{Name: "alice-shared", Discoverable: true},
			},
		},
	})
	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-bob",
		Spec: workspace.RecordSpec{Principal: "bob"},
	})

	reqT := mustTime(t, "2021-03-01T10:00:00Z")
	grantT := mustTime(t, "2021-03-02T10:00:00Z")
	deniedT := mustTime(t, "2021-03-03T10:00:00Z")

	// Bob claims access on his own record.
	require.NoError(t, svc.UpdateBucketAccess(ctx, "ws-bob", workspace.AccessPatch{
		Requests: []workspace.AccessRequestUpdate{
			{Bucket: "alice-shared", RequestTimestamp: reqT},
		},
	}))

	// Alice sees the pending request.
	reqs, err := svc.ListBucketAccessRequests(ctx, "ws-alice")
	require.NoError(t, err)
	got, ok := byBucket(reqs)["ws-bob/alice-shared"]
	require.True(t, ok)
	assert.True(t, got.Pending())
	assert.Equal(t, reqT, got.RequestTimestamp)

	// Alice grants read-only access on her own record.
	require.NoError(t, svc.UpdateBucketAccess(ctx, "ws-alice", workspace.AccessPatch{
		Grants: []workspace.AccessGrantUpdate{
			{
				Workspace:      "ws-bob",
				Bucket:         "alice-shared",
				Permission:     workspace.PermissionReadOnly,
				GrantTimestamp: grantT,
			},
		},
	}))

	reqs, err = svc.ListBucketAccessRequests(ctx, "ws-alice")
	require.NoError(t, err)
	got = byBucket(reqs)["ws-bob/alice-shared"]
	assert.Equal(t, workspace.PermissionReadOnly, got.Permission)
	assert.Equal(t, grantT, got.GrantTimestamp)
	assert.Nil(t, got.DeniedTimestamp)

	// Bob sees the same decision from his side.
	reqs, err = svc.ListBucketAccessRequests(ctx, "ws-bob")
	require.NoError(t, err)
	got = byBucket(reqs)["ws-bob/alice-shared"]
	assert.Equal(t, workspace.PermissionReadOnly, got.Permission)

	// Alice revokes: the later denial overwrites the grant.
	require.NoError(t, svc.UpdateBucketAccess(ctx, "ws-alice", workspace.AccessPatch{
		Grants: []workspace.AccessGrantUpdate{
			{
				Workspace:       "ws-bob",
				Bucket:          "alice-shared",
				DeniedTimestamp: deniedT,
			},
		},
	}))

	reqs, err = svc.ListBucketAccessRequests(ctx, "ws-alice")
	require.NoError(t, err)
	got = byBucket(reqs)["ws-bob/alice-shared"]
	assert.Equal(t, workspace.PermissionNone, got.Permission)
	assert.Nil(t, got.GrantTimestamp)
	assert.Equal(t, deniedT, got.DeniedTimestamp)
}

func TestListBucketAccessRequests_ImplicitEntries(t *testing.T) {
	svc, store := newTestService(t)

	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{
			Principal: "alice",
			Buckets: []workspace.Bucket{
				{Name: "alice-shared", Discoverable: true},
				{Name: "alice-private"},
			},
		},
	})

	reqs, err := svc.ListBucketAccessRequests(context.Background(), "ws-alice")
	require.NoError(t, err)

	require.Len(t, reqs, 1)
	assert.Equal(t, "ws-alice", reqs[0].Workspace)
	assert.Equal(t, "alice-shared", reqs[0].Bucket)
	assert.Equal(t, workspace.PermissionReadWrite, reqs[0].Permission)
	assert.True(t, reqs[0].Pending())
}

func TestListBucketAccessRequests_SurvivesCorruptRecord(t *testing.T) {
	kvStore := inmem.NewKVStore()
	store := tenant.NewStore(kvStore)
	store.WithLogger(zaptest.NewLogger(t))
	svc := access.NewService(zaptest.NewLogger(t), store, access.NameResolver{Prefix: "ws"})
	ctx := context.Background()

	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{
			Principal: "alice",
			Buckets:   []workspace.Bucket{{Name: "alice-shared", Discoverable: true}},
		},
	})

	// A second document that no longer decodes must not hide the view.
	require.NoError(t, kvStore.Update(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket([]byte("storagerecordsv1"))
		if err != nil {
			return err
		}
		return b.Put([]byte("ws-junk"), []byte("{not json"))
	}))

	reqs, err := svc.ListBucketAccessRequests(ctx, "ws-alice")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "alice-shared", reqs[0].Bucket)
	assert.True(t, reqs[0].Pending())
}

func TestUpdateBucketAccess_RequestClaimIsIdempotent(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-bob",
		Spec: workspace.RecordSpec{Principal: "bob"},
	})

	t1 := mustTime(t, "2021-03-01T10:00:00Z")
	t2 := mustTime(t, "2021-03-09T10:00:00Z")

	for _, ts := range []*time.Time{t1, t2} {
		require.NoError(t, svc.UpdateBucketAccess(ctx, "ws-bob", workspace.AccessPatch{
			Requests: []workspace.AccessRequestUpdate{
				{Bucket: "alice-shared", RequestTimestamp: ts},
			},
		}))
	}

	rec, err := store.FindRecord(ctx, "ws-bob")
	require.NoError(t, err)
	require.Len(t, rec.Spec.AccessRequests, 1)
	assert.Equal(t, t1, rec.Spec.AccessRequests[0].RequestedAt)
}

func TestUpdateBucketAccess_RejectsInvalidOperations(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{Principal: "alice"},
	})

	grantT := mustTime(t, "2021-03-02T10:00:00Z")

	tests := []struct {
		name  string
		patch workspace.AccessPatch
		code  string
	}{
		{
			name:  "invalid bucket name",
			patch: workspace.AccessPatch{Buckets: []string{"Bad_Bucket"}},
			code:  workspace.EInvalid,
		},
		{
			name: "grant to unknown workspace",
			patch: workspace.AccessPatch{
				Grants: []workspace.AccessGrantUpdate{
					{Workspace: "ws-ghost", Bucket: "alice-shared", GrantTimestamp: grantT},
				},
			},
			code: workspace.EInvalid,
		},
		{
			name: "grant without timestamp",
			patch: workspace.AccessPatch{
				Grants: []workspace.AccessGrantUpdate{
					{Workspace: "ws-alice", Bucket: "alice-shared"},
				},
			},
			code: workspace.EInvalid,
		},
		{
			name:  "unknown target workspace",
			patch: workspace.AccessPatch{Buckets: []string{"alice-shared"}},
			code:  workspace.ENotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "ws-alice"
			if tt.code == workspace.ENotFound {
				target = "ws-ghost"
			}
			err := svc.UpdateBucketAccess(ctx, target, tt.patch)
			assert.Equal(t, tt.code, workspace.ErrorCode(err))
		})
	}

	// A rejected batch leaves the record untouched.
	rec, err := store.FindRecord(ctx, "ws-alice")
	require.NoError(t, err)
	assert.Empty(t, rec.Spec.Buckets)
	assert.Empty(t, rec.Spec.AccessGrants)
}

func TestUpdateBucketAccess_AddsDiscoverableBuckets(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	seedRecord(t, store, workspace.StorageRecord{
		Name: "ws-alice",
		Spec: workspace.RecordSpec{
			Principal: "alice",
			Buckets:   []workspace.Bucket{{Name: "alice-private"}},
		},
	})

	require.NoError(t, svc.UpdateBucketAccess(ctx, "ws-alice", workspace.AccessPatch{
		Buckets: []string{"alice-shared", "alice-private"},
	}))

	rec, err := store.FindRecord(ctx, "ws-alice")
	require.NoError(t, err)

	names := make([]string, 0, len(rec.Spec.Buckets))
	for _, b := range rec.Spec.Buckets {
		names = append(names, b.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{"alice-private", "alice-shared"}, names)

	// The pre-existing bucket keeps its non-discoverable flag.
	for _, b := range rec.Spec.Buckets {
		if b.Name == "alice-private" {
			assert.False(t, b.Discoverable)
		}
		if b.Name == "alice-shared" {
			assert.True(t, b.Discoverable)
		}
	}
}
