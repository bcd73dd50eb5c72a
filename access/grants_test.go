package access

import (
	"testing"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestApplyGrants(t *testing.T) {
	reqT := ts(t, "2021-03-01T10:00:00Z")
	grantT := ts(t, "2021-03-02T10:00:00Z")

	requests := []taggedRequest{
		{
			principal: "bob",
			request: workspace.BucketAccessRequest{
				Workspace:        "ws-bob",
				Bucket:           "alice-shared",
				Permission:       workspace.PermissionReadWrite,
				RequestTimestamp: reqT,
			},
		},
	}

	records := []workspace.StorageRecord{
		{
			Name: "ws-alice",
			Spec: workspace.RecordSpec{
				Principal: "alice",
				AccessGrants: []workspace.AccessGrant{
					{
						BucketName: "alice-shared",
						Grantee:    "bob",
						Permission: workspace.PermissionReadOnly,
						GrantedAt:  grantT,
					},
				},
			},
		},
	}

	applyGrants(requests, records, zaptest.NewLogger(t))

	got := requests[0].request
	assert.Equal(t, workspace.PermissionReadOnly, got.Permission)
	assert.Equal(t, grantT, got.GrantTimestamp)
	assert.Nil(t, got.DeniedTimestamp)
	assert.Equal(t, reqT, got.RequestTimestamp)
}

func TestApplyGrantsDenial(t *testing.T) {
	grantT := ts(t, "2021-03-02T10:00:00Z")

	requests := []taggedRequest{
		{
			principal: "bob",
			request: workspace.BucketAccessRequest{
				Workspace:  "ws-bob",
				Bucket:     "alice-shared",
				Permission: workspace.PermissionReadWrite,
			},
		},
	}

	records := []workspace.StorageRecord{
		{
			Name: "ws-alice",
			Spec: workspace.RecordSpec{
				Principal: "alice",
				AccessGrants: []workspace.AccessGrant{
					{
						BucketName: "alice-shared",
						Grantee:    "bob",
						Permission: workspace.PermissionNone,
						GrantedAt:  grantT,
					},
				},
			},
		},
	}

	applyGrants(requests, records, zaptest.NewLogger(t))

	got := requests[0].request
	assert.Equal(t, workspace.PermissionNone, got.Permission)
	assert.Nil(t, got.GrantTimestamp)
	assert.Equal(t, grantT, got.DeniedTimestamp)
	// The denial time backfills the missing request time.
	assert.Equal(t, grantT, got.RequestTimestamp)
}

func TestApplyGrantsBackfillsRequestTimestamp(t *testing.T) {
	reqT := ts(t, "2021-03-01T10:00:00Z")
	grantT := ts(t, "2021-03-02T10:00:00Z")

	requests := []taggedRequest{
		{
			principal: "bob",
			request: workspace.BucketAccessRequest{
				Workspace:  "ws-bob",
				Bucket:     "alice-shared",
				Permission: workspace.PermissionReadWrite,
			},
		},
	}

	records := []workspace.StorageRecord{
		{
			Name: "ws-alice",
			Spec: workspace.RecordSpec{
				Principal: "alice",
				AccessGrants: []workspace.AccessGrant{
					{
						BucketName:  "alice-shared",
						Grantee:     "bob",
						Permission:  workspace.PermissionReadWrite,
						GrantedAt:   grantT,
						RequestedAt: reqT,
					},
				},
			},
		},
	}

	applyGrants(requests, records, zaptest.NewLogger(t))

	// The grant's recorded request time wins over the grant time.
	assert.Equal(t, reqT, requests[0].request.RequestTimestamp)
	assert.Equal(t, grantT, requests[0].request.GrantTimestamp)
}

func TestApplyGrantsIgnoresMalformedEntries(t *testing.T) {
	reqT := ts(t, "2021-03-01T10:00:00Z")
	grantT := ts(t, "2021-03-02T10:00:00Z")

	requests := []taggedRequest{
		{
			principal: "bob",
			request: workspace.BucketAccessRequest{
				Workspace:        "ws-bob",
				Bucket:           "alice-shared",
				Permission:       workspace.PermissionReadWrite,
				RequestTimestamp: reqT,
			},
		},
	}

	records := []workspace.StorageRecord{
		{
			Name: "ws-alice",
			Spec: workspace.RecordSpec{
				Principal: "alice",
				AccessGrants: []workspace.AccessGrant{
					// No timestamp: never surfaces.
					{BucketName: "alice-shared", Grantee: "bob", Permission: workspace.PermissionReadWrite},
					// No grantee.
					{BucketName: "alice-shared", Permission: workspace.PermissionReadWrite, GrantedAt: grantT},
					// No matching request.
					{BucketName: "other-bucket", Grantee: "bob", Permission: workspace.PermissionReadWrite, GrantedAt: grantT},
				},
			},
		},
	}

	applyGrants(requests, records, zaptest.NewLogger(t))

	assert.True(t, requests[0].request.Pending())
}

func TestApplyGrantsUnrecognizedPermissionDegradesToDenial(t *testing.T) {
	grantT := ts(t, "2021-03-02T10:00:00Z")

	requests := []taggedRequest{
		{
			principal: "bob",
			request: workspace.BucketAccessRequest{
				Workspace:  "ws-bob",
				Bucket:     "alice-shared",
				Permission: workspace.PermissionReadWrite,
			},
		},
	}

	records := []workspace.StorageRecord{
		{
			Name: "ws-alice",
			Spec: workspace.RecordSpec{
				Principal: "alice",
				AccessGrants: []workspace.AccessGrant{
					{
						BucketName: "alice-shared",
						Grantee:    "bob",
						Permission: "FullControl",
						GrantedAt:  grantT,
					},
				},
			},
		},
	}

	applyGrants(requests, records, zaptest.NewLogger(t))

	got := requests[0].request
	assert.Equal(t, workspace.PermissionNone, got.Permission)
	assert.Equal(t, grantT, got.DeniedTimestamp)
	assert.Nil(t, got.GrantTimestamp)
}
